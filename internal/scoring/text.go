package scoring

import (
	"regexp"
	"strings"
)

var (
	replaceBySpaceRe = regexp.MustCompile(`[/(){}\[\]|@,;.\n]`)
	badSymbolsRe     = regexp.MustCompile(`[^0-9a-z ]`)
)

// Normalizer turns raw review text into the token stream the vectorizers were
// fitted on. It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	stopwords  map[string]struct{}
	lemmatizer *Lemmatizer
}

// NewNormalizer builds a normalizer. A nil or empty stopword list selects
// DefaultStopwords.
func NewNormalizer(stopwords []string) (*Normalizer, error) {
	if len(stopwords) == 0 {
		stopwords = DefaultStopwords
	}
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	lemmatizer, err := NewLemmatizer()
	if err != nil {
		return nil, err
	}
	return &Normalizer{stopwords: set, lemmatizer: lemmatizer}, nil
}

// Normalize lowercases, strips symbols, drops stopwords and lemmatizes. It
// returns "" when no token survives.
func (n *Normalizer) Normalize(text string) string {
	text = strings.ToLower(text)
	text = replaceBySpaceRe.ReplaceAllString(text, " ")
	text = badSymbolsRe.ReplaceAllString(text, "")

	words := strings.Fields(text)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if n.IsStopword(w) {
			continue
		}
		// a lemma can itself be a stopword; dropping it keeps Normalize idempotent
		lemma := n.lemmatizer.Lemmatize(w)
		if n.IsStopword(lemma) {
			continue
		}
		tokens = append(tokens, lemma)
	}
	return strings.Join(tokens, " ")
}

func (n *Normalizer) IsStopword(word string) bool {
	_, ok := n.stopwords[word]
	return ok
}
