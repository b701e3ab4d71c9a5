package scoring

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/samber/lo"
)

// irregularNouns maps irregular plural nouns to their lemma, and pins nouns
// whose singular ends in s to themselves.
var irregularNouns = map[string]string{
	"children":  "child",
	"people":    "person",
	"men":       "man",
	"women":     "woman",
	"firemen":   "fireman",
	"feet":      "foot",
	"geese":     "goose",
	"mice":      "mouse",
	"teeth":     "tooth",
	"leaves":    "leaf",
	"shelves":   "shelf",
	"knives":    "knife",
	"wives":     "wife",
	"lives":     "life",
	"halves":    "half",
	"loaves":    "loaf",
	"oxen":      "ox",
	"dice":      "die",
	"indices":   "index",
	"criteria":  "criterion",
	"phenomena": "phenomenon",
	"species":   "species",
	"series":    "series",
	"news":      "news",
}

// nounSuffixes are the noun detachment rules, tried in order.
var nounSuffixes = []struct{ suffix, replacement string }{
	{"s", ""},
	{"ses", "s"},
	{"xes", "x"},
	{"zes", "z"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"men", "man"},
	{"ies", "y"},
}

var loadDictionary = sync.OnceValues(func() (*golem.Lemmatizer, error) {
	return golem.New(en.New())
})

// Lemmatizer reduces inflected nouns to their dictionary form. A suffix rule
// only applies when the English dictionary lists the result as a lemma of the
// word, so words like "always" or "perhaps" are left alone. Verb and
// adjective inflections such as "loved" are kept.
type Lemmatizer struct {
	exceptions map[string]string
	dictionary *golem.Lemmatizer
}

// NewLemmatizer loads the English dictionary on first use and shares it
// between lemmatizers.
func NewLemmatizer() (*Lemmatizer, error) {
	dict, err := loadDictionary()
	if err != nil {
		return nil, fmt.Errorf("%w: english dictionary: %v", ErrModelConfig, err)
	}
	return &Lemmatizer{exceptions: irregularNouns, dictionary: dict}, nil
}

// Lemmatize applies the rules until the word stops changing, so
// Lemmatize(Lemmatize(w)) == Lemmatize(w).
func (l *Lemmatizer) Lemmatize(word string) string {
	for i := 0; i <= len(word); i++ {
		next := l.reduce(word)
		if next == word {
			return word
		}
		word = next
	}
	return word
}

// reduce returns the shortest rule candidate the dictionary accepts.
func (l *Lemmatizer) reduce(word string) string {
	if lemma, ok := l.exceptions[word]; ok {
		return lemma
	}
	if !l.dictionary.InDict(word) {
		return word
	}

	lemmas := l.dictionary.Lemmas(word)
	best := word
	for _, rule := range nounSuffixes {
		if !strings.HasSuffix(word, rule.suffix) {
			continue
		}
		candidate := strings.TrimSuffix(word, rule.suffix) + rule.replacement
		if candidate != "" && len(candidate) < len(best) && lo.Contains(lemmas, candidate) {
			best = candidate
		}
	}
	return best
}
