package scoring

import (
	"sort"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// ParkKeywords mark a place as park-like when its lowercase name contains one
// of them, even if the upstream types do not include "park".
var ParkKeywords = []string{
	"playground",
	"pool",
	"dog park",
	"dog run",
	"rink",
	"recreation centre",
	"community centre",
	"recreation center",
	"community center",
	"sports field",
}

// KeywordMatcher finds which of a fixed set of lowercase keywords occur as
// substrings of a text in a single pass.
type KeywordMatcher struct {
	matcher  *goahocorasick.Machine
	keywords []string
}

// NewKeywordMatcher lowercases, dedupes and sorts the keywords before building
// the automaton. Empty keywords are dropped.
func NewKeywordMatcher(keywords []string) (*KeywordMatcher, error) {
	cleaned := lo.Uniq(lo.FilterMap(keywords, func(k string, _ int) (string, bool) {
		k = strings.ToLower(strings.TrimSpace(k))
		return k, k != ""
	}))
	sort.Strings(cleaned)

	km := &KeywordMatcher{keywords: cleaned}
	if len(cleaned) == 0 {
		return km, nil
	}

	patterns := make([][]rune, len(cleaned))
	for i, k := range cleaned {
		patterns[i] = []rune(k)
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	km.matcher = m
	return km, nil
}

// Matches returns the distinct keywords found in the lowercased text.
func (k *KeywordMatcher) Matches(text string) []string {
	if k.matcher == nil || text == "" {
		return nil
	}
	terms := k.matcher.MultiPatternSearch([]rune(strings.ToLower(text)), false)
	return lo.Uniq(lo.Map(terms, func(t *goahocorasick.Term, _ int) string {
		return string(t.Word)
	}))
}

func (k *KeywordMatcher) ContainsAny(text string) bool {
	return len(k.Matches(text)) > 0
}

func (k *KeywordMatcher) Keywords() []string {
	return k.keywords
}
