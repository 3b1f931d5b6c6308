package state

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchResult reports whether a candidate matched a query. Score is the
// fuzzysearch edit distance between query and candidate; lower is closer.
// It is informational only and never used for ordering.
type MatchResult struct {
	Matched bool
	Score   int
}

// NoMatch is the zero MatchResult.
var NoMatch = MatchResult{}

// Matcher decides whether a candidate matches a query.
type Matcher interface {
	Match(candidate, query string) MatchResult
}

// MatcherFunc adapts a plain function to the Matcher interface.
type MatcherFunc func(candidate, query string) MatchResult

// Match calls f(candidate, query).
func (f MatcherFunc) Match(candidate, query string) MatchResult {
	return f(candidate, query)
}

const (
	MatcherFuzzy  = "fuzzy"
	MatcherPrefix = "prefix"
)

// FuzzyMatcher matches when the query's characters appear in order, not
// necessarily contiguously, inside the candidate. Matching ignores case
// unless the query contains an uppercase letter.
var FuzzyMatcher Matcher = MatcherFunc(fuzzyMatch)

// PrefixMatcher matches when the candidate starts with the query, using the
// same smart-case rule as FuzzyMatcher.
var PrefixMatcher Matcher = MatcherFunc(prefixMatch)

// MatcherByName returns the matcher registered under name. Unknown names
// report false.
func MatcherByName(name string) (Matcher, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", MatcherFuzzy:
		return FuzzyMatcher, true
	case MatcherPrefix:
		return PrefixMatcher, true
	default:
		return nil, false
	}
}

func fuzzyMatch(candidate, query string) MatchResult {
	candidate, query = validText(candidate), validText(query)
	if query == "" {
		return MatchResult{Matched: true, Score: utf8.RuneCountInString(candidate)}
	}
	var distance int
	if CaseSensitive(query) {
		distance = fuzzy.RankMatch(query, candidate)
	} else {
		distance = fuzzy.RankMatchFold(query, candidate)
	}
	if distance < 0 {
		return NoMatch
	}
	return MatchResult{Matched: true, Score: distance}
}

func prefixMatch(candidate, query string) MatchResult {
	candidate, query = validText(candidate), validText(query)
	rest, ok := trimPrefixFold(candidate, query, !CaseSensitive(query))
	if !ok {
		return NoMatch
	}
	return MatchResult{Matched: true, Score: utf8.RuneCountInString(rest)}
}

// trimPrefixFold strips prefix from s one rune at a time. With fold set, runes
// compare under simple case folding, so "K" (Kelvin) matches "k".
func trimPrefixFold(s, prefix string, fold bool) (string, bool) {
	for _, want := range prefix {
		if s == "" {
			return "", false
		}
		got, size := utf8.DecodeRuneInString(s)
		if got != want && !(fold && foldEqual(got, want)) {
			return "", false
		}
		s = s[size:]
	}
	return s, true
}

func foldEqual(a, b rune) bool {
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// validText replaces invalid UTF-8 sequences; fuzzysearch's folding
// transform panics on them.
func validText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}

// CaseSensitive reports whether query switches matching to exact case, which
// happens as soon as it contains an uppercase letter.
func CaseSensitive(query string) bool {
	for _, r := range query {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// FilterCandidates returns every candidate of store matching query, ordered by
// length (shortest first). Candidates of equal length keep store order.
func FilterCandidates(store *Store, matcher Matcher, query string) []string {
	if store.Len() == 0 {
		return []string{}
	}
	if matcher == nil {
		matcher = FuzzyMatcher
	}
	type ranked struct {
		value  string
		length int
	}
	matches := make([]ranked, 0, store.Len())
	for i := 0; i < store.Len(); i++ {
		candidate := store.At(i)
		if !matcher.Match(candidate, query).Matched {
			continue
		}
		matches = append(matches, ranked{value: candidate, length: utf8.RuneCountInString(candidate)})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].length < matches[j].length
	})
	filtered := make([]string, len(matches))
	for i, m := range matches {
		filtered[i] = m.value
	}
	return filtered
}

// FilteredView returns the ranked matches truncated to capacity rows.
func FilteredView(store *Store, matcher Matcher, query string, capacity int) []string {
	filtered := FilterCandidates(store, matcher, query)
	return truncateView(filtered, capacity)
}

func truncateView(items []string, capacity int) []string {
	if capacity <= 0 {
		return []string{}
	}
	if len(items) > capacity {
		return items[:capacity]
	}
	return items
}
