package domain

import (
	"strings"
	"unicode"
)

// stopWords are dropped from queries before keyword matching. They cover
// the filler in typical requests like "Show me apartments in Indiranagar".
var stopWords = map[string]struct{}{
	"a": {}, "all": {}, "an": {}, "and": {}, "any": {}, "apartment": {}, "apartments": {},
	"at": {}, "by": {}, "display": {}, "find": {}, "flat": {}, "flats": {}, "for": {},
	"from": {}, "home": {}, "homes": {}, "house": {}, "houses": {}, "in": {}, "list": {},
	"me": {}, "near": {}, "of": {}, "on": {}, "project": {}, "projects": {},
	"properties": {}, "property": {}, "show": {}, "the": {}, "villa": {}, "villas": {},
	"with": {},
}

// SearchTerms splits a free-text query into lower-case keyword terms,
// dropping punctuation, stop words and duplicates. Order is preserved.
func SearchTerms(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, stop := stopWords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}

// Searchable reports whether a catalogue row may appear in search results:
// approved, not under litigation, named and located.
func (p Project) Searchable() bool {
	return p.HasLocation &&
		p.Name != "" &&
		strings.EqualFold(p.LandUnderLitigation, "NO") &&
		strings.EqualFold(p.ApprovalStatus, "APPROVED")
}

// Matches reports whether every term occurs in one of the project's
// searchable text fields.
func (p Project) Matches(terms []string) bool {
	haystack := strings.ToLower(strings.Join([]string{
		p.Name, p.PromoterName, p.District, p.Taluk, p.ApprovingAuthority, p.SourceOfWater,
	}, "\n"))
	for _, t := range terms {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}
