package models

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"
)

// SimilarNameDistance is the edit distance at or below which two names are
// reported as look-alikes
const SimilarNameDistance = 2

// nameSource adapts a record slice to fuzzy.Source
type nameSource []Boardgame

func (s nameSource) String(i int) string { return s[i].Name }
func (s nameSource) Len() int            { return len(s) }

// FuzzyFilter returns the records whose names fuzzy-match query, best match
// first. An empty query returns games unchanged.
func FuzzyFilter(games []Boardgame, query string) []Boardgame {
	query = strings.TrimSpace(query)
	if query == "" {
		return games
	}
	matches := fuzzy.FindFrom(query, nameSource(games))
	out := make([]Boardgame, 0, len(matches))
	for _, m := range matches {
		out = append(out, games[m.Index])
	}
	return out
}

// SimilarNames returns names of other records within SimilarNameDistance
// edits of name (case-insensitive). Exact matches and the record with
// skipID are ignored.
func SimilarNames(name string, games []Boardgame, skipID int64) []string {
	target := strings.ToLower(strings.TrimSpace(name))
	if target == "" {
		return nil
	}

	var similar []string
	for _, g := range games {
		if skipID != 0 && g.ID == skipID {
			continue
		}
		other := strings.ToLower(strings.TrimSpace(g.Name))
		if other == target {
			continue
		}
		if levenshtein.ComputeDistance(target, other) <= SimilarNameDistance {
			similar = append(similar, g.Name)
		}
	}
	sort.Strings(similar)
	return similar
}
