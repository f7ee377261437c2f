package icons

import (
	"sort"
	"strings"
)

// Match is a search hit with its relevance score.
type Match struct {
	Icon
	Score int `json:"score"`
}

// Scoring tiers. Exact id/name matches dominate, then name prefixes,
// then substrings, then keyword and category hits.
const (
	scoreExact        = 100
	scorePrefix       = 80
	scoreSubstring    = 60
	scoreKeywordExact = 50
	scoreKeywordSub   = 30
	scoreCategory     = 20
)

// Search ranks the catalog against a query and returns up to limit
// matches, best first. Ties break on id so results are deterministic.
// A limit of 0 or less means no cap.
func Search(query string, limit int) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []Match
	for _, icon := range Catalog {
		if s := score(icon, q); s > 0 {
			matches = append(matches, Match{Icon: icon, Score: s})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func score(icon Icon, q string) int {
	id := strings.ToLower(icon.ID)
	name := strings.ToLower(icon.Name)

	best := 0
	switch {
	case id == q || name == q:
		best = scoreExact
	case strings.HasPrefix(id, q) || strings.HasPrefix(name, q):
		best = scorePrefix
	case strings.Contains(id, q) || strings.Contains(name, q):
		best = scoreSubstring
	}
	for _, kw := range icon.Keywords {
		kw = strings.ToLower(kw)
		switch {
		case kw == q:
			best = max(best, scoreKeywordExact)
		case strings.Contains(kw, q):
			best = max(best, scoreKeywordSub)
		}
	}
	if strings.EqualFold(icon.Category, q) {
		best = max(best, scoreCategory)
	}
	return best
}
