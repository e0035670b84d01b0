package match

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/tmux-cmdk/internal/action"
)

// tier orders match quality, lower is better.
type tier int

const (
	tierExact tier = iota
	tierPrefix
	tierWordPrefix
	tierSubstring
	tierFuzzy
)

type ranked struct {
	node     *action.Node
	tier     tier
	distance int
	index    int
}

// Rank filters nodes down to those matching query and orders them best
// first. Nodes are matched on their name, keywords and subtitle; ties keep
// the input order.
func Rank(nodes []*action.Node, query string) []*action.Node {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return append([]*action.Node(nil), nodes...)
	}

	haystacks := make([]string, len(nodes))
	for i, n := range nodes {
		haystacks[i] = n.SearchText()
	}

	distances := make(map[int]int, len(nodes))
	for _, r := range fuzzy.RankFindNormalizedFold(trimmed, haystacks) {
		distances[r.OriginalIndex] = r.Distance
	}

	lower := strings.ToLower(trimmed)
	matches := make([]ranked, 0, len(distances))
	for i, n := range nodes {
		t, ok := classify(n, haystacks[i], lower)
		if !ok {
			d, fuzzyOK := distances[i]
			if !fuzzyOK {
				continue
			}
			matches = append(matches, ranked{node: n, tier: tierFuzzy, distance: d, index: i})
			continue
		}
		matches = append(matches, ranked{node: n, tier: t, distance: distances[i], index: i})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.tier != b.tier {
			return a.tier < b.tier
		}
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		return a.index < b.index
	})

	out := make([]*action.Node, len(matches))
	for i, m := range matches {
		out[i] = m.node
	}
	return out
}

func classify(n *action.Node, haystack, lower string) (tier, bool) {
	name := strings.ToLower(n.Name)
	switch {
	case name == lower:
		return tierExact, true
	case strings.HasPrefix(name, lower):
		return tierPrefix, true
	}
	hay := strings.ToLower(haystack)
	for _, word := range strings.Fields(hay) {
		if strings.HasPrefix(word, lower) {
			return tierWordPrefix, true
		}
	}
	if strings.Contains(hay, lower) {
		return tierSubstring, true
	}
	return 0, false
}
