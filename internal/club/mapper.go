package club

import (
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ledger/internal/ledger"
)

// PlayerSuggestion is a known player name with a similarity score.
type PlayerSuggestion struct {
	Name       string
	Confidence float64
}

// PlayerMapper resolves free-typed names (Slack commands, CLI flags) to the
// player names stored in matches.
type PlayerMapper struct {
	store ClubStore
}

// NewPlayerMapper creates a new player mapper
func NewPlayerMapper(store ClubStore) *PlayerMapper {
	return &PlayerMapper{store: store}
}

// Resolve returns the stored name matching query, ignoring case and extra
// spaces. When nothing matches it returns up to three suggestions instead.
func (pm *PlayerMapper) Resolve(query string) (string, []PlayerSuggestion, error) {
	names, err := pm.store.GetAllPlayers()
	if err != nil {
		return "", nil, err
	}

	want := normalizeName(query)
	for _, name := range names {
		if normalizeName(name) == want {
			return name, nil, nil
		}
	}

	suggestions := suggest(want, names)
	log.Debug("No exact player match", "query", query, "suggestions", len(suggestions))
	return "", suggestions, nil
}

func suggest(query string, names []string) []PlayerSuggestion {
	var suggestions []PlayerSuggestion
	for _, name := range names {
		normalized := normalizeName(name)
		score := (stringSimilarity(query, normalized) + tokenSimilarity(query, normalized)) / 2
		if score > 0.3 {
			suggestions = append(suggestions, PlayerSuggestion{Name: name, Confidence: score})
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}
		return suggestions[i].Name < suggestions[j].Name
	})
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}

// playerNames collects the distinct trimmed names across matches, sorted.
func playerNames(matches []ledger.Match) []string {
	seen := make(map[string]struct{})
	for _, m := range matches {
		for _, p := range m.Players() {
			if p = strings.TrimSpace(p); p != "" {
				seen[p] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func stringSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}
	if s1 == "" || s2 == "" {
		return 0.0
	}
	r1, r2 := []rune(s1), []rune(s2)
	maxLen := max(len(r1), len(r2))
	return 1.0 - float64(levenshtein(r1, r2))/float64(maxLen)
}

// tokenSimilarity is the share of tokens in the longer name that have a close
// match in the other.
func tokenSimilarity(s1, s2 string) float64 {
	tokens1 := strings.Fields(s1)
	tokens2 := strings.Fields(s2)
	if len(tokens1) == 0 || len(tokens2) == 0 {
		return 0.0
	}

	var matchCount int
	for _, t1 := range tokens1 {
		for _, t2 := range tokens2 {
			if stringSimilarity(t1, t2) > 0.8 {
				matchCount++
				break
			}
		}
	}
	return float64(matchCount) / float64(max(len(tokens1), len(tokens2)))
}

func levenshtein(s1, s2 []rune) int {
	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}
