package stats

import "sort"

// Rank orders the global summary into the four leaderboards.
// Played, won and lost are sorted descending with ties broken by name. Win rate
// is sorted descending, then by matches played descending, then by name.
func Rank(global map[string]PlayerSummary) Rankings {
	base := make([]RankedPlayer, 0, len(global))
	for player, s := range global {
		s.WinPercentage = WinPercentage(s.Won, s.Played)
		base = append(base, RankedPlayer{Player: player, Stats: s})
	}
	sort.Slice(base, func(i, j int) bool { return base[i].Player < base[j].Player })

	return Rankings{
		ByPlayed: sorted(base, func(a, b RankedPlayer) bool {
			return byCount(a.Stats.Played, b.Stats.Played, a, b)
		}),
		ByWon: sorted(base, func(a, b RankedPlayer) bool {
			return byCount(a.Stats.Won, b.Stats.Won, a, b)
		}),
		ByLost: sorted(base, func(a, b RankedPlayer) bool {
			return byCount(a.Stats.Lost, b.Stats.Lost, a, b)
		}),
		ByWinRate: sorted(base, func(a, b RankedPlayer) bool {
			if a.Stats.WinPercentage != b.Stats.WinPercentage {
				return a.Stats.WinPercentage > b.Stats.WinPercentage
			}
			if a.Stats.Played != b.Stats.Played {
				return a.Stats.Played > b.Stats.Played
			}
			return a.Player < b.Player
		}),
	}
}

func byCount(x, y int, a, b RankedPlayer) bool {
	if x != y {
		return x > y
	}
	return a.Player < b.Player
}

func sorted(base []RankedPlayer, less func(a, b RankedPlayer) bool) []RankedPlayer {
	out := make([]RankedPlayer, len(base))
	copy(out, base)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
