package contest

import "sort"

type RankChange string

const (
	RankUp   RankChange = "up"
	RankDown RankChange = "down"
	RankSame RankChange = "same"
)

// Entry is one leaderboard row. Always derived from current predictions and
// results, never stored.
type Entry struct {
	User   User
	Points int
	Rank   int
	Change RankChange
}

// ComputeStandings derives the leaderboard from scratch. Admin accounts do
// not compete. Open matches contribute nothing; a user with no settled
// predictions scores 0. prevRanks maps userID to the rank held at the
// previous snapshot and may be nil.
func ComputeStandings(users []User, matches []Match, predictions []Prediction, prevRanks map[string]int) []Entry {
	settled := make(map[string]Result, len(matches))
	for _, m := range matches {
		if m.Result != nil {
			settled[m.ID] = *m.Result
		}
	}

	totals := make(map[string]int, len(users))
	for _, p := range predictions {
		res, ok := settled[p.MatchID]
		if !ok {
			continue
		}
		totals[p.UserID] += Points(p.Pick, res)
	}

	entries := make([]Entry, 0, len(users))
	for _, u := range users {
		if u.IsAdmin {
			continue
		}
		entries = append(entries, Entry{User: u, Points: totals[u.ID]})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		// earlier registration wins ties
		return entries[i].User.Seq < entries[j].User.Seq
	})

	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Change = RankSame
		if prev, ok := prevRanks[entries[i].User.ID]; ok {
			switch {
			case entries[i].Rank < prev:
				entries[i].Change = RankUp
			case entries[i].Rank > prev:
				entries[i].Change = RankDown
			}
		}
	}
	return entries
}

// RankMap extracts userID -> rank, for use as the next movement baseline.
func RankMap(entries []Entry) map[string]int {
	ranks := make(map[string]int, len(entries))
	for _, e := range entries {
		ranks[e.User.ID] = e.Rank
	}
	return ranks
}
