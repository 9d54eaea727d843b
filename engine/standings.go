package engine

import "sort"

// Standing is one row of the final ranking.
type Standing struct {
	PlayerID string `json:"player"`
	Name     string `json:"name"`
	Alive    bool   `json:"alive"`
	Survived int    `json:"survived"`
	Rank     int    `json:"rank"`
}

// Standings ranks the roster: the winner first once one is set, then
// survivors before the eliminated, then by roulette trials survived,
// roster order breaking ties. Ranks are 1-based. Callable mid-game,
// where it simply ranks the current roster with no winner pinned.
func (g *Game) Standings() []Standing {
	out := make([]Standing, 0, len(g.players))
	for _, p := range g.players {
		out = append(out, Standing{
			PlayerID: p.ID,
			Name:     p.Name,
			Alive:    p.Alive(),
			Survived: p.Survived,
		})
	}

	winner := g.winner
	sort.SliceStable(out, func(i, j int) bool {
		if iw, jw := out[i].PlayerID == winner, out[j].PlayerID == winner; iw != jw {
			return iw
		}
		if out[i].Alive != out[j].Alive {
			return out[i].Alive
		}
		return out[i].Survived > out[j].Survived
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
