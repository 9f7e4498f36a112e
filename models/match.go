package models

// Match is a group-stage fixture. Played is true iff both scores are set.
type Match struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Score1  *int   `json:"score1"`
	Score2  *int   `json:"score2"`
	Played  bool   `json:"played"`
}

// Group is one round-robin poule.
type Group struct {
	Name      string         `json:"name"`
	Players   []string       `json:"players"`
	Matches   []Match        `json:"matches"`
	Standings []StandingsRow `json:"standings"`
}

// Clone returns a deep copy of the group.
func (g Group) Clone() Group {
	out := Group{
		Name:      g.Name,
		Players:   append([]string(nil), g.Players...),
		Matches:   make([]Match, len(g.Matches)),
		Standings: append([]StandingsRow(nil), g.Standings...),
	}
	for i, m := range g.Matches {
		out.Matches[i] = Match{
			Player1: m.Player1,
			Player2: m.Player2,
			Score1:  cloneInt(m.Score1),
			Score2:  cloneInt(m.Score2),
			Played:  m.Played,
		}
	}
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
