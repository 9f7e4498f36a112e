package models

type BracketMatchState string

const (
	BracketMatchPending BracketMatchState = "pending"
	BracketMatchReady   BracketMatchState = "ready"
	BracketMatchDecided BracketMatchState = "decided"
)

// BracketMatch is a knockout match. A nil player is a slot still waiting for
// the winner of a previous round; nil scores mean the match was not played.
type BracketMatch struct {
	Player1 *string `json:"player1"`
	Player2 *string `json:"player2"`
	Score1  *int    `json:"score1,omitempty"`
	Score2  *int    `json:"score2,omitempty"`
	Winner  *string `json:"winner"`
}

func (m BracketMatch) State() BracketMatchState {
	switch {
	case m.Winner != nil:
		return BracketMatchDecided
	case m.Player1 != nil && m.Player2 != nil:
		return BracketMatchReady
	default:
		return BracketMatchPending
	}
}

type Round []BracketMatch

// Bracket holds the rounds from the largest to the final.
type Bracket []Round

func (b Bracket) Clone() Bracket {
	if b == nil {
		return nil
	}
	out := make(Bracket, len(b))
	for r, round := range b {
		out[r] = make(Round, len(round))
		for i, m := range round {
			out[r][i] = BracketMatch{
				Player1: cloneString(m.Player1),
				Player2: cloneString(m.Player2),
				Score1:  cloneInt(m.Score1),
				Score2:  cloneInt(m.Score2),
				Winner:  cloneString(m.Winner),
			}
		}
	}
	return out
}

// Final returns the last round's only match.
func (b Bracket) Final() (BracketMatch, bool) {
	if len(b) == 0 || len(b[len(b)-1]) != 1 {
		return BracketMatch{}, false
	}
	return b[len(b)-1][0], true
}
