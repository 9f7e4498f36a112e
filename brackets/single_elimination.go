package brackets

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/Dosada05/poule-tournament/models"
)

func isPowerOfTwo(n int) bool {
	return n >= 2 && n&(n-1) == 0
}

// NumRounds is log2 of the qualifier count.
func NumRounds(qualifiers int) int {
	if !isPowerOfTwo(qualifiers) {
		return 0
	}
	return bits.Len(uint(qualifiers)) - 1
}

// GenerateBracket shuffles the qualifiers, pairs them consecutively into the
// first round and adds placeholder rounds of half the size each until the
// single-match final.
func GenerateBracket(qualifiers []string, rnd RandomSource) (models.Bracket, error) {
	n := len(qualifiers)
	if !isPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBracketSize, n)
	}
	for i, q := range qualifiers {
		if strings.TrimSpace(q) == "" {
			return nil, fmt.Errorf("%w (qualifier %d)", ErrInvalidPlayerName, i+1)
		}
	}

	pool := shuffled(qualifiers, rnd)
	bracket := make(models.Bracket, 0, NumRounds(n))

	first := make(models.Round, 0, n/2)
	for i := 0; i < n; i += 2 {
		p1, p2 := pool[i], pool[i+1]
		first = append(first, models.BracketMatch{Player1: &p1, Player2: &p2})
	}
	bracket = append(bracket, first)

	for size := n / 4; size >= 1; size /= 2 {
		bracket = append(bracket, make(models.Round, size))
	}

	return bracket, nil
}

func matchAt(bracket models.Bracket, roundIndex, matchIndex int) (*models.BracketMatch, error) {
	if roundIndex < 0 || roundIndex >= len(bracket) {
		return nil, fmt.Errorf("%w: round %d out of %d", ErrMatchNotFound, roundIndex, len(bracket))
	}
	round := bracket[roundIndex]
	if matchIndex < 0 || matchIndex >= len(round) {
		return nil, fmt.Errorf("%w: match %d out of %d in round %d", ErrMatchNotFound, matchIndex, len(round), roundIndex)
	}
	return &bracket[roundIndex][matchIndex], nil
}

// RecordMatchResult decides a ready match on a copy of the bracket. The
// winner of match i moves to match i/2 of the next round, into player1 when i
// is even and player2 when odd. When the match is the final nothing is
// propagated and the winner is returned as champion; otherwise champion is "".
func RecordMatchResult(bracket models.Bracket, roundIndex, matchIndex, score1, score2 int) (models.Bracket, string, error) {
	if _, err := matchAt(bracket, roundIndex, matchIndex); err != nil {
		return bracket, "", err
	}
	if score1 < 0 || score2 < 0 {
		return bracket, "", fmt.Errorf("%w: scores must be non-negative, got %d-%d", ErrInvalidScore, score1, score2)
	}
	if score1 == score2 {
		return bracket, "", fmt.Errorf("%w: draws are not allowed in the knockout stage", ErrInvalidScore)
	}

	updated := bracket.Clone()
	m, _ := matchAt(updated, roundIndex, matchIndex)
	switch m.State() {
	case models.BracketMatchPending:
		return bracket, "", fmt.Errorf("%w: round %d match %d", ErrMatchNotReady, roundIndex, matchIndex)
	case models.BracketMatchDecided:
		return bracket, "", fmt.Errorf("%w: round %d match %d", ErrMatchAlreadyDecided, roundIndex, matchIndex)
	}

	winner := *m.Player2
	if score1 > score2 {
		winner = *m.Player1
	}
	m.Score1 = &score1
	m.Score2 = &score2
	m.Winner = &winner

	if roundIndex == len(updated)-1 {
		return updated, winner, nil
	}

	next := &updated[roundIndex+1][matchIndex/2]
	slot := winner
	if matchIndex%2 == 0 {
		next.Player1 = &slot
	} else {
		next.Player2 = &slot
	}
	return updated, "", nil
}

// ReopenMatch clears a decided match so it can be replayed. Everything built
// on its winner is invalidated: the slot it fed is emptied and, if that next
// match was already decided, it is reopened too, all the way to the final.
func ReopenMatch(bracket models.Bracket, roundIndex, matchIndex int) (models.Bracket, error) {
	m, err := matchAt(bracket, roundIndex, matchIndex)
	if err != nil {
		return bracket, err
	}
	if m.Winner == nil {
		return bracket, fmt.Errorf("%w: round %d match %d", ErrMatchNotDecided, roundIndex, matchIndex)
	}

	updated := bracket.Clone()
	reopen(updated, roundIndex, matchIndex)
	return updated, nil
}

func reopen(bracket models.Bracket, roundIndex, matchIndex int) {
	m := &bracket[roundIndex][matchIndex]
	m.Score1, m.Score2, m.Winner = nil, nil, nil

	if roundIndex == len(bracket)-1 {
		return
	}
	nextIndex := matchIndex / 2
	next := &bracket[roundIndex+1][nextIndex]
	if next.Winner != nil {
		reopen(bracket, roundIndex+1, nextIndex)
	}
	if matchIndex%2 == 0 {
		next.Player1 = nil
	} else {
		next.Player2 = nil
	}
}

// RoundName is the display label of a round counted from the final.
func RoundName(roundIndex, totalRounds int) string {
	switch totalRounds - roundIndex {
	case 1:
		return "Finale"
	case 2:
		return "Demi-finales"
	case 3:
		return "Quarts de finale"
	case 4:
		return "8èmes de finale"
	default:
		return fmt.Sprintf("Tour %d", roundIndex+1)
	}
}
