package brackets

import (
	"github.com/Dosada05/poule-tournament/models"
)

// GenerateGroupMatches creates the fixtures of a single round-robin: every
// unordered pair of players meets once. Pairs are emitted by input index
// (0-1, 0-2, ..., 1-2, ...), which is the order the match list is shown in.
func GenerateGroupMatches(players []string) []models.Match {
	n := len(players)
	matches := make([]models.Match, 0, n*(n-1)/2)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			matches = append(matches, models.Match{
				Player1: players[i],
				Player2: players[j],
			})
		}
	}

	return matches
}
