package brackets

import (
	"fmt"
	"strings"

	"github.com/Dosada05/poule-tournament/models"
)

const groupNamePrefix = "Poule"

// GroupSizes returns the size of every group for n players, in creation order.
func GroupSizes(n int) []int {
	switch {
	case n <= 5:
		return []int{n}
	case n <= 8:
		half := n / 2
		if n%2 == 0 {
			return []int{half, half}
		}
		return []int{half + 1, half}
	case n == 9:
		return []int{3, 3, 3}
	case n == 10:
		return []int{5, 5}
	case n == 11:
		return []int{4, 4, 3}
	}

	// 12+: groups of 4, the remainder absorbed by the first groups or, for 3,
	// by an extra group of 3.
	sizes := make([]int, n/4)
	for i := range sizes {
		sizes[i] = 4
	}
	switch n % 4 {
	case 1:
		sizes[0]++
	case 2:
		sizes[0]++
		sizes[1]++
	case 3:
		sizes = append(sizes, 3)
	}
	return sizes
}

// GroupName labels groups "Poule A" to "Poule Z", then "Poule 27" onwards.
func GroupName(index int) string {
	if index < 26 {
		return fmt.Sprintf("%s %c", groupNamePrefix, rune('A'+index))
	}
	return fmt.Sprintf("%s %d", groupNamePrefix, index+1)
}

// CreateGroups shuffles the players and slices them into groups sized by
// GroupSizes. Each group comes with its round-robin fixtures and zeroed
// standings in player order. The input slice is left untouched.
func CreateGroups(players []string, rnd RandomSource) ([]models.Group, error) {
	if len(players) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughPlayers, len(players))
	}
	for i, p := range players {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("%w (position %d)", ErrInvalidPlayerName, i+1)
		}
	}

	pool := shuffled(players, rnd)
	sizes := GroupSizes(len(pool))
	groups := make([]models.Group, 0, len(sizes))

	offset := 0
	for i, size := range sizes {
		groupPlayers := append([]string(nil), pool[offset:offset+size]...)
		offset += size

		standings := make([]models.StandingsRow, len(groupPlayers))
		for j, name := range groupPlayers {
			standings[j] = models.NewStandingsRow(name)
		}

		groups = append(groups, models.Group{
			Name:      GroupName(i),
			Players:   groupPlayers,
			Matches:   GenerateGroupMatches(groupPlayers),
			Standings: standings,
		})
	}

	return groups, nil
}
