package brackets

import (
	"github.com/Dosada05/poule-tournament/models"
)

// QualifierTarget is the knockout size for a tournament of totalPlayers.
func QualifierTarget(totalPlayers int) int {
	switch {
	case totalPlayers <= 8:
		return 4
	case totalPlayers <= 16:
		return 8
	default:
		return 16
	}
}

// SelectQualifiers picks the knockout field from final group standings: the
// top two of every group, then the best third-placed players, then (only for
// very small or unbalanced groups) anyone ranked lower, in group order. The
// result never exceeds QualifierTarget(totalPlayers) and may fall short of it
// when the groups do not hold enough players.
func SelectQualifiers(groups []models.Group, totalPlayers int) []models.StandingsRow {
	target := QualifierTarget(totalPlayers)
	qualified := make([]models.StandingsRow, 0, target)
	thirdPlaced := make([]models.StandingsRow, 0, len(groups))

	for _, g := range groups {
		top := min(2, len(g.Standings))
		qualified = append(qualified, g.Standings[:top]...)
		if len(g.Standings) > 2 {
			thirdPlaced = append(thirdPlaced, g.Standings[2])
		}
	}

	if len(qualified) < target && len(thirdPlaced) > 0 {
		sortStandings(thirdPlaced)
		needed := min(target-len(qualified), len(thirdPlaced))
		qualified = append(qualified, thirdPlaced[:needed]...)
	}

	if len(qualified) < target {
		selected := make(map[string]struct{}, len(qualified))
		for _, row := range qualified {
			selected[row.Name] = struct{}{}
		}
		for _, g := range groups {
			for i := 3; i < len(g.Standings) && len(qualified) < target; i++ {
				row := g.Standings[i]
				if _, ok := selected[row.Name]; ok {
					continue
				}
				selected[row.Name] = struct{}{}
				qualified = append(qualified, row)
			}
		}
	}

	if len(qualified) > target {
		qualified = qualified[:target]
	}
	return qualified
}

func QualifierNames(rows []models.StandingsRow) []string {
	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.Name
	}
	return names
}

// EliminatedPlayers lists, in registration order, every player that did not
// qualify.
func EliminatedPlayers(all []string, qualified []models.StandingsRow) []string {
	in := make(map[string]struct{}, len(qualified))
	for _, row := range qualified {
		in[row.Name] = struct{}{}
	}
	eliminated := make([]string, 0, len(all))
	for _, name := range all {
		if _, ok := in[name]; !ok {
			eliminated = append(eliminated, name)
		}
	}
	return eliminated
}
