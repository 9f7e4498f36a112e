package brackets

import (
	"fmt"
	"sort"

	"github.com/Dosada05/poule-tournament/models"
)

const (
	pointsForWin  = 3
	pointsForDraw = 1
)

// CompareStandings orders rows by points, then goal difference, then goals
// scored, all descending. It returns a negative number when a ranks above b.
func CompareStandings(a, b models.StandingsRow) int {
	if a.Points != b.Points {
		return b.Points - a.Points
	}
	if a.Diff != b.Diff {
		return b.Diff - a.Diff
	}
	return b.GoalsFor - a.GoalsFor
}

func sortStandings(rows []models.StandingsRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return CompareStandings(rows[i], rows[j]) < 0
	})
}

// UpdateGroupStandings recomputes the table from scratch out of every played
// match. Ties that survive the comparator keep the players' input order.
func UpdateGroupStandings(players []string, matches []models.Match) []models.StandingsRow {
	standings := make([]models.StandingsRow, len(players))
	index := make(map[string]int, len(players))
	for i, name := range players {
		standings[i] = models.NewStandingsRow(name)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	for _, m := range matches {
		if !m.Played || m.Score1 == nil || m.Score2 == nil {
			continue
		}
		i1, ok1 := index[m.Player1]
		i2, ok2 := index[m.Player2]
		if !ok1 || !ok2 {
			continue
		}
		p1, p2 := &standings[i1], &standings[i2]
		s1, s2 := *m.Score1, *m.Score2

		p1.Played++
		p2.Played++
		p1.GoalsFor += s1
		p1.GoalsAgainst += s2
		p2.GoalsFor += s2
		p2.GoalsAgainst += s1

		switch {
		case s1 > s2:
			p1.Won++
			p1.Points += pointsForWin
			p2.Lost++
		case s1 < s2:
			p2.Won++
			p2.Points += pointsForWin
			p1.Lost++
		default:
			p1.Drawn++
			p1.Points += pointsForDraw
			p2.Drawn++
			p2.Points += pointsForDraw
		}
	}

	for i := range standings {
		standings[i].Diff = standings[i].GoalsFor - standings[i].GoalsAgainst
	}
	sortStandings(standings)

	return standings
}

// RecordGroupResult stores a score on a copy of the group and recomputes its
// standings in the same step. Already played matches may be edited.
func RecordGroupResult(group models.Group, matchIndex, score1, score2 int) (models.Group, error) {
	if matchIndex < 0 || matchIndex >= len(group.Matches) {
		return group, fmt.Errorf("%w: %s has no match %d", ErrMatchNotFound, group.Name, matchIndex)
	}
	if score1 < 0 || score2 < 0 {
		return group, fmt.Errorf("%w: scores must be non-negative, got %d-%d", ErrInvalidScore, score1, score2)
	}

	updated := group.Clone()
	m := &updated.Matches[matchIndex]
	m.Score1 = &score1
	m.Score2 = &score2
	m.Played = true

	updated.Standings = UpdateGroupStandings(updated.Players, updated.Matches)
	return updated, nil
}

// GroupStageComplete reports whether every group match has a result.
func GroupStageComplete(groups []models.Group) bool {
	for _, g := range groups {
		for _, m := range g.Matches {
			if !m.Played {
				return false
			}
		}
	}
	return true
}
