package brackets

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/Dosada05/poule-tournament/models"
)

func playerNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("P%02d", i+1)
	}
	return names
}

// strength is the number in a playerNames name; the stronger player always
// wins by the difference.
func strength(t *testing.T, name string) int {
	t.Helper()
	n, err := strconv.Atoi(name[1:])
	if err != nil {
		t.Fatalf("unexpected player name %q", name)
	}
	return n
}

func playGroups(t *testing.T, groups []models.Group) []models.Group {
	t.Helper()
	out := make([]models.Group, len(groups))
	for gi, g := range groups {
		for mi, m := range g.Matches {
			a, b := strength(t, m.Player1), strength(t, m.Player2)
			s1, s2 := 0, 0
			if a > b {
				s1 = a - b
			} else {
				s2 = b - a
			}
			var err error
			g, err = RecordGroupResult(g, mi, s1, s2)
			if err != nil {
				t.Fatalf("RecordGroupResult(%s, %d): %v", g.Name, mi, err)
			}
		}
		out[gi] = g
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
