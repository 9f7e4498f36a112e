package brackets

import (
	"reflect"
	"testing"

	"github.com/Dosada05/poule-tournament/models"
)

func playedGroups(t *testing.T, n int, seed uint64) []models.Group {
	t.Helper()
	groups, err := CreateGroups(playerNames(n), SeededRandom(seed))
	if err != nil {
		t.Fatalf("CreateGroups(%d): %v", n, err)
	}
	return playGroups(t, groups)
}

func topTwo(groups []models.Group) []string {
	var names []string
	for _, g := range groups {
		names = append(names, g.Standings[0].Name, g.Standings[1].Name)
	}
	return names
}

func TestQualifierTarget(t *testing.T) {
	cases := map[int]int{2: 4, 8: 4, 9: 8, 16: 8, 17: 16, 64: 16}
	for total, want := range cases {
		if got := QualifierTarget(total); got != want {
			t.Errorf("QualifierTarget(%d) = %d, want %d", total, got, want)
		}
	}
}

func TestSelectQualifiersTopTwoOnly(t *testing.T) {
	for _, n := range []int{8, 16} {
		groups := playedGroups(t, n, uint64(n))
		got := SelectQualifiers(groups, n)
		if len(got) != QualifierTarget(n) {
			t.Fatalf("n=%d: got %d qualifiers, want %d", n, len(got), QualifierTarget(n))
		}
		if names := QualifierNames(got); !reflect.DeepEqual(names, topTwo(groups)) {
			t.Fatalf("n=%d: got %v, want %v", n, names, topTwo(groups))
		}
	}
}

func TestSelectQualifiersTwentyPlayers(t *testing.T) {
	groups := playedGroups(t, 20, 11)
	if len(groups) != 5 {
		t.Fatalf("got %d groups, want 5", len(groups))
	}

	got := SelectQualifiers(groups, 20)
	if len(got) != 16 {
		t.Fatalf("got %d qualifiers, want 16", len(got))
	}
	names := QualifierNames(got)
	if !reflect.DeepEqual(names[:10], topTwo(groups)) {
		t.Fatalf("first ten are not the group top-two: %v", names[:10])
	}

	thirds := make(map[string]bool)
	for _, g := range groups {
		thirds[g.Standings[2].Name] = true
	}
	for i := 10; i < 15; i++ {
		if !thirds[names[i]] {
			t.Errorf("qualifier %d (%s) is not a third-placed player", i, names[i])
		}
		if i > 10 && CompareStandings(got[i-1], got[i]) > 0 {
			t.Errorf("third-placed qualifiers %d and %d out of order", i-1, i)
		}
	}
	// Five thirds are not enough: the first group's fourth fills the last slot.
	if names[15] != groups[0].Standings[3].Name {
		t.Errorf("last qualifier = %s, want %s", names[15], groups[0].Standings[3].Name)
	}
}

func TestSelectQualifiersNinePlayers(t *testing.T) {
	groups := playedGroups(t, 9, 5)
	got := SelectQualifiers(groups, 9)
	if len(got) != 8 {
		t.Fatalf("got %d qualifiers, want 8", len(got))
	}
	names := QualifierNames(got)
	if !reflect.DeepEqual(names[:6], topTwo(groups)) {
		t.Fatalf("first six are not the group top-two: %v", names[:6])
	}

	selected := make(map[string]bool)
	for _, n := range names {
		selected[n] = true
	}
	for _, g := range groups {
		third := g.Standings[2]
		if selected[third.Name] {
			continue
		}
		if CompareStandings(got[7], third) > 0 {
			t.Errorf("left out %s ranks above selected %s", third.Name, got[7].Name)
		}
	}
}

func TestSelectQualifiersTruncates(t *testing.T) {
	groups := playedGroups(t, 40, 2)
	got := SelectQualifiers(groups, 40)
	if len(got) != 16 {
		t.Fatalf("got %d qualifiers, want 16", len(got))
	}
	if names := QualifierNames(got); !reflect.DeepEqual(names, topTwo(groups)[:16]) {
		t.Fatalf("got %v", names)
	}
}

func TestSelectQualifiersSmallFields(t *testing.T) {
	// Five players share one group: top two, the third, then the fourth.
	groups := playedGroups(t, 5, 8)
	got := SelectQualifiers(groups, 5)
	if names := QualifierNames(got); !reflect.DeepEqual(names, QualifierNames(groups[0].Standings[:4])) {
		t.Fatalf("n=5: got %v", names)
	}

	// Three players cannot fill a four-player knockout.
	groups = playedGroups(t, 3, 8)
	if got := SelectQualifiers(groups, 3); len(got) != 3 {
		t.Fatalf("n=3: got %d qualifiers, want 3", len(got))
	}
}

func TestEliminatedPlayers(t *testing.T) {
	all := []string{"a", "b", "c", "d", "e"}
	qualified := []models.StandingsRow{{Name: "d"}, {Name: "a"}}
	got := EliminatedPlayers(all, qualified)
	if want := []string{"b", "c", "e"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
