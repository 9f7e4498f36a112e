package models

import (
	"time"

	"github.com/google/uuid"
)

// Phase is the tournament state machine position.
type Phase string

const (
	PhaseConfig    Phase = "config"
	PhaseGroups    Phase = "groups"
	PhaseQualified Phase = "qualified"
	PhaseKnockout  Phase = "knockout"
	PhaseFinished  Phase = "finished"
)

func (p Phase) IsValid() bool {
	switch p {
	case PhaseConfig, PhaseGroups, PhaseQualified, PhaseKnockout, PhaseFinished:
		return true
	}
	return false
}

// Tournament is the full snapshot persisted between transitions. Its JSON
// layout is the one the UI stores: phase, players, groups, qualifiedPlayers,
// knockoutMatches, winner.
type Tournament struct {
	ID               uuid.UUID      `json:"id"`
	Name             string         `json:"name"`
	Phase            Phase          `json:"phase"`
	Players          []string       `json:"players"`
	Groups           []Group        `json:"groups"`
	QualifiedPlayers []StandingsRow `json:"qualifiedPlayers"`
	KnockoutMatches  Bracket        `json:"knockoutMatches"`
	Winner           *string        `json:"winner"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// Clone returns a deep copy so a transition can fail without touching the
// caller's snapshot.
func (t *Tournament) Clone() *Tournament {
	if t == nil {
		return nil
	}
	out := *t
	out.Players = append([]string(nil), t.Players...)
	if t.Groups != nil {
		out.Groups = make([]Group, len(t.Groups))
		for i, g := range t.Groups {
			out.Groups[i] = g.Clone()
		}
	}
	out.QualifiedPlayers = append([]StandingsRow(nil), t.QualifiedPlayers...)
	out.KnockoutMatches = t.KnockoutMatches.Clone()
	out.Winner = cloneString(t.Winner)
	return &out
}

// Qualification is the read model shown between the group stage and the
// knockout draw.
type Qualification struct {
	Qualified  []StandingsRow `json:"qualified"`
	Eliminated []string       `json:"eliminated"`
}
