package models

// StandingsRow is derived entirely from a group's matches and is never
// patched in place: Points == 3*Won + Drawn, Diff == GoalsFor - GoalsAgainst,
// Played == Won + Drawn + Lost.
type StandingsRow struct {
	Name         string `json:"name"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	Diff         int    `json:"diff"`
	Points       int    `json:"points"`
}

func NewStandingsRow(name string) StandingsRow {
	return StandingsRow{Name: name}
}
