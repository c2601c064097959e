package models

import "strings"

// Position is a canonical player position.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDST Position = "D/ST"
)

// BasePositions lists the canonical positions in display order.
var BasePositions = []Position{
	PositionQB,
	PositionRB,
	PositionWR,
	PositionTE,
	PositionK,
	PositionDST,
}

// NormalizePosition maps a raw position label onto the canonical token.
// Defense appears as "D", "DST" or "D/ST" depending on the data source;
// all three normalize to D/ST. Callers normalize at ingress boundaries and
// never compare raw aliases downstream.
func NormalizePosition(raw string) Position {
	p := strings.ToUpper(strings.TrimSpace(raw))
	switch p {
	case "D", "DST", "D/ST":
		return PositionDST
	}
	return Position(p)
}

// IsDefense reports whether the position is the defense/special-teams unit.
func (p Position) IsDefense() bool {
	return p == PositionDST
}
