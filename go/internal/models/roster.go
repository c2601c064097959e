package models

// SlotOccupant records the player occupying a roster slot. A nil occupant
// means the slot is empty; the persisted form keeps the nil as an explicit
// JSON null so that saved rosters round-trip exactly.
type SlotOccupant struct {
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Pick     int      `json:"pick"`
	Slot     string   `json:"slot"`
}

// RosterSlot is one concrete slot on a roster, e.g. "RB2" or "BENCH5".
// Type is the slot-type name the slot was expanded from.
type RosterSlot struct {
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	Occupant *SlotOccupant `json:"occupant"`
}
