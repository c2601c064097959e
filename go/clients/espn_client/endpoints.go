package espn_client

const (
	// Base URL
	BaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"

	// API Endpoints
	LeagueEndpointFormat = "/seasons/%d/segments/0/leagues/%d"

	// Views
	SettingsView = "mSettings"

	// Scoring stat IDs
	ReceptionsStatID = 53

	// Headers
	CookieHeader = "Cookie"
)

// lineupSlotNames maps ESPN numeric lineup-slot IDs (JSON object keys, so
// strings) to slot-type names. IDs 7 and 17 are both kicker variants.
var lineupSlotNames = map[string]string{
	"0":  "QB",
	"2":  "RB",
	"4":  "WR",
	"6":  "TE",
	"7":  "K",
	"16": "D/ST",
	"17": "K",
	"20": "BENCH",
	"21": "OP",
	"23": "FLEX",
}
