package espn_client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tbrandt/draftkit/go/internal/models"
)

// settingsResponse is the slice of the mSettings league payload this client
// consumes.
type settingsResponse struct {
	Settings struct {
		Name           string `json:"name"`
		Size           int    `json:"size"`
		RosterSettings struct {
			LineupSlotCounts map[string]int `json:"lineupSlotCounts"`
		} `json:"rosterSettings"`
		ScoringSettings struct {
			ScoringItems []struct {
				StatID          int                `json:"statId"`
				Points          float64            `json:"points"`
				PointsOverrides map[string]float64 `json:"pointsOverrides"`
			} `json:"scoringItems"`
		} `json:"scoringSettings"`
	} `json:"settings"`
}

// FetchLeagueSettings retrieves and parses a league's roster and scoring
// configuration. Any failure is returned as-is; the caller decides whether
// to fall back to defaults.
func (c *ESPNClient) FetchLeagueSettings(ctx context.Context, leagueID, year int) (*models.LeagueSettings, error) {
	endpoint := fmt.Sprintf(LeagueEndpointFormat, year, leagueID) + "?view=" + SettingsView
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch league settings: %w", err)
	}

	var resp settingsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse league settings: %w", err)
	}

	slotCounts := make(map[string]int)
	for slotID, count := range resp.Settings.RosterSettings.LineupSlotCounts {
		if count <= 0 {
			continue
		}
		name, ok := lineupSlotNames[slotID]
		if !ok {
			continue
		}
		slotCounts[name] += count
	}
	if len(slotCounts) == 0 {
		return nil, fmt.Errorf("league settings contain no usable lineup slots")
	}

	return &models.LeagueSettings{
		Name:             resp.Settings.Name,
		LeagueID:         leagueID,
		Year:             year,
		NumTeams:         resp.Settings.Size,
		RosterSlotCounts: slotCounts,
		ScoringType:      c.scoringType(resp),
	}, nil
}

// scoringType reads the receptions scoring item. ESPN keeps the effective
// value in the points-override keyed "16"; the base points field is the
// fallback.
func (c *ESPNClient) scoringType(resp settingsResponse) models.ScoringMode {
	for _, item := range resp.Settings.ScoringSettings.ScoringItems {
		if item.StatID != ReceptionsStatID {
			continue
		}
		points := item.Points
		if override, ok := item.PointsOverrides["16"]; ok {
			points = override
		}
		switch points {
		case 1.0:
			return models.ScoringPPR
		case 0.5:
			return models.ScoringHalfPPR
		}
		return models.ScoringStandard
	}
	return models.ScoringStandard
}
