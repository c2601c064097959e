// Package session orchestrates a single interactive draft: pick sequencing,
// roster assignment, undo, drops, and snapshot persistence.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/tbrandt/draftkit/go/internal/draftlog"
	"github.com/tbrandt/draftkit/go/internal/fuzzy"
	"github.com/tbrandt/draftkit/go/internal/league"
	"github.com/tbrandt/draftkit/go/internal/models"
	"github.com/tbrandt/draftkit/go/internal/pool"
	"github.com/tbrandt/draftkit/go/internal/recommend"
	"github.com/tbrandt/draftkit/go/internal/resolver"
	"github.com/tbrandt/draftkit/go/internal/roster"
	"github.com/tbrandt/draftkit/go/internal/session/statestore"
)

// Domain rejections. All of them leave session state untouched.
var (
	ErrAlreadyDrafted      = errors.New("player already drafted")
	ErrPositionNotInLeague = errors.New("position not in league")
	ErrUndoNotAllowed      = errors.New("only the most recent pick can be undone")
	ErrNotOnRoster         = errors.New("player not on roster")
)

// Team identifies who a recorded pick belongs to.
type Team string

const (
	TeamMine  Team = "mine"
	TeamOther Team = "other"
)

// Cutoff and list size for drop-target matching against rostered names.
const (
	dropMatchCutoff = 0.6
	dropMatchLimit  = 3
)

// StateStore persists and restores full-session snapshots.
type StateStore interface {
	Save(state *models.DraftState) error
	Load() (*models.DraftState, error)
	ListBackups(n int) ([]statestore.BackupInfo, error)
	LoadBackup(name string) (*models.DraftState, error)
}

// Journal records committed mutations for post-draft review. A nil Journal
// disables journaling.
type Journal interface {
	Record(ctx context.Context, e draftlog.Entry) error
}

// PickResult reports the outcome of a draft attempt. When the resolver could
// not settle on one player, Outcome carries the candidates or suggestions and
// nothing was mutated. SaveErr is non-nil when the pick committed in memory
// but the snapshot write failed.
type PickResult struct {
	Outcome resolver.Outcome
	Player  string
	Pick    int
	Slot    string
	SaveErr error
}

// Session is the single-operator draft state machine.
type Session struct {
	format   *league.Format
	pool     *pool.Pool
	roster   *roster.SlotManager
	resolver *resolver.Resolver
	engine   *recommend.Engine
	store    StateStore
	journal  Journal
	clock    clockwork.Clock

	sessionID   string
	currentPick int
	drafted     []string
	draftedSet  map[string]bool
	myTeam      []models.TeamPick
}

// New builds a fresh session at pick 1. journal may be nil.
func New(format *league.Format, p *pool.Pool, store StateStore, journal Journal, clock clockwork.Clock) *Session {
	return &Session{
		format:      format,
		pool:        p,
		roster:      roster.NewSlotManager(format),
		resolver:    resolver.New(p, format),
		engine:      recommend.NewEngine(p, format, recommend.DefaultParams()),
		store:       store,
		journal:     journal,
		clock:       clock,
		sessionID:   uuid.NewString(),
		currentPick: 1,
		draftedSet:  make(map[string]bool),
	}
}

// DraftPlayer resolves text to a player and records the pick. For my own
// picks the player must land in a roster slot; a full roster rejects the
// whole pick. Success advances the pick counter and persists a snapshot;
// snapshot failure is reported via PickResult.SaveErr, not rolled back.
func (s *Session) DraftPlayer(ctx context.Context, text string, team Team) (PickResult, error) {
	if entry := s.pool.ByName(strings.TrimSpace(text)); entry != nil && s.draftedSet[lower(entry.Name)] {
		return PickResult{}, fmt.Errorf("%w: %s", ErrAlreadyDrafted, entry.Name)
	}

	outcome := s.resolver.Resolve(text, s.draftedSet)
	if outcome.Kind != resolver.KindResolved {
		return PickResult{Outcome: outcome}, nil
	}
	entry := outcome.Entry

	if !s.format.PositionInLeague(entry.Position) {
		return PickResult{}, fmt.Errorf("%w: %s plays %s", ErrPositionNotInLeague, entry.Name, entry.Position)
	}

	pick := s.currentPick
	slot := ""
	if team == TeamMine {
		var err error
		slot, err = s.roster.AddPlayer(entry.Name, entry.Position, pick)
		if err != nil {
			return PickResult{}, fmt.Errorf("failed to roster %s: %w", entry.Name, err)
		}
		s.myTeam = append(s.myTeam, models.TeamPick{
			Player:   entry.Name,
			Position: entry.Position,
			Pick:     pick,
			Slot:     slot,
		})
	}

	s.drafted = append(s.drafted, entry.Name)
	s.draftedSet[lower(entry.Name)] = true
	s.currentPick++

	log.Info().
		Str("player", entry.Name).
		Str("position", string(entry.Position)).
		Int("pick", pick).
		Str("slot", slot).
		Str("team", string(team)).
		Msg("pick recorded")

	s.record(ctx, draftlog.ActionPick, pick, entry.Name, string(entry.Position), slot, string(team))
	saveErr := s.persist()

	return PickResult{Outcome: outcome, Player: entry.Name, Pick: pick, Slot: slot, SaveErr: saveErr}, nil
}

// UndoLastPick reverses the immediately preceding pick of mine: clears the
// slot, removes the player from the drafted sequence and steps the pick
// counter back. Any other situation is rejected unchanged.
func (s *Session) UndoLastPick(ctx context.Context) (models.TeamPick, error) {
	if len(s.myTeam) == 0 {
		return models.TeamPick{}, ErrUndoNotAllowed
	}
	last := s.myTeam[len(s.myTeam)-1]
	if last.Pick != s.currentPick-1 {
		return models.TeamPick{}, fmt.Errorf("%w: last pick of mine was #%d, current pick is #%d",
			ErrUndoNotAllowed, last.Pick, s.currentPick)
	}

	if _, err := s.roster.ClearSlot(last.Slot); err != nil {
		return models.TeamPick{}, fmt.Errorf("failed to clear slot %s: %w", last.Slot, err)
	}
	s.myTeam = s.myTeam[:len(s.myTeam)-1]
	s.drafted = s.drafted[:len(s.drafted)-1]
	delete(s.draftedSet, lower(last.Player))
	s.currentPick--

	log.Info().Str("player", last.Player).Int("pick", last.Pick).Msg("pick undone")
	s.record(ctx, draftlog.ActionUndo, last.Pick, last.Player, string(last.Position), last.Slot, string(TeamMine))
	if err := s.persist(); err != nil {
		return last, err
	}
	return last, nil
}

// DropPlayer frees a rostered player and returns them to the draftable pool.
// The name matches against my roster only, exact first then fuzzy. Unlike
// undo, pick numbering is untouched.
func (s *Session) DropPlayer(ctx context.Context, text string) (models.TeamPick, error) {
	idx := s.findRostered(text)
	if idx < 0 {
		return models.TeamPick{}, fmt.Errorf("%w: %s", ErrNotOnRoster, strings.TrimSpace(text))
	}
	dropped := s.myTeam[idx]

	if _, err := s.roster.ClearSlot(dropped.Slot); err != nil {
		return models.TeamPick{}, fmt.Errorf("failed to clear slot %s: %w", dropped.Slot, err)
	}
	s.myTeam = append(s.myTeam[:idx], s.myTeam[idx+1:]...)
	for i, name := range s.drafted {
		if name == dropped.Player {
			s.drafted = append(s.drafted[:i], s.drafted[i+1:]...)
			break
		}
	}
	delete(s.draftedSet, lower(dropped.Player))

	log.Info().Str("player", dropped.Player).Str("slot", dropped.Slot).Msg("player dropped")
	s.record(ctx, draftlog.ActionDrop, dropped.Pick, dropped.Player, string(dropped.Position), dropped.Slot, string(TeamMine))
	if err := s.persist(); err != nil {
		return dropped, err
	}
	return dropped, nil
}

// findRostered matches text against my rostered names, exact
// case-insensitive first, then a lone unambiguous fuzzy match.
func (s *Session) findRostered(text string) int {
	query := lower(strings.TrimSpace(text))
	names := make([]string, len(s.myTeam))
	for i, p := range s.myTeam {
		names[i] = lower(p.Player)
		if names[i] == query {
			return i
		}
	}
	matches := fuzzy.CloseMatches(query, names, dropMatchLimit, dropMatchCutoff)
	if len(matches) == 1 {
		return matches[0].Index
	}
	return -1
}

// Save writes a snapshot on explicit operator request.
func (s *Session) Save() error {
	if err := s.store.Save(s.snapshot()); err != nil {
		return fmt.Errorf("failed to save draft state: %w", err)
	}
	return nil
}

// LoadState restores the session from the primary snapshot file, replacing
// all in-memory progress.
func (s *Session) LoadState() error {
	state, err := s.store.Load()
	if err != nil {
		return err
	}
	return s.restore(state)
}

// ListBackups returns up to n snapshot backups, newest first.
func (s *Session) ListBackups(n int) ([]statestore.BackupInfo, error) {
	return s.store.ListBackups(n)
}

// RestoreBackup replaces session state from the named backup and persists it
// as the new primary snapshot.
func (s *Session) RestoreBackup(name string) error {
	state, err := s.store.LoadBackup(name)
	if err != nil {
		return err
	}
	if err := s.restore(state); err != nil {
		return err
	}
	return s.Save()
}

// Status is a point-in-time summary for display.
type Status struct {
	SessionID    string
	CurrentPick  int
	CurrentRound int
	TotalRounds  int
	DraftedCount int
	MyTeam       []models.TeamPick
	RecentPicks  []string
	RosterFull   bool
}

// Status reports the current draft position. RecentPicks holds the last five
// drafted names, most recent first.
func (s *Session) Status() Status {
	recent := make([]string, 0, 5)
	for i := len(s.drafted) - 1; i >= 0 && len(recent) < 5; i-- {
		recent = append(recent, s.drafted[i])
	}
	return Status{
		SessionID:    s.sessionID,
		CurrentPick:  s.currentPick,
		CurrentRound: s.CurrentRound(),
		TotalRounds:  s.TotalRounds(),
		DraftedCount: len(s.drafted),
		MyTeam:       append([]models.TeamPick(nil), s.myTeam...),
		RecentPicks:  recent,
		RosterFull:   s.roster.IsFull(),
	}
}

// Recommendations returns the top n suggestions for the current situation.
func (s *Session) Recommendations(n int) []recommend.Recommendation {
	return s.engine.Recommend(recommend.Input{
		CurrentPick:       s.currentPick,
		CurrentRound:      s.CurrentRound(),
		TotalRounds:       s.TotalRounds(),
		Drafted:           s.draftedSet,
		Needs:             s.roster.NeedsAnalysis(),
		Summary:           s.roster.PositionSummary(),
		CriticalPositions: s.roster.CriticalPositions(),
	}, n)
}

// Needs exposes the roster's current needs analysis for display.
func (s *Session) Needs() roster.Needs {
	return s.roster.NeedsAnalysis()
}

// CurrentPick returns the 1-based overall pick about to be made.
func (s *Session) CurrentPick() int {
	return s.currentPick
}

// CurrentRound derives the round from the pick counter and league size.
func (s *Session) CurrentRound() int {
	return (s.currentPick-1)/s.format.NumTeams() + 1
}

// TotalRounds equals the roster size: every team fills every slot.
func (s *Session) TotalRounds() int {
	return s.format.TotalRosterSpots()
}

// IsLateRound reports whether deferral of K and D/ST has lifted.
func (s *Session) IsLateRound() bool {
	return s.CurrentRound() >= s.TotalRounds()-1
}

// persist writes a snapshot after a committed mutation. Failure is a
// warning: the in-memory pick stands and the operator can retry with an
// explicit save.
func (s *Session) persist() error {
	if err := s.store.Save(s.snapshot()); err != nil {
		log.Warn().Err(err).Msg("failed to persist draft state, pick kept in memory")
		return err
	}
	return nil
}

func (s *Session) record(ctx context.Context, action string, pick int, player, position, slot, team string) {
	if s.journal == nil {
		return
	}
	err := s.journal.Record(ctx, draftlog.Entry{
		ID:        uuid.New(),
		SessionID: s.sessionID,
		Action:    action,
		Pick:      pick,
		Player:    player,
		Position:  position,
		Slot:      slot,
		Team:      team,
		At:        s.clock.Now(),
	})
	if err != nil {
		log.Warn().Err(err).Str("action", action).Msg("failed to journal draft event")
	}
}

func (s *Session) snapshot() *models.DraftState {
	return &models.DraftState{
		Timestamp: s.clock.Now().Format("2006-01-02T15:04:05"),
		LeagueInfo: models.LeagueInfo{
			SessionID:         s.sessionID,
			Name:              s.format.Name(),
			LeagueID:          s.format.LeagueID(),
			Year:              s.format.Year(),
			ScoringType:       s.format.Scoring(),
			HasQBFlex:         s.format.HasQBFlex(),
			EligiblePositions: s.format.AllEligiblePositions(),
		},
		DraftProgress: models.DraftProgress{
			CurrentPick:    s.currentPick,
			DraftedPlayers: append([]string(nil), s.drafted...),
			MyTeam:         append([]models.TeamPick(nil), s.myTeam...),
		},
		RosterState: models.RosterState{
			Roster:       s.roster.Snapshot(),
			RosterConfig: s.format.SlotCounts(),
		},
	}
}

func (s *Session) restore(state *models.DraftState) error {
	if err := s.roster.Restore(state.RosterState.Roster); err != nil {
		return fmt.Errorf("failed to restore roster: %w", err)
	}

	s.currentPick = state.DraftProgress.CurrentPick
	if s.currentPick < 1 {
		s.currentPick = 1
	}
	s.drafted = append([]string(nil), state.DraftProgress.DraftedPlayers...)
	s.myTeam = append([]models.TeamPick(nil), state.DraftProgress.MyTeam...)
	s.draftedSet = make(map[string]bool, len(s.drafted))
	for _, name := range s.drafted {
		s.draftedSet[lower(name)] = true
	}
	if state.LeagueInfo.SessionID != "" {
		s.sessionID = state.LeagueInfo.SessionID
	}

	log.Info().
		Int("current_pick", s.currentPick).
		Int("drafted", len(s.drafted)).
		Int("my_team", len(s.myTeam)).
		Msg("draft state restored")
	return nil
}

func lower(s string) string {
	return strings.ToLower(s)
}
