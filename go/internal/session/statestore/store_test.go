package statestore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbrandt/draftkit/go/internal/models"
)

func sampleState(pick int) *models.DraftState {
	return &models.DraftState{
		Timestamp: "2025-08-30T19:00:00",
		LeagueInfo: models.LeagueInfo{
			SessionID: "session-1",
			Name:      "Test League",
		},
		DraftProgress: models.DraftProgress{
			CurrentPick:    pick,
			DraftedPlayers: []string{"Josh Allen"},
			MyTeam: []models.TeamPick{
				{Player: "Josh Allen", Position: models.PositionQB, Pick: 1, Slot: "QB"},
			},
		},
		RosterState: models.RosterState{
			Roster: map[string]*models.SlotOccupant{
				"QB":  {Name: "Josh Allen", Position: models.PositionQB, Pick: 1, Slot: "QB"},
				"RB1": nil,
			},
			RosterConfig: map[string]int{"QB": 1, "RB": 1},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "state.json"), clockwork.NewFakeClock())

	want := sampleState(2)
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Empty slots survive as explicit nulls, not missing keys.
	occupant, present := got.RosterState.Roster["RB1"]
	assert.True(t, present)
	assert.Nil(t, occupant)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	store := New(path, clockwork.NewFakeClock())

	require.NoError(t, store.Save(sampleState(1)))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, errors.Is(err, fs.ErrNotExist), "temp file must be renamed away")
}

func TestLoadMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "state.json"), clockwork.NewFakeClock())
	_, err := store.Load()
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestBackupRotationKeepsNewestTen(t *testing.T) {
	dir := t.TempDir()
	clock := clockwork.NewFakeClock()
	store := New(filepath.Join(dir, "state.json"), clock)

	for i := 1; i <= 12; i++ {
		require.NoError(t, store.Save(sampleState(i)))
		clock.Advance(time.Second)
	}

	backups, err := store.ListBackups(0)
	require.NoError(t, err)
	assert.Len(t, backups, 10)
	for i := 1; i < len(backups); i++ {
		assert.False(t, backups[i].ModTime.After(backups[i-1].ModTime),
			"backups must be listed newest first")
	}
}

func TestListBackupsLimit(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := New(filepath.Join(t.TempDir(), "state.json"), clock)

	for i := 1; i <= 4; i++ {
		require.NoError(t, store.Save(sampleState(i)))
		clock.Advance(time.Minute)
	}

	backups, err := store.ListBackups(2)
	require.NoError(t, err)
	assert.Len(t, backups, 2)
}

func TestLoadBackupRestoresSnapshot(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := New(filepath.Join(t.TempDir(), "state.json"), clock)

	first := sampleState(1)
	require.NoError(t, store.Save(first))
	clock.Advance(time.Minute)
	require.NoError(t, store.Save(sampleState(9)))

	backups, err := store.ListBackups(0)
	require.NoError(t, err)
	require.Len(t, backups, 2)

	oldest := backups[len(backups)-1]
	got, err := store.LoadBackup(oldest.Name)
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestLoadBackupRejectsPathTraversal(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "state.json"), clockwork.NewFakeClock())

	_, err := store.LoadBackup("../state.json")
	assert.Error(t, err)
	_, err = store.LoadBackup("not_a_backup.json")
	assert.Error(t, err)
}
