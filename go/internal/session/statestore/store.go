// Package statestore persists draft snapshots as JSON. The primary file is
// replaced atomically (temp write then rename) and every save also drops a
// timestamped backup, with only the newest backups retained.
package statestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/tbrandt/draftkit/go/internal/models"
)

const (
	backupPrefix     = "draft_backup_"
	backupTimeLayout = "20060102_150405"
	defaultKeep      = 10
)

// BackupInfo describes one backup file on disk.
type BackupInfo struct {
	Name    string
	ModTime time.Time
}

// Store writes and reads draft snapshots under a single primary path.
type Store struct {
	path      string
	backupDir string
	keep      int
	clock     clockwork.Clock
}

// New builds a store for the given primary file. Backups live in a
// backups/ directory next to it.
func New(path string, clock clockwork.Clock) *Store {
	return &Store{
		path:      path,
		backupDir: filepath.Join(filepath.Dir(path), "backups"),
		keep:      defaultKeep,
		clock:     clock,
	}
}

// Save writes the snapshot to the primary file via a temp-file rename, then
// copies it to a timestamped backup and rotates old backups. A backup or
// rotation failure is logged but does not fail the save; the primary write
// already succeeded.
func (s *Store) Save(state *models.DraftState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal draft state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write draft state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace draft state: %w", err)
	}

	if err := s.writeBackup(data); err != nil {
		log.Warn().Err(err).Msg("failed to write state backup")
	}
	return nil
}

// Load reads the primary snapshot. Callers distinguish a missing file via
// errors.Is(err, fs.ErrNotExist).
func (s *Store) Load() (*models.DraftState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft state: %w", err)
	}
	var state models.DraftState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse draft state: %w", err)
	}
	return &state, nil
}

// ListBackups returns up to n backups, newest first by modification time.
func (s *Store) ListBackups(n int) ([]BackupInfo, error) {
	backups, err := s.backups()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(backups) > n {
		backups = backups[:n]
	}
	return backups, nil
}

// LoadBackup reads one backup by file name, as returned by ListBackups.
func (s *Store) LoadBackup(name string) (*models.DraftState, error) {
	if name != filepath.Base(name) || !strings.HasPrefix(name, backupPrefix) {
		return nil, fmt.Errorf("invalid backup name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(s.backupDir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	var state models.DraftState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse backup: %w", err)
	}
	return &state, nil
}

func (s *Store) writeBackup(data []byte) error {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	name := backupPrefix + s.clock.Now().Format(backupTimeLayout) + ".json"
	if err := os.WriteFile(filepath.Join(s.backupDir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return s.rotate()
}

// rotate deletes all but the newest keep backups.
func (s *Store) rotate() error {
	backups, err := s.backups()
	if err != nil {
		return err
	}
	for _, b := range backups[min(s.keep, len(backups)):] {
		if err := os.Remove(filepath.Join(s.backupDir, b.Name)); err != nil {
			return fmt.Errorf("failed to remove old backup: %w", err)
		}
	}
	return nil
}

// backups lists backup files newest first by modification time.
func (s *Store) backups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), backupPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat backup: %w", err)
		}
		backups = append(backups, BackupInfo{Name: entry.Name(), ModTime: info.ModTime()})
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].ModTime.After(backups[j].ModTime)
	})
	return backups, nil
}
