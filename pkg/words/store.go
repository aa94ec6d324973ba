package words

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store reads and writes the word collection as a JSON file. Load never
// fails: a missing or unreadable file degrades to the default word set, and
// a bundled read-only seed file, when configured, is copied into place on
// first run.
type Store struct {
	dataPath    string
	bundledPath string
	logger      *zap.Logger
}

// NewStore creates a Store for the given data file. bundledPath may be empty
// when no seed file ships with the install; logger may be nil.
func NewStore(dataPath, bundledPath string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dataPath: dataPath, bundledPath: bundledPath, logger: logger}
}

// Load returns the persisted word collection. On first run it tries to copy
// the bundled seed file into place; on any read or decode failure it falls
// back to DefaultWords and attempts to write them out so the next run finds
// a file. Every returned record has passed normalization.
func (s *Store) Load() []WordRecord {
	if _, err := os.Stat(s.dataPath); os.IsNotExist(err) {
		s.copyBundled()
	}

	data, err := os.ReadFile(s.dataPath)
	if err == nil {
		var records []WordRecord
		if err := json.Unmarshal(data, &records); err == nil && records != nil {
			return records
		}
		s.logger.Warn("word file unreadable, using defaults",
			zap.String("path", s.dataPath), zap.Error(err))
	}

	records := DefaultWords()
	if err := s.Save(records); err != nil {
		s.logger.Warn("writing default words failed",
			zap.String("path", s.dataPath), zap.Error(err))
	}
	return records
}

// Save rewrites the data file in full, via a temp file and rename so a crash
// mid-write cannot leave a truncated collection behind.
func (s *Store) Save(records []WordRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode words: %w", err)
	}

	dir := filepath.Dir(s.dataPath)
	tmp, err := os.CreateTemp(dir, ".words-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write words: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.dataPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.dataPath, err)
	}
	return nil
}

// copyBundled copies the read-only seed file to the data path. Failure is
// not fatal; Load falls back to defaults.
func (s *Store) copyBundled() {
	if s.bundledPath == "" {
		return
	}
	data, err := os.ReadFile(s.bundledPath)
	if err != nil {
		return
	}
	if err := os.WriteFile(s.dataPath, data, 0o644); err != nil {
		s.logger.Warn("copying bundled words failed",
			zap.String("from", s.bundledPath), zap.Error(err))
	}
}
