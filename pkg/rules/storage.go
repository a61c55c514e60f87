package rules

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"strings"

	"github.com/heat1q/clir/pkg/errors"
	"github.com/heat1q/clir/pkg/types"
)

// Store persists the rule set as a flat UTF-8 text file, one normalized
// pattern per line. Mutations rewrite the file in full via a temp file
// and rename, never append.
type Store struct {
	path string
	fs   types.FS
}

// NewStore creates a store backed by the file at path
func NewStore(path string, fsys types.FS) *Store {
	return &Store{path: path, fs: fsys}
}

// Path returns the location of the rules file
func (s *Store) Path() string {
	return s.path
}

// Load reads all pattern lines, skipping blanks. A missing rules file is
// created empty on first load.
func (s *Store) Load() ([]string, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		// errors.Is sees through wrapping FS implementations, where
		// os.IsNotExist would not
		if stderrors.Is(err, fs.ErrNotExist) {
			if err := s.fs.WriteFile(s.path, nil, 0o644); err != nil {
				return nil, errors.Wrap(err, errors.ErrRulesLoad, "failed to create rules file")
			}
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrRulesLoad, "failed to read rules file")
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Save rewrites the rules file with the given patterns
func (s *Store) Save(patterns []string) error {
	var buf bytes.Buffer
	for _, p := range patterns {
		buf.WriteString(p)
		buf.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := s.fs.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, errors.ErrRulesSave, "failed to write rules file")
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, errors.ErrRulesSave, "failed to replace rules file")
	}
	return nil
}
