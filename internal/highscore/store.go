// Package highscore persists the best whole score as a plain-text integer file.
package highscore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrMalformed is returned by Parse when the file does not hold an integer.
var ErrMalformed = errors.New("highscore: malformed value")

// Store reads and writes one high score file. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *log.Logger
}

// NewStore creates a store for path. logger may be nil.
func NewStore(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{path: path, logger: logger}
}

// Path returns the file location.
func (s *Store) Path() string { return s.path }

// Read returns the stored value. A missing file wraps fs.ErrNotExist.
func (s *Store) Read() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, fmt.Errorf("highscore: read %s: %w", s.path, err)
	}
	v, err := Parse(data)
	if err != nil {
		return 0, fmt.Errorf("highscore: read %s: %w", s.path, err)
	}
	return v, nil
}

// Load returns the stored value, or 0 with a logged warning when the file is
// missing, empty or malformed.
func (s *Store) Load() int {
	v, err := s.Read()
	if err != nil {
		s.logger.Warn("could not load high score, starting from 0", "err", err)
		return 0
	}
	return v
}

// Save overwrites the file with v, creating parent directories. The write
// goes to a temporary file that replaces the old one, so readers never see a
// partial value.
func (s *Store) Save(v int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("highscore: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("highscore: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.WriteString(Format(v)); err != nil {
		tmp.Close()
		return fmt.Errorf("highscore: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("highscore: write: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("highscore: replace %s: %w", s.path, err)
	}
	return nil
}

// Parse reads the first line of data as a decimal integer. Surrounding
// whitespace is ignored; negative values are malformed.
func Parse(data []byte) (int, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := ""
	if sc.Scan() {
		line = strings.TrimSpace(sc.Text())
	}
	if line == "" {
		return 0, fmt.Errorf("%w: empty", ErrMalformed)
	}
	v, err := strconv.Atoi(line)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, line)
	}
	return v, nil
}

// Format renders v in the file format: decimal digits, no newline.
func Format(v int) string {
	return strconv.Itoa(v)
}
