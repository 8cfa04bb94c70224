package persist

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"pkt.systems/pslog"
)

// Store persists named JSON documents in a directory.
type Store struct {
	dir string
	log pslog.Logger
}

// NewStore constructs a persistent store at the given directory.
func NewStore(dir string) (*Store, error) {
	return NewStoreWithLogger(dir, nil)
}

// NewStoreWithLogger constructs a persistent store with logging.
func NewStoreWithLogger(dir string, logger pslog.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	if logger != nil {
		logger = logger.With("state_dir", dir)
	}
	return &Store{dir: dir, log: logger}, nil
}

// Dir returns the directory documents are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Load decodes the named document into out. It reports false without an
// error when the document does not exist.
func (s *Store) Load(name string, out any) (bool, error) {
	data, err := os.ReadFile(s.pathFor(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if s.log != nil {
				s.log.Debug("state load miss", "doc", name)
			}
			return false, nil
		}
		s.warn("state load failed", name, err)
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.warn("state load failed", name, err)
		return false, err
	}
	if s.log != nil {
		s.log.Debug("state load ok", "doc", name, "bytes", len(data))
	}
	return true, nil
}

// Save writes the named document. The previous version is replaced
// atomically.
func (s *Store) Save(name string, v any) error {
	path := s.pathFor(name)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.warn("state save failed", name, err)
		return err
	}
	if err := writeAtomic(path, data); err != nil {
		s.warn("state save failed", name, err)
		return err
	}
	if s.log != nil {
		s.log.Trace("state save ok", "doc", name, "bytes", len(data))
	}
	return nil
}

// Remove deletes the named document. A missing document is not an error.
func (s *Store) Remove(name string) error {
	err := os.Remove(s.pathFor(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.warn("state remove failed", name, err)
		return err
	}
	return nil
}

func (s *Store) warn(msg, name string, err error) {
	if s.log != nil {
		s.log.Warn(msg, "doc", name, "err", err)
	}
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "state-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *Store) pathFor(name string) string {
	clean := sanitize(name)
	if clean == "" {
		clean = "unknown"
	}
	return filepath.Join(s.dir, clean+".json")
}

func sanitize(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
