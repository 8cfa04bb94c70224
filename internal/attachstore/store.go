// Package attachstore keeps attachment content in a SQLite database,
// optionally encrypted at rest.
package attachstore

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pkt.systems/jirasoap/core"
	"pkt.systems/kryptograf"
	"pkt.systems/kryptograf/keymgmt"
	"pkt.systems/pslog"

	_ "modernc.org/sqlite"
)

const descriptorName = "attachments"

// Options configures Open.
type Options struct {
	// KeyStorePath enables encryption with a data key kept in a kryptograf
	// key store at this path. Empty stores content in plain text.
	KeyStorePath string
	Logger       pslog.Logger
}

// Store implements core.AttachmentStore on SQLite.
type Store struct {
	db     *sql.DB
	log    pslog.Logger
	crypto *cipher
}

var _ core.AttachmentStore = (*Store)(nil)

type cipher struct {
	root     keymgmt.RootKey
	material keymgmt.Material
}

// Open opens or creates the database at path.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("attachment database path is required")
	}
	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0o700); err != nil {
		return nil, err
	}
	dsn := clean + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = pslog.Ctx(ctx)
	}
	log = log.With("attachment_db", clean)
	s := &Store{db: db, log: log}
	if keyStore := strings.TrimSpace(opts.KeyStorePath); keyStore != "" {
		c, err := loadCipher(keyStore)
		if err != nil {
			_ = db.Close()
			log.Warn("attachment store key load failed", "err", err)
			return nil, err
		}
		s.crypto = c
	}
	log.Info("attachment store open", "encrypted", s.crypto != nil)
	return s, nil
}

func loadCipher(path string) (*cipher, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	store, err := keymgmt.LoadProto(path)
	if err != nil {
		return nil, fmt.Errorf("load key store: %w", err)
	}
	root, err := store.EnsureRootKey()
	if err != nil {
		return nil, fmt.Errorf("ensure root key: %w", err)
	}
	material, err := store.EnsureDescriptor(descriptorName, root, []byte(descriptorName))
	if err != nil {
		return nil, fmt.Errorf("ensure data key: %w", err)
	}
	if err := store.Commit(); err != nil {
		return nil, fmt.Errorf("commit key store: %w", err)
	}
	return &cipher{root: root, material: material}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put stores data under id, replacing earlier content.
func (s *Store) Put(ctx context.Context, id int64, data []byte) error {
	blob := data
	if s.crypto != nil {
		sealed, err := s.crypto.seal(data)
		if err != nil {
			s.log.Warn("attachment put failed", "id", id, "err", err)
			return err
		}
		blob = sealed
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO attachments (id, data, size, encrypted, created_at) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET data = excluded.data, size = excluded.size, encrypted = excluded.encrypted
`, id, blob, len(data), s.crypto != nil, time.Now().UTC().UnixMilli())
	if err != nil {
		s.log.Warn("attachment put failed", "id", id, "err", err)
		return fmt.Errorf("store attachment %d: %w", id, err)
	}
	s.log.Trace("attachment put ok", "id", id, "bytes", len(data))
	return nil
}

// Get returns the content of id, or core.ErrAttachmentNotFound.
func (s *Store) Get(ctx context.Context, id int64) ([]byte, error) {
	var blob []byte
	var encrypted bool
	err := s.db.QueryRowContext(ctx, `SELECT data, encrypted FROM attachments WHERE id = ?`, id).Scan(&blob, &encrypted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrAttachmentNotFound
	}
	if err != nil {
		s.log.Warn("attachment get failed", "id", id, "err", err)
		return nil, fmt.Errorf("load attachment %d: %w", id, err)
	}
	if !encrypted {
		return blob, nil
	}
	if s.crypto == nil {
		return nil, fmt.Errorf("attachment %d is encrypted and no key store is configured", id)
	}
	plain, err := s.crypto.open(blob)
	if err != nil {
		s.log.Warn("attachment decrypt failed", "id", id, "err", err)
		return nil, err
	}
	return plain, nil
}

// Delete removes id. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM attachments WHERE id = ?`, id); err != nil {
		s.log.Warn("attachment delete failed", "id", id, "err", err)
		return fmt.Errorf("delete attachment %d: %w", id, err)
	}
	return nil
}

// Prune deletes content whose id is not in keep and returns how many rows
// went away. The server calls it after restoring a snapshot.
func (s *Store) Prune(ctx context.Context, keep map[int64]bool) (int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM attachments`)
	if err != nil {
		return 0, fmt.Errorf("list attachments: %w", err)
	}
	var stale []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("scan attachment id: %w", err)
		}
		if !keep[id] {
			stale = append(stale, id)
		}
	}
	if err := rows.Close(); err != nil {
		return 0, err
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	for _, id := range stale {
		if err := s.Delete(ctx, id); err != nil {
			return 0, err
		}
	}
	if len(stale) > 0 {
		s.log.Info("attachment store pruned", "removed", len(stale))
	}
	return len(stale), nil
}

func (c *cipher) seal(plain []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer, err := kryptograf.New(c.root).EncryptWriter(&buf, c.material)
	if err != nil {
		return nil, err
	}
	if _, err := writer.Write(plain); err != nil {
		_ = writer.Close()
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *cipher) open(sealed []byte) ([]byte, error) {
	reader, err := kryptograf.New(c.root).DecryptReader(bytes.NewReader(sealed), c.material)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()
	return io.ReadAll(reader)
}
