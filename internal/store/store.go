// Package store provides session persistence for baton.
// This package implements the storage layer for session records, with atomic
// writes, file locking, and optimistic concurrency for data integrity.
//
// The stored session payload is untyped JSON as far as the store is
// concerned; callers round-trip it through internal/normalize before use and
// after mutation. The version counter on each record is checked at persist
// time, which closes the race between concurrent callers operating on the
// same session id.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/ctxutil"
	"github.com/crewlab/baton/internal/domain"
	batonerrors "github.com/crewlab/baton/internal/errors"
	"github.com/crewlab/baton/internal/flock"
)

// CurrentSchemaVersion is the current version of the record schema.
// This enables forward-compatible schema migrations.
const CurrentSchemaVersion = 1

// LockTimeout is the maximum duration to wait for acquiring a file lock.
const LockTimeout = 5 * time.Second

// listConcurrency bounds how many session files List reads at once.
const listConcurrency = 8

// Directory and file permission constants.
const (
	dirPerm  = 0o750 // Secure directory permissions
	filePerm = 0o600 // Secure file permissions
)

// validIDRegex matches valid owner and session identifiers
// (alphanumeric, dash, underscore).
var validIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// Record wraps a stored session payload with store bookkeeping.
//
// Version is the optimistic-concurrency token: Persist refuses to write when
// the on-disk version no longer matches the version the caller loaded.
type Record struct {
	// OwnerID identifies the user owning the session.
	OwnerID string `json:"owner_id"`

	// ProjectID links the session to a project.
	ProjectID string `json:"project_id"`

	// SessionID is the session's unique identifier.
	SessionID string `json:"session_id"`

	// Version increments on every persist.
	Version int `json:"version"`

	// UpdatedAt is when the record was last persisted.
	UpdatedAt time.Time `json:"updated_at"`

	// Session is the untyped session payload.
	Session json.RawMessage `json:"session"`

	// SchemaVersion indicates the version of the record schema.
	SchemaVersion int `json:"schema_version"`
}

// Payload unmarshals the record's session blob into the raw map shape the
// normalizers consume. A missing or corrupt payload yields nil, which the
// normalizers treat as an empty session.
func (r *Record) Payload() map[string]any {
	if len(r.Session) == 0 {
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(r.Session, &raw); err != nil {
		return nil
	}
	return raw
}

// Store defines the interface for session persistence operations.
type Store interface {
	// Find retrieves a session record by owner and session id.
	// Returns ErrSessionNotFound if not found.
	Find(ctx context.Context, ownerID, sessionID string) (*Record, error)

	// Create persists a new session record seeded from the given session.
	// The session id is generated here. Returns the created record.
	Create(ctx context.Context, ownerID, projectID string, seed *domain.Session) (*Record, error)

	// Persist writes the session back into the record and saves it.
	// Returns ErrVersionConflict if the stored record changed since the
	// caller loaded it, and the updated record on success.
	Persist(ctx context.Context, rec *Record, s *domain.Session) (*Record, error)

	// List returns all session records for an owner. Returns an empty
	// slice if none exist.
	List(ctx context.Context, ownerID string) ([]*Record, error)

	// Delete removes a session record. Returns ErrSessionNotFound if not found.
	Delete(ctx context.Context, ownerID, sessionID string) error
}

// FileStore implements Store using the local filesystem.
type FileStore struct {
	baseDir string // Usually ~/.baton
	logger  zerolog.Logger
}

// NewFileStore creates a new FileStore with the given base directory.
// If baseDir is empty, uses the default ~/.baton directory.
func NewFileStore(baseDir string, logger zerolog.Logger) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		baseDir = filepath.Join(home, constants.BatonHome)
	}
	return &FileStore{baseDir: baseDir, logger: logger}, nil
}

// Find retrieves a session record by owner and session id.
func (s *FileStore) Find(ctx context.Context, ownerID, sessionID string) (*Record, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}
	if err := validateID(ownerID); err != nil {
		return nil, fmt.Errorf("failed to read session '%s': %w", sessionID, err)
	}
	if err := validateID(sessionID); err != nil {
		return nil, fmt.Errorf("failed to read session '%s': %w", sessionID, err)
	}

	// Check existence before locking so a lookup miss does not leave an
	// empty session directory behind.
	if _, err := os.Stat(s.sessionFilePath(ownerID, sessionID)); os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read session '%s': %w", sessionID, batonerrors.ErrSessionNotFound)
	}

	lockFile, err := s.acquireLock(ctx, ownerID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session '%s': %w", sessionID, err)
	}
	defer func() { _ = s.releaseLock(lockFile) }()

	return s.readRecord(ownerID, sessionID)
}

// Create persists a new session record seeded from the given session.
func (s *FileStore) Create(ctx context.Context, ownerID, projectID string, seed *domain.Session) (*Record, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}
	if err := validateID(ownerID); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	sessionID := uuid.NewString()
	seed.ID = sessionID
	seed.UserID = ownerID
	seed.ProjectID = projectID

	payload, err := json.Marshal(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	rec := &Record{
		OwnerID:       ownerID,
		ProjectID:     projectID,
		SessionID:     sessionID,
		Version:       1,
		UpdatedAt:     time.Now().UTC(),
		Session:       payload,
		SchemaVersion: CurrentSchemaVersion,
	}

	dir := s.sessionPath(ownerID, sessionID)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	recFile := s.sessionFilePath(ownerID, sessionID)
	if _, err := os.Stat(recFile); err == nil {
		return nil, fmt.Errorf("failed to create session '%s': %w", sessionID, batonerrors.ErrSessionExists)
	}

	lockFile, err := s.acquireLock(ctx, ownerID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session '%s': %w", sessionID, err)
	}
	defer func() { _ = s.releaseLock(lockFile) }()

	if err := s.writeRecord(rec); err != nil {
		return nil, fmt.Errorf("failed to create session '%s': %w", sessionID, err)
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Str("owner_id", ownerID).
		Msg("session record created")

	return rec, nil
}

// Persist writes the session back into the record and saves it.
// The on-disk version must still match the version the caller loaded;
// otherwise ErrVersionConflict is returned and nothing is written.
func (s *FileStore) Persist(ctx context.Context, rec *Record, sess *domain.Session) (*Record, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("failed to persist session: %w", batonerrors.ErrInvalidArgument)
	}

	lockFile, err := s.acquireLock(ctx, rec.OwnerID, rec.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to persist session '%s': %w", rec.SessionID, err)
	}
	defer func() { _ = s.releaseLock(lockFile) }()

	current, err := s.readRecord(rec.OwnerID, rec.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to persist session '%s': %w", rec.SessionID, err)
	}
	if current.Version != rec.Version {
		return nil, fmt.Errorf("failed to persist session '%s' (loaded v%d, stored v%d): %w",
			rec.SessionID, rec.Version, current.Version, batonerrors.ErrVersionConflict)
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to persist session '%s': %w", rec.SessionID, err)
	}

	updated := &Record{
		OwnerID:       rec.OwnerID,
		ProjectID:     rec.ProjectID,
		SessionID:     rec.SessionID,
		Version:       rec.Version + 1,
		UpdatedAt:     time.Now().UTC(),
		Session:       payload,
		SchemaVersion: CurrentSchemaVersion,
	}

	if err := s.writeRecord(updated); err != nil {
		return nil, fmt.Errorf("failed to persist session '%s': %w", rec.SessionID, err)
	}

	return updated, nil
}

// List returns all session records for an owner. Session files are read
// concurrently; directories without a valid record are skipped with a
// warning rather than failing the whole listing.
func (s *FileStore) List(ctx context.Context, ownerID string) ([]*Record, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}
	if err := validateID(ownerID); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	ownerDir := s.ownerPath(ownerID)
	if _, err := os.Stat(ownerDir); os.IsNotExist(err) {
		return []*Record{}, nil
	}

	entries, err := os.ReadDir(ownerDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var (
		mu      sync.Mutex
		records []*Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sessionID := entry.Name()

		g.Go(func() error {
			if err := ctxutil.Canceled(gctx); err != nil {
				return err
			}
			rec, err := s.readRecord(ownerID, sessionID)
			if err != nil {
				s.logger.Warn().
					Str("session_id", sessionID).
					Err(err).
					Msg("skipping unreadable session record")
				return nil
			}
			mu.Lock()
			records = append(records, rec)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return records, nil
}

// Delete removes a session record and its directory.
func (s *FileStore) Delete(ctx context.Context, ownerID, sessionID string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	if err := validateID(ownerID); err != nil {
		return fmt.Errorf("failed to delete session '%s': %w", sessionID, err)
	}
	if err := validateID(sessionID); err != nil {
		return fmt.Errorf("failed to delete session '%s': %w", sessionID, err)
	}

	dir := s.sessionPath(ownerID, sessionID)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session '%s': %w", sessionID, batonerrors.ErrSessionNotFound)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete session '%s': %w", sessionID, err)
	}
	return nil
}

// readRecord reads and parses a session record file. The caller holds the lock.
func (s *FileStore) readRecord(ownerID, sessionID string) (*Record, error) {
	recFile := s.sessionFilePath(ownerID, sessionID)

	data, err := os.ReadFile(recFile) //#nosec G304 -- path is validated and constructed from trusted base
	if err != nil {
		if os.IsNotExist(err) {
			return nil, batonerrors.ErrSessionNotFound
		}
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("session '%s' has corrupted record file: %w", sessionID, batonerrors.ErrSessionCorrupted)
	}

	// Schema version tracking for forward compatibility. All current
	// versions (including 0 from pre-versioning blobs) are accepted as-is;
	// add migration logic here when breaking schema changes occur.

	return &rec, nil
}

// writeRecord marshals and atomically writes a record. The caller holds the lock.
func (s *FileStore) writeRecord(rec *Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(s.sessionFilePath(rec.OwnerID, rec.SessionID), data, filePerm)
}

// ownerPath returns the path to an owner's sessions directory.
func (s *FileStore) ownerPath(ownerID string) string {
	return filepath.Join(s.baseDir, constants.SessionsDir, ownerID)
}

// sessionPath returns the path to a specific session directory.
func (s *FileStore) sessionPath(ownerID, sessionID string) string {
	return filepath.Join(s.ownerPath(ownerID), sessionID)
}

// sessionFilePath returns the path to a session's JSON record file.
func (s *FileStore) sessionFilePath(ownerID, sessionID string) string {
	return filepath.Join(s.sessionPath(ownerID, sessionID), constants.SessionFileName)
}

// lockFilePath returns the path to a session's lock file.
func (s *FileStore) lockFilePath(ownerID, sessionID string) string {
	return filepath.Join(s.sessionPath(ownerID, sessionID), constants.SessionFileName+".lock")
}

// validateID checks if an owner or session identifier is valid.
func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("identifier cannot be empty: %w", batonerrors.ErrEmptyValue)
	}
	if len(id) > 255 {
		return fmt.Errorf("identifier too long (max 255 characters): %w", batonerrors.ErrValueOutOfRange)
	}
	if !validIDRegex.MatchString(id) {
		return fmt.Errorf("identifier contains invalid characters (use alphanumeric, dash, underscore): %w", batonerrors.ErrValueOutOfRange)
	}
	return nil
}

// acquireLock acquires an exclusive file lock for the session.
// It respects context cancellation during the lock acquisition retry loop.
func (s *FileStore) acquireLock(ctx context.Context, ownerID, sessionID string) (*os.File, error) {
	dir := s.sessionPath(ownerID, sessionID)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	lockPath := s.lockFilePath(ownerID, sessionID)
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, filePerm) //#nosec G302,G304 -- lock file needs write access, path is constructed from validated ids
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	deadline := time.Now().Add(LockTimeout)
	for {
		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, ctx.Err()
		default:
		}

		if err := flock.Exclusive(f.Fd()); err == nil {
			return f, nil
		}

		if time.Now().After(deadline) {
			_ = f.Close()
			return nil, fmt.Errorf("failed to acquire lock: %w", batonerrors.ErrLockTimeout)
		}

		time.Sleep(50 * time.Millisecond)
	}
}

// releaseLock releases a file lock.
func (s *FileStore) releaseLock(f *os.File) error {
	if f == nil {
		return nil
	}
	if err := flock.Unlock(f.Fd()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return f.Close()
}

// atomicWrite writes data to a file atomically using write-then-rename.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}

	// Sync to disk (ensure data is persisted before rename)
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}
