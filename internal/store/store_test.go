package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/domain"
	batonerrors "github.com/crewlab/baton/internal/errors"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	fs, err := NewFileStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return fs
}

func seedSession() *domain.Session {
	return &domain.Session{
		Mission:       "ship the api",
		MissionDomain: constants.DomainApps,
		QualityMode:   constants.QualityStandard,
		Status:        constants.SessionStatusActive,
		Cost:          domain.CostSummary{BudgetCap: 50, RemainingCredits: 50},
	}
}

func TestFileStore_CreateAndFind(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	rec, err := fs.Create(ctx, "owner-1", "proj-1", seedSession())
	require.NoError(t, err)
	require.NotEmpty(t, rec.SessionID)
	assert.Equal(t, 1, rec.Version)
	assert.Equal(t, "owner-1", rec.OwnerID)
	assert.Equal(t, "proj-1", rec.ProjectID)

	found, err := fs.Find(ctx, "owner-1", rec.SessionID)
	require.NoError(t, err)
	assert.Equal(t, rec.SessionID, found.SessionID)
	assert.Equal(t, 1, found.Version)

	payload := found.Payload()
	require.NotNil(t, payload)
	assert.Equal(t, "ship the api", payload["mission"])
}

func TestFileStore_FindMissing(t *testing.T) {
	fs := newTestStore(t)

	_, err := fs.Find(context.Background(), "owner-1", "does-not-exist")
	require.ErrorIs(t, err, batonerrors.ErrSessionNotFound)
}

func TestFileStore_FindInvalidID(t *testing.T) {
	fs := newTestStore(t)

	_, err := fs.Find(context.Background(), "owner-1", "../escape")
	require.ErrorIs(t, err, batonerrors.ErrValueOutOfRange)

	_, err = fs.Find(context.Background(), "", "abc")
	require.ErrorIs(t, err, batonerrors.ErrEmptyValue)
}

func TestFileStore_PersistBumpsVersion(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	rec, err := fs.Create(ctx, "owner-1", "proj-1", seedSession())
	require.NoError(t, err)

	sess := seedSession()
	sess.ID = rec.SessionID
	sess.Mission = "ship the api, fast"

	updated, err := fs.Persist(ctx, rec, sess)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)

	found, err := fs.Find(ctx, "owner-1", rec.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Version)
	assert.Equal(t, "ship the api, fast", found.Payload()["mission"])
}

func TestFileStore_PersistDetectsVersionConflict(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	rec, err := fs.Create(ctx, "owner-1", "proj-1", seedSession())
	require.NoError(t, err)

	// Two callers load the same version.
	staleCopy := *rec

	_, err = fs.Persist(ctx, rec, seedSession())
	require.NoError(t, err)

	// The second caller's persist must be refused.
	_, err = fs.Persist(ctx, &staleCopy, seedSession())
	require.ErrorIs(t, err, batonerrors.ErrVersionConflict)
}

func TestFileStore_List(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	_, err := fs.Create(ctx, "owner-1", "proj-1", seedSession())
	require.NoError(t, err)
	_, err = fs.Create(ctx, "owner-1", "proj-1", seedSession())
	require.NoError(t, err)
	_, err = fs.Create(ctx, "owner-2", "proj-9", seedSession())
	require.NoError(t, err)

	records, err := fs.List(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = fs.List(ctx, "owner-3")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileStore_Delete(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()

	rec, err := fs.Create(ctx, "owner-1", "proj-1", seedSession())
	require.NoError(t, err)

	require.NoError(t, fs.Delete(ctx, "owner-1", rec.SessionID))

	_, err = fs.Find(ctx, "owner-1", rec.SessionID)
	require.ErrorIs(t, err, batonerrors.ErrSessionNotFound)

	err = fs.Delete(ctx, "owner-1", rec.SessionID)
	require.ErrorIs(t, err, batonerrors.ErrSessionNotFound)
}

func TestFileStore_CanceledContext(t *testing.T) {
	fs := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fs.Find(ctx, "owner-1", "abc")
	require.ErrorIs(t, err, context.Canceled)

	_, err = fs.Create(ctx, "owner-1", "proj-1", seedSession())
	require.ErrorIs(t, err, context.Canceled)
}

func TestRecord_PayloadCorrupt(t *testing.T) {
	rec := &Record{Session: []byte("{not json")}
	assert.Nil(t, rec.Payload())

	rec = &Record{}
	assert.Nil(t, rec.Payload())
}
