package session

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/crewlab/baton/internal/clock"
	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/cost"
	"github.com/crewlab/baton/internal/ctxutil"
	"github.com/crewlab/baton/internal/domain"
	"github.com/crewlab/baton/internal/mission"
	"github.com/crewlab/baton/internal/normalize"
	"github.com/crewlab/baton/internal/store"
)

// DefaultGrantTTL is the grant lifetime used when the caller does not
// request one.
const DefaultGrantTTL = time.Hour

// Manager orchestrates the session lifecycle: create, plan, run, validate,
// apply, rollback, stop, and grant bookkeeping.
//
// Every operation is read-modify-write against a single session snapshot:
// load from the store, mutate the normalized in-memory session, persist.
// Business-rule violations (missing dependency, insufficient budget, wrong
// state) never surface as errors; they degrade to blocked tasks or no-ops
// with an explanatory transcript message. The only real errors are store
// failures and context cancellation.
//
// Mutating calls for the same session id are serialized through a
// per-session mutex; the store's version counter closes the race with
// writers outside this process.
type Manager struct {
	store  store.Store
	clk    clock.Clock
	logger zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager creates a session lifecycle manager. A nil clock falls back to
// the system clock.
func NewManager(st store.Store, clk clock.Clock, logger zerolog.Logger) *Manager {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Manager{
		store:  st,
		clk:    clk,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// CreateRequest carries the caller-supplied fields for a new session.
type CreateRequest struct {
	// Mission is the free-text mission statement.
	Mission string

	// QualityMode is the requested execution tier. Unknown values degrade
	// to standard.
	QualityMode constants.QualityMode

	// BudgetCap is the requested credit budget, clamped on creation.
	BudgetCap float64

	// Domain optionally pins the mission domain. When empty or unknown the
	// domain is inferred from the mission text.
	Domain constants.MissionDomain
}

// Create resolves the mission domain, builds the quality checklist, seeds
// the credit ledger at zero spend, and persists the new session.
func (m *Manager) Create(ctx context.Context, ownerID, projectID string, req CreateRequest) (*domain.Session, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	now := m.clk.Now().UTC()
	missionText := strings.TrimSpace(req.Mission)
	resolved := mission.ResolveDomain(req.Domain, missionText)
	budget := cost.ClampBudget(req.BudgetCap)

	s := &domain.Session{
		Mission:          missionText,
		MissionDomain:    resolved,
		QualityMode:      req.QualityMode,
		QualityChecklist: mission.BuildChecklist(resolved),
		Status:           constants.SessionStatusActive,
		Cost: domain.CostSummary{
			BudgetCap:        budget,
			RemainingCredits: budget,
		},
		Orchestration:  domain.Orchestration{Mode: constants.ModeSingleTask},
		CreatedAt:      now,
		LastActivityAt: now,
		SchemaVersion:  constants.SessionSchemaVersion,
	}
	appendSessionMessage(s, now, fmt.Sprintf(
		"Session created for mission %q (domain %s, quality %s, budget %.0f credits).",
		missionText, resolved, s.QualityMode, budget))
	normalize.Apply(s)

	rec, err := m.store.Create(ctx, ownerID, projectID, s)
	if err != nil {
		return nil, err
	}

	m.logger.Info().
		Str("session_id", rec.SessionID).
		Str("owner_id", ownerID).
		Str("mission_domain", string(resolved)).
		Float64("budget_cap", budget).
		Msg("session created")

	return s, nil
}

// Stop moves the session to its terminal stopped state. There is no un-stop.
func (m *Manager) Stop(ctx context.Context, ownerID, sessionID string) (*domain.Session, error) {
	return m.mutate(ctx, ownerID, sessionID, "stop", func(s *domain.Session, now time.Time) bool {
		if !s.IsActive() {
			return false
		}
		s.Status = constants.SessionStatusStopped
		ended := now
		s.EndedAt = &ended
		appendSessionMessage(s, now, "Session stopped.")
		return true
	})
}

// GrantFullAccess appends a time-boxed full-access grant to the session's
// grant ledger. Grants are additive; nothing is ever removed from the list.
func (m *Manager) GrantFullAccess(ctx context.Context, ownerID, sessionID string, scope constants.GrantScope, ttl time.Duration) (*domain.Session, error) {
	if ttl <= 0 {
		ttl = DefaultGrantTTL
	}
	return m.mutate(ctx, ownerID, sessionID, "grant", func(s *domain.Session, now time.Time) bool {
		if !s.IsActive() {
			return false
		}
		grant := domain.FullAccessGrant{
			ID:        uuid.NewString(),
			Scope:     scope,
			CreatedAt: now,
			ExpiresAt: now.Add(ttl),
			AuditRef:  constants.AuditRefPrefix + strconv.FormatInt(now.UnixMilli(), 36),
		}
		s.FullAccessGrants = append(s.FullAccessGrants, grant)
		appendSessionMessage(s, now, fmt.Sprintf(
			"Granted full access (scope %s, expires %s).",
			grant.Scope, grant.ExpiresAt.Format(time.RFC3339)))
		return true
	})
}

// RevokeFullAccess stamps RevokedAt on the matching grant. The grant stays
// in the ledger as an audit trail; already-revoked or unknown ids are no-ops.
func (m *Manager) RevokeFullAccess(ctx context.Context, ownerID, sessionID, grantID string) (*domain.Session, error) {
	return m.mutate(ctx, ownerID, sessionID, "revoke", func(s *domain.Session, now time.Time) bool {
		if !s.IsActive() {
			return false
		}
		for i := range s.FullAccessGrants {
			g := &s.FullAccessGrants[i]
			if g.ID != grantID || g.RevokedAt != nil {
				continue
			}
			revoked := now
			g.RevokedAt = &revoked
			appendSessionMessage(s, now, fmt.Sprintf("Revoked full access grant (scope %s).", g.Scope))
			return true
		}
		return false
	})
}

// Get loads and normalizes a session without mutating it.
func (m *Manager) Get(ctx context.Context, ownerID, sessionID string) (*domain.Session, error) {
	rec, err := m.store.Find(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	return normalize.Session(rec.Payload()), nil
}

// List loads and normalizes every session owned by ownerID, newest first.
func (m *Manager) List(ctx context.Context, ownerID string) ([]*domain.Session, error) {
	recs, err := m.store.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	sessions := make([]*domain.Session, 0, len(recs))
	for _, rec := range recs {
		sessions = append(sessions, normalize.Session(rec.Payload()))
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// mutate is the shared read-modify-write loop. It loads the record, decodes
// and normalizes the session, applies fn, and persists only when fn reports
// a change. No-ops return the current state without touching the store or
// LastActivityAt.
func (m *Manager) mutate(ctx context.Context, ownerID, sessionID, op string, fn func(s *domain.Session, now time.Time) bool) (*domain.Session, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	lock := m.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	rec, err := m.store.Find(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	s := normalize.Session(rec.Payload())

	now := m.clk.Now().UTC()
	if !fn(s, now) {
		m.logger.Debug().
			Str("session_id", sessionID).
			Str("op", op).
			Msg("operation was a no-op")
		return s, nil
	}

	s.LastActivityAt = now
	normalize.Apply(s)

	if _, err := m.store.Persist(ctx, rec, s); err != nil {
		return nil, err
	}

	m.logger.Debug().
		Str("session_id", sessionID).
		Str("op", op).
		Float64("used_credits", s.Cost.UsedCredits).
		Float64("remaining_credits", s.Cost.RemainingCredits).
		Msg("session mutated")

	return s, nil
}

// sessionLock returns the mutex serializing mutations of one session id.
func (m *Manager) sessionLock(sessionID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[sessionID] = lock
	}
	return lock
}

// appendSessionMessage appends a session-level system message to the
// transcript.
func appendSessionMessage(s *domain.Session, now time.Time, content string) {
	s.Messages = append(s.Messages, domain.SessionMessage{
		ID:        uuid.NewString(),
		Role:      constants.MessageRoleSystem,
		Content:   content,
		Timestamp: now,
	})
}

// appendTaskMessage appends a transcript message tied to a task's role and
// status snapshot.
func appendTaskMessage(s *domain.Session, now time.Time, role constants.MessageRole, agentRole constants.AgentRole, status constants.TaskStatus, content string) {
	s.Messages = append(s.Messages, domain.SessionMessage{
		ID:        uuid.NewString(),
		Role:      role,
		AgentRole: agentRole,
		Content:   content,
		Timestamp: now,
		Status:    status,
	})
}
