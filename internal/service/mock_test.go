package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"notesnest-web/internal/domain"
	"notesnest-web/internal/repository"

	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errNetwork = errors.New("dial tcp 127.0.0.1:5000: connect: connection refused")

// mockNoteRepo is an in-memory stand-in for the notes API.
type mockNoteRepo struct {
	mu       sync.Mutex
	pending  []*domain.Note
	approved []*domain.Note

	approvedErrs []error // consumed one per ListApproved call
	pendingErr   error
	mutateErr    error
	uploadErr    error

	approvedCalls int
	uploads       []*domain.UploadRequest
	approvals     []string
	deletions     []string
}

var _ repository.NoteRepository = (*mockNoteRepo)(nil)

func (m *mockNoteRepo) ListApproved(ctx context.Context) ([]*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.approvedCalls++
	if len(m.approvedErrs) > 0 {
		err := m.approvedErrs[0]
		m.approvedErrs = m.approvedErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	out := make([]*domain.Note, len(m.approved))
	copy(out, m.approved)
	return out, nil
}

func (m *mockNoteRepo) ListPending(ctx context.Context, cred *domain.Credential) ([]*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pendingErr != nil {
		return nil, m.pendingErr
	}
	out := make([]*domain.Note, len(m.pending))
	copy(out, m.pending)
	return out, nil
}

func (m *mockNoteRepo) Upload(ctx context.Context, req *domain.UploadRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.uploadErr != nil {
		return m.uploadErr
	}
	m.uploads = append(m.uploads, req)
	return nil
}

func (m *mockNoteRepo) Approve(ctx context.Context, cred *domain.Credential, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mutateErr != nil {
		return m.mutateErr
	}
	m.approvals = append(m.approvals, id)
	for _, n := range m.pending {
		if n.ID == id {
			m.approved = append(m.approved, n)
		}
	}
	m.pending = domain.WithoutNote(m.pending, id)
	return nil
}

func (m *mockNoteRepo) Delete(ctx context.Context, cred *domain.Credential, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mutateErr != nil {
		return m.mutateErr
	}
	m.deletions = append(m.deletions, id)
	m.pending = domain.WithoutNote(m.pending, id)
	m.approved = domain.WithoutNote(m.approved, id)
	return nil
}

type mockAuthRepo struct {
	token string
	err   error
	calls int
}

func (m *mockAuthRepo) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &domain.LoginResponse{Token: m.token}, nil
}

func nopLogger() *zap.Logger { return zap.NewNop() }
