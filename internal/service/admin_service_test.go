package service

import (
	"context"
	"net/http"
	"testing"

	"notesnest-web/internal/domain"
	"notesnest-web/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adminCred = &domain.Credential{Kind: domain.CredentialToken, Value: "tok"}

func noteIDs(notes []*domain.Note) []string {
	out := []string{}
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func seededRepo() *mockNoteRepo {
	return &mockNoteRepo{
		pending:  []*domain.Note{{ID: "p1", Title: "Pending One"}, {ID: "p2", Title: "Pending Two"}},
		approved: []*domain.Note{{ID: "a1", Title: "Approved One"}},
	}
}

func TestAdminService_LoadBoard(t *testing.T) {
	svc := NewAdminService(seededRepo(), nopLogger())

	board, err := svc.LoadBoard(context.Background(), adminCred)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, noteIDs(board.Pending))
	assert.Equal(t, []string{"a1"}, noteIDs(board.Approved))
}

func TestAdminService_LoadBoardPartialFailure(t *testing.T) {
	repo := seededRepo()
	repo.pendingErr = &repository.APIError{StatusCode: http.StatusUnauthorized}
	svc := NewAdminService(repo, nopLogger())

	board, err := svc.LoadBoard(context.Background(), adminCred)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrUnauthorized)
	assert.Empty(t, board.Pending)
	assert.Equal(t, []string{"a1"}, noteIDs(board.Approved))
}

func TestAdminService_Approve(t *testing.T) {
	repo := seededRepo()
	svc := NewAdminService(repo, nopLogger())
	board, err := svc.LoadBoard(context.Background(), adminCred)
	require.NoError(t, err)

	n, err := svc.Execute(context.Background(), adminCred, board, &domain.PendingConfirmation{Action: domain.ActionApprove, NoteID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, domain.SeveritySuccess, n.Severity)
	assert.Equal(t, "Note approved successfully.", n.Message)
	assert.Equal(t, []string{"p2"}, noteIDs(board.Pending))
	assert.Equal(t, []string{"a1", "p1"}, noteIDs(board.Approved))
	assert.Equal(t, []string{"p1"}, repo.approvals)
}

func TestAdminService_RejectAndDelete(t *testing.T) {
	tests := []struct {
		name     string
		action   domain.AdminAction
		id       string
		severity domain.Severity
	}{
		{"reject pending", domain.ActionReject, "p2", domain.SeverityInfo},
		{"delete approved", domain.ActionDelete, "a1", domain.SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seededRepo()
			svc := NewAdminService(repo, nopLogger())
			board, err := svc.LoadBoard(context.Background(), adminCred)
			require.NoError(t, err)
			callsBefore := repo.approvedCalls

			n, err := svc.Execute(context.Background(), adminCred, board, &domain.PendingConfirmation{Action: tt.action, NoteID: tt.id})
			require.NoError(t, err)

			assert.Equal(t, tt.severity, n.Severity)
			assert.NotContains(t, noteIDs(board.Pending), tt.id)
			assert.NotContains(t, noteIDs(board.Approved), tt.id)
			assert.Equal(t, callsBefore, repo.approvedCalls, "reject/delete must not refetch")
			assert.Equal(t, []string{tt.id}, repo.deletions)
		})
	}
}

func TestAdminService_FailureLeavesBoardUntouched(t *testing.T) {
	for _, action := range []domain.AdminAction{domain.ActionApprove, domain.ActionReject, domain.ActionDelete} {
		t.Run(string(action), func(t *testing.T) {
			repo := seededRepo()
			svc := NewAdminService(repo, nopLogger())
			board, err := svc.LoadBoard(context.Background(), adminCred)
			require.NoError(t, err)

			repo.mutateErr = errNetwork
			n, err := svc.Execute(context.Background(), adminCred, board, &domain.PendingConfirmation{Action: action, NoteID: "p1"})

			require.Error(t, err)
			assert.Equal(t, domain.SeverityError, n.Severity)
			assert.Equal(t, "Action failed. Please try again.", n.Message)
			assert.Equal(t, []string{"p1", "p2"}, noteIDs(board.Pending))
			assert.Equal(t, []string{"a1"}, noteIDs(board.Approved))
		})
	}
}
