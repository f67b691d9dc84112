package service

import (
	"context"
	"fmt"

	"notesnest-web/internal/domain"
	"notesnest-web/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var actionFailed = domain.Notification{
	Message:  "Action failed. Please try again.",
	Severity: domain.SeverityError,
}

type AdminService struct {
	repo   repository.NoteRepository
	logger *zap.Logger
}

func NewAdminService(repo repository.NoteRepository, logger *zap.Logger) *AdminService {
	return &AdminService{
		repo:   repo,
		logger: logger,
	}
}

// LoadBoard fetches both collections concurrently. The returned board is
// never nil; a list that failed to load is left empty and the first error is
// returned alongside.
func (s *AdminService) LoadBoard(ctx context.Context, cred *domain.Credential) (*domain.Board, error) {
	board := &domain.Board{}

	var g errgroup.Group
	g.Go(func() error {
		notes, err := s.repo.ListPending(ctx, cred)
		if err != nil {
			s.logger.Error("failed to fetch pending notes", zap.Error(err))
			return fmt.Errorf("pending notes: %w", err)
		}
		board.Pending = notes
		return nil
	})
	g.Go(func() error {
		notes, err := s.repo.ListApproved(ctx)
		if err != nil {
			s.logger.Error("failed to fetch approved notes", zap.Error(err))
			return fmt.Errorf("approved notes: %w", err)
		}
		board.Approved = notes
		return nil
	})

	return board, g.Wait()
}

// Execute performs a confirmed action and updates board locally on
// success. On failure board is left untouched.
func (s *AdminService) Execute(ctx context.Context, cred *domain.Credential, board *domain.Board, c *domain.PendingConfirmation) (domain.Notification, error) {
	log := s.logger.With(zap.String("action", string(c.Action)), zap.String("note_id", c.NoteID))

	switch c.Action {
	case domain.ActionApprove:
		if err := s.repo.Approve(ctx, cred, c.NoteID); err != nil {
			log.Error("admin action failed", zap.Error(err))
			return actionFailed, fmt.Errorf("approve %s: %w", c.NoteID, err)
		}
		board.Drop(c.NoteID)

		approved, err := s.repo.ListApproved(ctx)
		if err != nil {
			log.Warn("approved notes refresh failed after approval", zap.Error(err))
		} else {
			board.Approved = approved
		}

	case domain.ActionReject, domain.ActionDelete:
		if err := s.repo.Delete(ctx, cred, c.NoteID); err != nil {
			log.Error("admin action failed", zap.Error(err))
			return actionFailed, fmt.Errorf("%s %s: %w", c.Action, c.NoteID, err)
		}
		board.Purge(c.NoteID)

	default:
		return actionFailed, fmt.Errorf("unknown admin action %q", c.Action)
	}

	log.Info("admin action applied")
	return c.Action.Outcome(), nil
}
