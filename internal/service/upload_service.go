package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"notesnest-web/internal/domain"
	"notesnest-web/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const missingFieldsMessage = "Please fill all required fields."

type UploadService struct {
	repo     repository.NoteRepository
	validate *validator.Validate
	maxBytes int64
	logger   *zap.Logger
}

func NewUploadService(repo repository.NoteRepository, maxBytes int64, logger *zap.Logger) *UploadService {
	v := validator.New()
	v.RegisterValidation("subject", func(fl validator.FieldLevel) bool {
		return domain.IsUploadSubject(fl.Field().String())
	})
	v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return domain.IsUploadCategory(fl.Field().String())
	})

	return &UploadService{
		repo:     repo,
		validate: v,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// Validate normalizes req in place and checks it. It never contacts the
// notes API.
func (s *UploadService) Validate(req *domain.UploadRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Contributor = strings.TrimSpace(req.Contributor)
	req.DriveLink = strings.TrimSpace(req.DriveLink)
	req.Category = strings.TrimSpace(req.Category)
	req.Description = strings.TrimSpace(req.Description)

	if err := s.validate.Struct(req); err != nil {
		return toValidationError(err)
	}

	if req.File != nil && s.maxBytes > 0 && req.File.Size > s.maxBytes {
		return &ValidationError{
			Message: fmt.Sprintf("File size exceeds %dMB. Please upload a smaller file.", s.maxBytes>>20),
		}
	}

	return nil
}

// Submit validates req and posts it for review. Submissions are not retried.
func (s *UploadService) Submit(ctx context.Context, req *domain.UploadRequest) error {
	if err := s.Validate(req); err != nil {
		return err
	}

	if err := s.repo.Upload(ctx, req); err != nil {
		s.logger.Error("note upload failed",
			zap.String("title", req.Title),
			zap.String("subject", req.Subject),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	s.logger.Info("note submitted for review",
		zap.String("title", req.Title),
		zap.String("subject", req.Subject),
		zap.String("category", req.Category),
	)
	return nil
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: missingFieldsMessage}
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return &ValidationError{Message: missingFieldsMessage}
		}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "subject":
		return &ValidationError{Message: "Please choose a subject from the list."}
	case "category":
		return &ValidationError{Message: "Please choose a category from the list."}
	case "max":
		return &ValidationError{Message: fmt.Sprintf("%s is too long (max %s characters).", fe.Field(), fe.Param())}
	}
	return &ValidationError{Message: fmt.Sprintf("%s is invalid.", fe.Field())}
}
