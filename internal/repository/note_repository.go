package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"notesnest-web/internal/domain"
)

type NoteRepository interface {
	ListApproved(ctx context.Context) ([]*domain.Note, error)
	ListPending(ctx context.Context, cred *domain.Credential) ([]*domain.Note, error)
	Upload(ctx context.Context, req *domain.UploadRequest) error
	Approve(ctx context.Context, cred *domain.Credential, id string) error
	Delete(ctx context.Context, cred *domain.Credential, id string) error
}

type noteRepository struct {
	api *apiClient
}

func NewNoteRepository(baseURL string, client *http.Client) NoteRepository {
	return &noteRepository{api: newAPIClient(baseURL, client)}
}

func (r *noteRepository) ListApproved(ctx context.Context) ([]*domain.Note, error) {
	req, err := r.api.newRequest(ctx, http.MethodGet, "/api/notes/approved", nil)
	if err != nil {
		return nil, err
	}

	var notes []*domain.Note
	if err := r.api.do(req, &notes); err != nil {
		return nil, err
	}
	return compactNotes(notes), nil
}

func (r *noteRepository) ListPending(ctx context.Context, cred *domain.Credential) ([]*domain.Note, error) {
	req, err := r.api.newRequest(ctx, http.MethodGet, "/api/notes/pending", nil)
	if err != nil {
		return nil, err
	}
	cred.Apply(req)

	var notes []*domain.Note
	if err := r.api.do(req, &notes); err != nil {
		return nil, err
	}
	return compactNotes(notes), nil
}

func (r *noteRepository) Upload(ctx context.Context, upload *domain.UploadRequest) error {
	body, contentType, err := encodeUpload(upload)
	if err != nil {
		return err
	}

	req, err := r.api.newRequest(ctx, http.MethodPost, "/api/notes/upload", body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	return r.api.do(req, nil)
}

func (r *noteRepository) Approve(ctx context.Context, cred *domain.Credential, id string) error {
	req, err := r.api.newRequest(ctx, http.MethodPatch, "/api/notes/approve/"+url.PathEscape(id), bytes.NewReader([]byte("{}")))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	cred.Apply(req)

	return r.api.do(req, nil)
}

func (r *noteRepository) Delete(ctx context.Context, cred *domain.Credential, id string) error {
	req, err := r.api.newRequest(ctx, http.MethodDelete, "/api/notes/delete/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	cred.Apply(req)

	return r.api.do(req, nil)
}

// compactNotes drops null entries from a decoded collection.
func compactNotes(notes []*domain.Note) []*domain.Note {
	out := notes[:0]
	for _, n := range notes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func encodeUpload(upload *domain.UploadRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"title", upload.Title},
		{"subject", upload.Subject},
		{"contributor", upload.Contributor},
		{"driveLink", upload.DriveLink},
		{"category", upload.Category},
		{"description", upload.Description},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("failed to encode %s: %w", f.name, err)
		}
	}

	if f := upload.File; f != nil && f.Content != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, f.Name))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", fmt.Errorf("failed to encode file: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish upload body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
