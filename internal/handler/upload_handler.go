package handler

import (
	"errors"
	"fmt"
	"net/http"

	"notesnest-web/internal/domain"
	"notesnest-web/internal/middleware"
	"notesnest-web/internal/service"
	"notesnest-web/internal/view"

	"go.uber.org/zap"
)

const (
	uploadSuccessMessage = "Note uploaded successfully. Awaiting approval!"
	uploadFailedMessage  = "Failed to upload note. Please try again."

	// multipartMemory is how much of a submission is buffered in memory
	// before spilling to temporary files.
	multipartMemory = 8 << 20
)

type UploadHandler struct {
	uploads *service.UploadService
	views   *view.Renderer
	logger  *zap.Logger
}

func NewUploadHandler(uploads *service.UploadService, views *view.Renderer, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploads: uploads,
		views:   views,
		logger:  logger,
	}
}

func (h *UploadHandler) page(r *http.Request) view.UploadPage {
	return view.UploadPage{
		Nav:        navFor(r, "upload"),
		Subjects:   domain.UploadSubjects,
		Categories: domain.UploadCategories,
		MaxMB:      h.uploads.MaxBytes() >> 20,
	}
}

func (h *UploadHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, view.PageUpload, "", h.page(r))
}

func (h *UploadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	data := h.page(r)

	// Leave room for the form fields on top of the largest accepted file.
	r.Body = http.MaxBytesReader(w, r.Body, h.uploads.MaxBytes()+1<<20)

	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			data.Error = fmt.Sprintf("File size exceeds %dMB. Please upload a smaller file.", data.MaxMB)
			h.views.Render(w, r, http.StatusRequestEntityTooLarge, view.PageUpload, "upload-form", data)
			return
		}
		data.Error = "Could not read the submitted form."
		h.views.Render(w, r, http.StatusBadRequest, view.PageUpload, "upload-form", data)
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	req := &domain.UploadRequest{
		Title:       r.FormValue("title"),
		Subject:     r.FormValue("subject"),
		Contributor: r.FormValue("contributor"),
		DriveLink:   r.FormValue("driveLink"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
	}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		req.File = &domain.UploadFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     file,
		}
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		h.logger.Warn("unreadable upload attachment",
			zap.String("request_id", middleware.GetRequestID(r)),
			zap.Error(err),
		)
	}

	err = h.uploads.Submit(r.Context(), req)
	data.Form = view.UploadForm{
		Title:       req.Title,
		Subject:     req.Subject,
		Contributor: req.Contributor,
		DriveLink:   req.DriveLink,
		Category:    req.Category,
		Description: req.Description,
	}

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		data.Error = verr.Message
		h.views.Render(w, r, http.StatusUnprocessableEntity, view.PageUpload, "upload-form", data)
	case err != nil:
		data.Error = uploadFailedMessage
		h.views.Render(w, r, http.StatusBadGateway, view.PageUpload, "upload-form", data)
	default:
		data.Form = view.UploadForm{}
		data.Success = uploadSuccessMessage
		h.views.Render(w, r, http.StatusOK, view.PageUpload, "upload-form", data)
	}
}
