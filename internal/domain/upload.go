package domain

import "io"

// Subjects offered on the upload form.
var UploadSubjects = []string{
	"Mathematics",
	"Physics",
	"Chemistry",
	"Biology",
	"Computer Science",
	"English",
	"History",
	"Geography",
	"Economics",
}

// Categories offered on the upload form.
var UploadCategories = []string{
	"Lecture Notes",
	"Assignments",
	"Exam Papers",
	"Others",
}

// UploadRequest is a note submission awaiting review.
type UploadRequest struct {
	Title       string `validate:"required,max=200"`
	Subject     string `validate:"required,subject"`
	Contributor string `validate:"required,max=100"`
	DriveLink   string `validate:"required"`
	Category    string `validate:"required,category"`
	Description string `validate:"max=2000"`

	File *UploadFile `validate:"-"`
}

// UploadFile is an optional attachment forwarded with the submission.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// IsUploadSubject reports whether s is one of the offered subjects.
func IsUploadSubject(s string) bool { return contains(UploadSubjects, s) }

// IsUploadCategory reports whether c is one of the offered categories.
func IsUploadCategory(c string) bool { return contains(UploadCategories, c) }
