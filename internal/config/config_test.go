package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.RetryAttempts != 3 {
		t.Errorf("RetryAttempts = %d, want 3", cfg.API.RetryAttempts)
	}
	if cfg.API.RetryBaseDelay != time.Second {
		t.Errorf("RetryBaseDelay = %v, want 1s", cfg.API.RetryBaseDelay)
	}
	if cfg.Search.Threshold != 0.4 {
		t.Errorf("Threshold = %v, want 0.4", cfg.Search.Threshold)
	}
	if cfg.API.MaxUploadBytes != 5*1024*1024 {
		t.Errorf("MaxUploadBytes = %d", cfg.API.MaxUploadBytes)
	}
	if cfg.Admin.AuthMode != "token" {
		t.Errorf("AuthMode = %q, want token", cfg.Admin.AuthMode)
	}
}

func TestLoadTrimsBaseURL(t *testing.T) {
	t.Setenv("NOTES_API_URL", "https://notes.example.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "https://notes.example.com" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.ApprovedNotesURL() != "https://notes.example.com/api/notes/approved" {
		t.Errorf("ApprovedNotesURL() = %q", cfg.ApprovedNotesURL())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "bad duration",
			env:     map[string]string{"NOTES_API_TIMEOUT": "soon"},
			wantErr: "parse env:",
		},
		{
			name:    "secret mode without hash",
			env:     map[string]string{"ADMIN_AUTH_MODE": "secret"},
			wantErr: "ADMIN_SECRET_HASH",
		},
		{
			name:    "unknown auth mode",
			env:     map[string]string{"ADMIN_AUTH_MODE": "oauth"},
			wantErr: "ADMIN_AUTH_MODE",
		},
		{
			name:    "unknown session store",
			env:     map[string]string{"SESSION_STORE": "memcached"},
			wantErr: "SESSION_STORE",
		},
		{
			name:    "zero attempts",
			env:     map[string]string{"NOTES_API_RETRY_ATTEMPTS": "0"},
			wantErr: "RETRY_ATTEMPTS",
		},
		{
			name:    "threshold out of range",
			env:     map[string]string{"SEARCH_THRESHOLD": "1.5"},
			wantErr: "SEARCH_THRESHOLD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load() expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
