package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/kapu/chatpay-ingest-go/pkg/errors"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(ServiceConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1",
	}, logger)
}

func TestTranscribe(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
		}
		if got := r.FormValue("model"); got != "gpt-4o-transcribe" {
			t.Errorf("unexpected model: %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("expected audio blob: %v", err)
		} else {
			defer file.Close()
			if header.Filename != "voice.ogg" {
				t.Errorf("unexpected blob name: %q", header.Filename)
			}
			data, _ := io.ReadAll(file)
			if string(data) != "OGGDATA" {
				t.Errorf("unexpected audio bytes: %q", data)
			}
		}
		fmt.Fprint(w, `{"text":"hi there"}`)
	})

	text, err := svc.Transcribe(context.Background(), []byte("OGGDATA"))
	if err != nil {
		t.Fatalf("Transcribe() failed: %v", err)
	}
	if text != "hi there" {
		t.Fatalf("unexpected transcript: %q", text)
	}
}

func TestTranscribeServiceError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"boom"}}`)
	})

	_, err := svc.Transcribe(context.Background(), []byte("OGGDATA"))
	if err == nil {
		t.Fatalf("expected transcription error")
	}
	var trErr apperrors.TranscriptionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TranscriptionError, got %T: %v", err, err)
	}
	if trErr.Model != "gpt-4o-transcribe" {
		t.Fatalf("unexpected model in error: %q", trErr.Model)
	}
}
