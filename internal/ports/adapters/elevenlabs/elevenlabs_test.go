package elevenlabs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/forPelevin/momento/internal/types"
)

func writeTestAudio(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "audio.mp3")
	if err := os.WriteFile(p, []byte("not really mp3"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return p
}

func TestTranscribe_SendsFixedParameters(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey string
	var gotFields map[string]string
	var gotAudioType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotFields = map[string]string{}
		for k, vs := range r.MultipartForm.Value {
			if len(vs) > 0 {
				gotFields[k] = vs[0]
			}
		}
		if fhs := r.MultipartForm.File["file"]; len(fhs) == 1 {
			gotAudioType = fhs[0].Header.Get("Content-Type")
		} else {
			t.Errorf("expected exactly one file part, got %d", len(fhs))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"audio_events":[{"type":"laughter","start":1,"end":2}]}`))
	}))
	defer srv.Close()

	a := New("test-key", "", srv.URL)
	payload, err := a.Transcribe(context.Background(), writeTestAudio(t))
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}

	if gotPath != "/v1/speech-to-text" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("unexpected api key header: %q", gotKey)
	}
	if gotAudioType != "audio/mpeg" {
		t.Fatalf("expected audio/mpeg attachment, got %q", gotAudioType)
	}
	want := map[string]string{"model_id": "scribe_v2", "tag_audio_events": "true", "diarize": "true"}
	for k, v := range want {
		if gotFields[k] != v {
			t.Fatalf("field %s = %q, want %q", k, gotFields[k], v)
		}
	}
	if len(payload) == 0 {
		t.Fatalf("expected raw payload")
	}
}

func TestTranscribe_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"detail":"rate limited for key super-secret-key"}`))
	}))
	defer srv.Close()

	a := New("super-secret-key", "scribe_v2", srv.URL)
	_, err := a.Transcribe(context.Background(), writeTestAudio(t))

	var ue *types.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != http.StatusTooManyRequests {
		t.Fatalf("unexpected status: %d", ue.Status)
	}
	if ue.Stage != "transcribe" {
		t.Fatalf("unexpected stage: %s", ue.Stage)
	}
	if stringContains(ue.Body, "super-secret-key") {
		t.Fatalf("expected API key to be redacted from body: %q", ue.Body)
	}
}

func TestTranscribe_MissingKeyFailsFast(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach upstream without a credential")
	}))
	defer srv.Close()

	a := New("", "", srv.URL)
	_, err := a.Transcribe(context.Background(), writeTestAudio(t))
	if !errors.Is(err, types.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func stringContains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
