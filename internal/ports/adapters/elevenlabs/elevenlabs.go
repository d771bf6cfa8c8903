package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/forPelevin/momento/internal/types"
)

// Adapter calls the ElevenLabs speech-to-text endpoint with non-speech event
// tagging and diarization enabled, which is what makes laughter detectable
// downstream.
type Adapter struct {
	key     string
	model   string
	baseURL string
	client  *http.Client
}

const (
	requestTimeout = 5 * time.Minute

	defaultModel   = "scribe_v2"
	defaultBaseURL = "https://api.elevenlabs.io"
)

func New(apiKey, model, baseURL string) *Adapter {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	return &Adapter{key: apiKey, model: model, baseURL: baseURL, client: &http.Client{Timeout: requestTimeout}}
}

// Transcribe submits the audio file and returns the raw response payload.
// The payload shape is provider-defined and intentionally not decoded here.
func (a *Adapter) Transcribe(ctx context.Context, audioPath string) (json.RawMessage, error) {
	if a.key == "" {
		return nil, types.ErrMissingAPIKey
	}

	body, contentType, err := buildRequestBody(audioPath, a.model)
	if err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, "POST", a.baseURL+"/v1/speech-to-text", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", a.key)
	req.Header.Set("Content-Type", contentType)

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("elevenlabs timeout after %s (model=%s)", requestTimeout, a.model)
		}
		return nil, err
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &types.UpstreamError{
			Stage:  "transcribe",
			Status: resp.StatusCode,
			Body:   truncate(redactSecrets(string(rb), a.key), 400),
		}
	}
	if !json.Valid(rb) {
		return nil, fmt.Errorf("elevenlabs: response is not valid JSON: %q", truncate(string(rb), 200))
	}
	return json.RawMessage(rb), nil
}

// buildRequestBody assembles the multipart form: the audio as an audio/mpeg
// attachment plus the fixed transcription parameters.
func buildRequestBody(audioPath, model string) ([]byte, string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(audioPath)))
	h.Set("Content-Type", "audio/mpeg")
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("copy audio: %w", err)
	}

	fields := map[string]string{
		"model_id":         model,
		"tag_audio_events": "true",
		"diarize":          "true",
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func redactSecrets(s, apiKey string) string {
	if s == "" || apiKey == "" {
		return s
	}
	return strings.ReplaceAll(s, apiKey, "[REDACTED]")
}
