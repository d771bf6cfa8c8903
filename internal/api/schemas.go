package api

import (
	"encoding/json"

	"github.com/forPelevin/momento/internal/types"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type ProcessResponse struct {
	Success        bool            `json:"success"`
	Clips          []string        `json:"clips"`
	FailedOrdinals []int           `json:"failed_ordinals,omitempty"`
	Transcript     json.RawMessage `json:"transcript,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ResultToResponse maps clip references to their retrieval URLs.
func ResultToResponse(res types.Result) ProcessResponse {
	clips := make([]string, 0, len(res.Clips))
	for _, c := range res.Clips {
		clips = append(clips, "/api/media/"+c.Name)
	}
	return ProcessResponse{
		Success:        true,
		Clips:          clips,
		FailedOrdinals: res.FailedOrdinals,
		Transcript:     res.Transcript,
	}
}
