package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"segue/internal/config"
	"segue/internal/services"
	"segue/internal/transition"
)

// Request describes one transition render. The JSON form is what the queue
// stores, so field names are part of the on-disk contract.
type Request struct {
	Effect      string            `json:"effect"`
	Source1     string            `json:"source1"`
	Source2     string            `json:"source2"`
	OutputFile  string            `json:"output_file,omitempty"`
	TotalFrames int               `json:"total_frames,omitempty"`
	FPS         int               `json:"fps,omitempty"`
	Width       int               `json:"width,omitempty"`
	Height      int               `json:"height,omitempty"`
	Workers     int               `json:"workers,omitempty"`
	Params      transition.Params `json:"params,omitempty"`
}

// ApplyDefaults fills unset numeric fields from the configured render
// defaults. Explicit request values win.
func (r *Request) ApplyDefaults(defaults config.Render) {
	if r.TotalFrames == 0 {
		r.TotalFrames = defaults.TotalFrames
	}
	if r.FPS == 0 {
		r.FPS = defaults.FPS
	}
	if r.Width == 0 {
		r.Width = defaults.Width
	}
	if r.Height == 0 {
		r.Height = defaults.Height
	}
	if r.Workers == 0 {
		r.Workers = defaults.Workers
	}
}

// Validate checks the request against the same range rules the configuration
// enforces for its render defaults.
func (r *Request) Validate() error {
	fail := func(msg string) error {
		return services.Wrap(services.ErrConfiguration, "render", "validate request", msg, nil)
	}
	if strings.TrimSpace(r.Effect) == "" {
		return fail("effect is required")
	}
	if strings.TrimSpace(r.Source1) == "" || strings.TrimSpace(r.Source2) == "" {
		return fail("both sources are required")
	}
	if r.TotalFrames < 1 || r.TotalFrames > 300 {
		return fail(fmt.Sprintf("total_frames must be between 1 and 300, got %d", r.TotalFrames))
	}
	if r.FPS < 15 || r.FPS > 60 {
		return fail(fmt.Sprintf("fps must be between 15 and 60, got %d", r.FPS))
	}
	if r.Width < 320 || r.Width > 3840 {
		return fail(fmt.Sprintf("width must be between 320 and 3840, got %d", r.Width))
	}
	if r.Height < 240 || r.Height > 2160 {
		return fail(fmt.Sprintf("height must be between 240 and 2160, got %d", r.Height))
	}
	if r.Workers < 1 {
		return fail("workers must be at least 1")
	}
	return nil
}

// Encode serializes the request for queue storage.
func (r Request) Encode() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode render request: %w", err)
	}
	return string(data), nil
}

// ParseRequest deserializes a queued request payload.
func ParseRequest(payload string) (Request, error) {
	var req Request
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return Request{}, services.Wrap(services.ErrConfiguration, "render", "parse request",
			"stored request payload is not valid JSON", err)
	}
	return req, nil
}
