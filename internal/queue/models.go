package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a render job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRendering Status = "rendering"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	// StatusReview parks jobs whose failure needs user action (bad
	// parameters, unknown effect, unreadable source) rather than a retry.
	StatusReview Status = "review"
)

var allStatuses = []Status{
	StatusPending,
	StatusRendering,
	StatusCompleted,
	StatusFailed,
	StatusReview,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Job represents a render job persisted in SQLite.
type Job struct {
	ID              int64
	JobID           string // stable UUID, used for temp artifact naming
	Effect          string
	Source1         string
	Source2         string
	OutputFile      string
	RequestJSON     string // serialized render.Request
	Status          Status
	ErrorMessage    string
	ProgressPercent float64
	ProgressMessage string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	LastHeartbeat   *time.Time
}

// SetProgress updates the progress fields together.
func (j *Job) SetProgress(percent float64, message string) {
	j.ProgressPercent = percent
	j.ProgressMessage = message
}

// SetFailed marks the job with the given terminal failure status and message.
func (j *Job) SetFailed(status Status, message string) {
	j.Status = status
	j.ErrorMessage = message
	j.ProgressMessage = message
	j.LastHeartbeat = nil
}

// SetCompleted marks the job as done with its final output path.
func (j *Job) SetCompleted(outputFile string) {
	j.Status = StatusCompleted
	j.OutputFile = outputFile
	j.ErrorMessage = ""
	j.ProgressPercent = 100
	j.ProgressMessage = "completed"
	j.LastHeartbeat = nil
}

// HealthSummary describes aggregated queue counts per lifecycle state.
type HealthSummary struct {
	Total     int
	Pending   int
	Rendering int
	Completed int
	Failed    int
	Review    int
}
