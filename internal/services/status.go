package services

import (
	"errors"

	"segue/internal/queue"
)

// FailureStatus maps a render error to the queue status the worker should
// persist after the job fails. Errors the user must correct (bad parameters,
// unknown effects, undecodable sources) park the job for review; everything
// else is a plain failure eligible for retry.
func FailureStatus(err error) queue.Status {
	switch {
	case errors.Is(err, ErrConfiguration), errors.Is(err, ErrUnknownEffect), errors.Is(err, ErrMediaLoad):
		return queue.StatusReview
	default:
		return queue.StatusFailed
	}
}
