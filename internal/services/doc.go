// Package services defines the error taxonomy shared by the rendering
// pipeline and its collaborators.
//
// Errors are classified with sentinel markers so callers can branch on
// errors.Is without parsing messages: configuration problems fail fast before
// any frame is computed, unknown or duplicate effect names indicate wiring
// bugs, media-load failures come from the decode boundary, and dimension
// errors flag a transition that violated its geometry contract. Wrap attaches
// stage and operation context while preserving the marker, and FailureStatus
// maps an error to the queue status the worker should persist.
package services
