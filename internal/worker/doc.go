// Package worker runs the background render daemon.
//
// The worker claims pending jobs from the queue one at a time, renders them
// through the processor, and records the outcome. A file lock enforces a
// single daemon per machine, heartbeats mark a job as alive while it renders,
// and stale jobs from crashed daemons return to pending automatically.
package worker
