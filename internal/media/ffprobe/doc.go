// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no segue-specific dependencies and could be extracted as a
// standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video stream properties
//   - Format: container-level metadata (duration, size, format name)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods on Result locate the primary video stream and parse its
// dimensions, frame rate, and frame count, which is what the video decoder
// needs before it can size its read buffer.
package ffprobe
