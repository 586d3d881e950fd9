// Package media loads transition sources and exposes them as finite,
// restartable frame sequences.
//
// A Source is an ordered sequence of frames addressed by index; progress-based
// sampling maps a normalized transition position onto that sequence. Still
// images become single-frame sources, videos are decoded up front through
// ffmpeg's rawvideo pipe, and SliceSource wraps in-memory frames for tests and
// synthetic inputs.
//
// Load failures wrap the media-load sentinel so callers can classify them
// without inspecting messages.
package media
