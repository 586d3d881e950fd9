// Package ffmpeg wraps the ffmpeg command-line encoder.
//
// Rendered frames stream into ffmpeg's stdin as raw RGB24 video and come out
// as an H.264 MP4. The Encoder interface exists so the render pipeline can be
// tested without a real ffmpeg on PATH.
package ffmpeg
