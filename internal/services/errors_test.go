package services_test

import (
	"errors"
	"fmt"
	"testing"

	"segue/internal/queue"
	"segue/internal/services"
)

func TestWrapPreservesMarkerAndCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := services.Wrap(services.ErrExternalTool, "encode", "write", "ffmpeg exited", cause)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("marker lost: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
	want := "external tool error: encode: write: ffmpeg exited: boom"
	if err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("nil marker should default to external tool: %v", err)
	}
	if err.Error() != "external tool error: render failure" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestFailureStatus(t *testing.T) {
	cases := []struct {
		err  error
		want queue.Status
	}{
		{services.Wrap(services.ErrConfiguration, "render", "validate", "fps out of range", nil), queue.StatusReview},
		{services.Wrap(services.ErrUnknownEffect, "render", "create", "no such effect", nil), queue.StatusReview},
		{services.Wrap(services.ErrMediaLoad, "render", "load", "unreadable", nil), queue.StatusReview},
		{services.Wrap(services.ErrExternalTool, "encode", "write", "exit 1", nil), queue.StatusFailed},
		{errors.New("unclassified"), queue.StatusFailed},
	}
	for _, tc := range cases {
		if got := services.FailureStatus(tc.err); got != tc.want {
			t.Fatalf("FailureStatus(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
