package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks requests with out-of-range or unknown-enum
	// parameters. Raised before any frame is computed.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnknownEffect marks lookups of effect names nobody registered.
	ErrUnknownEffect = errors.New("unknown effect")

	// ErrDuplicateEffect marks a second registration under an existing name.
	// This is a programming error and fatal at startup.
	ErrDuplicateEffect = errors.New("duplicate effect registration")

	// ErrMediaLoad marks sources that could not be decoded. No partial
	// output is produced when it surfaces.
	ErrMediaLoad = errors.New("media load error")

	// ErrFrameDimension marks a transition returning mismatched geometry,
	// an internal invariant violation that aborts the render.
	ErrFrameDimension = errors.New("frame dimension error")

	// ErrExternalTool marks failures of exec'd collaborators (ffmpeg,
	// ffprobe).
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes pipeline context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "render failure"
	}
	return strings.Join(parts, ": ")
}
