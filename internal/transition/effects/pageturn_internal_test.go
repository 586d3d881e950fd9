package effects

import (
	"testing"

	"segue/internal/frame"
)

func TestFoldPositionXMovesWithProgress(t *testing.T) {
	const width = 640

	prev := width
	for step := 1; step <= 9; step++ {
		progress := float64(step) / 10
		fold := foldPositionX(width, progress, true)
		if fold >= prev {
			t.Fatalf("right turn fold must move left: progress %.1f gave %d after %d", progress, fold, prev)
		}
		prev = fold
	}

	prev = 0
	for step := 1; step <= 9; step++ {
		progress := float64(step) / 10
		fold := foldPositionX(width, progress, false)
		if fold <= prev {
			t.Fatalf("left turn fold must move right: progress %.1f gave %d after %d", progress, fold, prev)
		}
		prev = fold
	}
}

func TestFoldPositionsClamp(t *testing.T) {
	if got := foldPositionX(640, 0, true); got != 640 {
		t.Fatalf("fold at progress 0 = %d, want 640", got)
	}
	if got := foldPositionX(640, 1, true); got != 0 {
		t.Fatalf("fold at progress 1 = %d, want 0", got)
	}
	if got := foldPositionY(480, 0, true); got != 0 {
		t.Fatalf("vertical fold at progress 0 = %d, want 0", got)
	}
	if got := foldPositionY(480, 1, true); got != 480 {
		t.Fatalf("vertical fold at progress 1 = %d, want 480", got)
	}
}

func TestPageTurnEndpoints(t *testing.T) {
	f1 := frame.Solid(64, 48, frame.Color{R: 255})
	f2 := frame.Solid(64, 48, frame.Color{B: 255})
	turn := NewPageTurn()

	for _, direction := range []string{"right", "left", "up", "down"} {
		params := map[string]any{"direction": direction}

		first, err := turn.Apply(f1, f2, 0, 10, 30, params)
		if err != nil {
			t.Fatalf("%s frame 0: %v", direction, err)
		}
		off := first.Offset(32, 24)
		if first.Pix[off] != 255 || first.Pix[off+2] != 0 {
			t.Fatalf("%s frame 0 should show the outgoing page, got %v", direction, first.Pix[off:off+3])
		}

		last, err := turn.Apply(f1, f2, 9, 10, 30, params)
		if err != nil {
			t.Fatalf("%s last frame: %v", direction, err)
		}
		off = last.Offset(32, 24)
		if last.Pix[off+2] != 255 || last.Pix[off] != 0 {
			t.Fatalf("%s last frame should show the incoming page, got %v", direction, last.Pix[off:off+3])
		}
	}
}

func TestShadeColumnsDarkensTowardFold(t *testing.T) {
	img := frame.Solid(100, 20, frame.Color{R: 200, G: 200, B: 200})
	shaded := shadeColumns(img, 40, 90, 1.0, true)

	atFold := shaded.Pix[shaded.Offset(40, 10)]
	farther := shaded.Pix[shaded.Offset(55, 10)]
	if atFold >= farther {
		t.Fatalf("shadow should be strongest at the fold: %f vs %f", atFold, farther)
	}
	if atFold < shadowFloor {
		t.Fatalf("shadow must not drop below the floor: %f", atFold)
	}
	// Columns left of the fold belong to the untouched page and stay bright.
	if v := shaded.Pix[shaded.Offset(10, 10)]; v != 200 {
		t.Fatalf("pixel outside the band changed: %f", v)
	}
}

func TestShadeRowsDarkensTowardFold(t *testing.T) {
	img := frame.Solid(20, 100, frame.Color{R: 200, G: 200, B: 200})
	shaded := shadeRows(img, 40, 90, 1.0, false)

	atFold := shaded.Pix[shaded.Offset(10, 40)]
	farther := shaded.Pix[shaded.Offset(10, 55)]
	if atFold >= farther {
		t.Fatalf("shadow should be strongest at the fold: %f vs %f", atFold, farther)
	}
	if v := shaded.Pix[shaded.Offset(10, 10)]; v != 200 {
		t.Fatalf("pixel outside the band changed: %f", v)
	}
}
