package effects

import "segue/internal/transition"

// Category labels group effects for listings. Presentation layers title-case
// them for display.
const (
	CategoryBlend       = "blend"
	CategoryMotion      = "motion"
	CategoryWarp        = "warp"
	CategoryPerspective = "perspective"
	CategoryMasking     = "masking"
)

// RegisterAll installs every built-in effect into the registry. It is called
// once at startup; a duplicate name means two effects collided and is
// returned as a fatal error.
func RegisterAll(reg *transition.Registry) error {
	registrations := []struct {
		name     string
		category string
		ctor     transition.Constructor
	}{
		{"crossfade", CategoryBlend, NewCrossfade},
		{"shake", CategoryMotion, NewShake},
		{"explosion", CategoryMotion, NewExplosion},
		{"warp", CategoryWarp, NewWarp},
		{"flip3d", CategoryPerspective, NewFlip3D},
		{"page_turn", CategoryPerspective, NewPageTurn},
		{"blinds", CategoryMasking, NewBlinds},
		{"checkerboard", CategoryMasking, NewCheckerboard},
		{"blink", CategoryMasking, NewBlink},
	}
	for _, r := range registrations {
		if err := reg.Register(r.name, r.category, r.ctor); err != nil {
			return err
		}
	}
	return nil
}
