// Package effects implements the built-in transition algorithms: the
// crossfade/blend family, shake, the geometric warp family, the 3D
// perspective flips and page turns, and the masking family (blinds,
// checkerboard, blink), plus the explosion scatter.
//
// Every effect is a pure function of its inputs. The only sanctioned
// randomness is behind an explicit seed parameter (shake, explosion); a zero
// seed draws nondeterministically and such renders are tolerance-tested, not
// compared byte for byte.
//
// RegisterAll is the single composition point: nothing registers itself via
// package side effects.
package effects
