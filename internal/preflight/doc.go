// Package preflight provides readiness checks for the external tools and
// filesystem paths rendering depends on.
//
// The daemon runs RunAll at startup and the CLI "segue status" command uses
// it to display environment health. Each check returns a Result instead of an
// error so one broken dependency never hides the rest.
package preflight
