// Package render drives a transition from request to finished video.
//
// A Request names the effect, the two sources, and the output parameters.
// The Processor validates it, loads both sources, renders every output frame
// through the transition, and hands the sequence to the encoder. Frames can
// render in parallel because transitions are stateless and sources are
// random-access.
package render
