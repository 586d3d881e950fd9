// Command segue renders animated transitions between two images or videos.
//
// Renders run directly (segue render) or through a background daemon that
// drains a persistent job queue (segue queue add, segue daemon). The
// remaining commands inspect effects, parameters, queue state, and
// environment health.
package main
