package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Render defaults share the
// range rules applied to individual render requests.
func (c *Config) Validate() error {
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.FPS < 15 || c.Render.FPS > 60 {
		return fmt.Errorf("render.fps must be between 15 and 60, got %d", c.Render.FPS)
	}
	if c.Render.Width < 320 || c.Render.Width > 3840 {
		return fmt.Errorf("render.width must be between 320 and 3840, got %d", c.Render.Width)
	}
	if c.Render.Height < 240 || c.Render.Height > 2160 {
		return fmt.Errorf("render.height must be between 240 and 2160, got %d", c.Render.Height)
	}
	if c.Render.TotalFrames < 1 || c.Render.TotalFrames > 300 {
		return fmt.Errorf("render.total_frames must be between 1 and 300, got %d", c.Render.TotalFrames)
	}
	if c.Render.Workers < 1 {
		return errors.New("render.workers must be at least 1")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.QueuePollInterval <= 0 {
		return errors.New("workflow.queue_poll_interval must be positive")
	}
	if c.Workflow.HeartbeatInterval <= 0 {
		return errors.New("workflow.heartbeat_interval must be positive")
	}
	if c.Workflow.HeartbeatTimeout <= 0 {
		return errors.New("workflow.heartbeat_timeout must be positive")
	}
	if c.Workflow.HeartbeatTimeout <= c.Workflow.HeartbeatInterval {
		return errors.New("workflow.heartbeat_timeout must be greater than workflow.heartbeat_interval")
	}
	return nil
}
