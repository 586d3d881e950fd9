package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"segue/internal/config"
	"segue/internal/queue"
	"segue/internal/transition"
	"segue/internal/transition/effects"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	factoryOnce sync.Once
	factory     *transition.Factory
	factoryErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureFactory() (*transition.Factory, error) {
	c.factoryOnce.Do(func() {
		registry := transition.NewRegistry()
		if err := effects.RegisterAll(registry); err != nil {
			c.factoryErr = err
			return
		}
		c.factory = transition.NewFactory(registry)
	})
	return c.factory, c.factoryErr
}

// withStore opens the queue database for the duration of one command.
func (c *commandContext) withStore(fn func(*queue.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := queue.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
