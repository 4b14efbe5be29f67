/*
 * MIT License
 *
 * Copyright (c) 2021 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package config

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nabbar/sanda/logger"
)

// Config is a named registry of Components, started and stopped in
// registration order (reversed for Stop).
type Config struct {
	mu  sync.RWMutex
	ctx context.Context
	vpr *viper.Viper
	log logger.FuncLog

	order []string
	cpt   map[string]Component
}

// New returns an empty Config bound to ctx, vpr, and log.
func New(ctx context.Context, vpr *viper.Viper, log logger.FuncLog) *Config {
	return &Config{
		ctx: ctx,
		vpr: vpr,
		log: log,
		cpt: make(map[string]Component),
	}
}

// Register adds c under key, calling its Init immediately.
func (c *Config) Register(key string, comp Component) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cpt[key]; !exists {
		c.order = append(c.order, key)
	}
	c.cpt[key] = comp
	comp.Init(key, c.ctx, c.Get, c.vpr, c.log)
}

// Get returns the component registered under key, or nil.
func (c *Config) Get(key string) Component {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cpt[key]
}

// RegisterFlag calls RegisterFlag on every component, in registration order.
func (c *Config) RegisterFlag(cmd *cobra.Command) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, key := range c.order {
		if err := c.cpt[key].RegisterFlag(cmd); err != nil {
			return fmt.Errorf("component %q: register flags: %w", key, err)
		}
	}
	return nil
}

// Start brings up every component in registration order, stopping the
// ones already started if a later component fails.
func (c *Config) Start() error {
	c.mu.RLock()
	order := append([]string(nil), c.order...)
	c.mu.RUnlock()

	started := make([]string, 0, len(order))
	for _, key := range order {
		if err := c.cpt[key].Start(); err != nil {
			for i := len(started) - 1; i >= 0; i-- {
				c.cpt[started[i]].Stop()
			}
			return fmt.Errorf("component %q: start: %w", key, err)
		}
		started = append(started, key)
	}
	return nil
}

// Reload re-reads configuration for every component in registration order.
func (c *Config) Reload() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, key := range c.order {
		if err := c.cpt[key].Reload(); err != nil {
			return fmt.Errorf("component %q: reload: %w", key, err)
		}
	}
	return nil
}

// Stop shuts down every component in reverse registration order.
func (c *Config) Stop() {
	c.mu.RLock()
	order := append([]string(nil), c.order...)
	c.mu.RUnlock()

	for i := len(order) - 1; i >= 0; i-- {
		c.cpt[order[i]].Stop()
	}
}
