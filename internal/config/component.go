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

// Package config holds a named registry of Components, bound to
// github.com/spf13/viper and exposing flags through github.com/spf13/cobra.
// The package provides one Component, RuntimeComponent, which builds the
// permission registry, the module loader and the runtime together.
package config

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nabbar/sanda/logger"
)

// FuncGet retrieves a sibling component by key, or nil if unregistered.
type FuncGet func(key string) Component

// Component is one named, independently lifecycled piece of sandbox
// configuration.
type Component interface {
	// Type identifies the component for logging and registry lookup.
	Type() string

	// Init wires the component to its context, siblings, viper instance,
	// and logger before Start is ever called.
	Init(key string, ctx context.Context, get FuncGet, vpr *viper.Viper, log logger.FuncLog)

	// RegisterFlag exposes this component's CLI flags under cmd.
	RegisterFlag(cmd *cobra.Command) error

	// Start reads configuration from viper and brings the component up.
	Start() error

	// Reload re-reads configuration and applies changes without a full
	// restart where possible.
	Reload() error

	// Stop releases the component's resources; best-effort, no error.
	Stop()
}
