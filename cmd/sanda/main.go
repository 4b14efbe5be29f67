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

// Command sanda loads a SandboxConfig from viper, builds the permission
// registry and runtime it describes, and runs a main module through it.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dop251/goja"

	"github.com/nabbar/sanda/logger"
	"github.com/nabbar/sanda/internal/config"
	"github.com/nabbar/sanda/runtimefacade"
	"github.com/nabbar/sanda/sandbox"
	"github.com/nabbar/sanda/sandbox/engine"
	"github.com/nabbar/sanda/sandbox/ops"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "sanda",
		Short: "Run a JS module inside the sandbox host bridge",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("usage: sanda <module>")
			}
			return run(cmd.Context(), configFile, args[0])
		},
	}

	root.Flags().StringVar(&configFile, "config", "", "path to a viper-readable config file (json, yaml, toml)")

	return root
}

func run(ctx context.Context, configFile, mainModule string) error {
	vpr := viper.New()
	if configFile != "" {
		vpr.SetConfigFile(configFile)
		if err := vpr.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	log := func() logger.Logger { return logger.New(ctx) }

	store := runtimefacade.NewSnapshotStore()
	rc := config.NewRuntimeComponent(defaultExtensions(ctx), store)

	cfg := config.New(ctx, vpr, log)
	cfg.Register("runtime", rc)

	if err := cfg.Start(); err != nil {
		return fmt.Errorf("starting sandbox: %w", err)
	}
	defer cfg.Stop()

	return rc.Runtime().Run(ctx, mainModule)
}

func defaultExtensions(ctx context.Context) []engine.Extension {
	return []engine.Extension{
		{Name: "fs", Bind: ops.BindFS},
		{Name: "httpevent", Bind: func(rt *goja.Runtime, state *sandbox.State) error {
			return ops.BindHTTPEvent(ctx, rt, state)
		}},
		{Name: "env", Bind: ops.BindEnv},
		{Name: "dev", Bind: ops.BindDev},
		{Name: "crypto", Bind: ops.BindCrypto},
		{Name: "cache", Bind: func(rt *goja.Runtime, state *sandbox.State) error {
			return ops.BindCache(ctx, rt, state)
		}},
	}
}
