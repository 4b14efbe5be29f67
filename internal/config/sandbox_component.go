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
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nabbar/sanda/logger"
	"github.com/nabbar/sanda/modloader"
	"github.com/nabbar/sanda/permissions"
	"github.com/nabbar/sanda/permissions/envkind"
	"github.com/nabbar/sanda/permissions/fskind"
	"github.com/nabbar/sanda/permissions/httpkind"
	"github.com/nabbar/sanda/runtimefacade"
	"github.com/nabbar/sanda/sandbox"
	"github.com/nabbar/sanda/sandbox/engine"
)

// RuntimeComponent builds and owns one runtimefacade.Runtime, driven by
// a viper-backed permission allow-list and a postscript directory flag.
type RuntimeComponent struct {
	key string
	ctx context.Context
	get FuncGet
	vpr *viper.Viper
	log logger.FuncLog

	extensions []engine.Extension
	store      *runtimefacade.SnapshotStore

	rt *runtimefacade.Runtime
}

// NewRuntimeComponent returns a RuntimeComponent that binds extensions
// into every constructed engine and reuses store across Reload calls.
func NewRuntimeComponent(extensions []engine.Extension, store *runtimefacade.SnapshotStore) *RuntimeComponent {
	return &RuntimeComponent{extensions: extensions, store: store}
}

func (c *RuntimeComponent) Type() string { return "runtime" }

func (c *RuntimeComponent) Init(key string, ctx context.Context, get FuncGet, vpr *viper.Viper, log logger.FuncLog) {
	c.key, c.ctx, c.get, c.vpr, c.log = key, ctx, get, vpr, log
}

func (c *RuntimeComponent) RegisterFlag(cmd *cobra.Command) error {
	cmd.Flags().String(c.key+".postscript-dir", "postscripts", "directory of startup scripts executed before the main module")
	cmd.Flags().Bool(c.key+".snapshot-enabled", false, "reuse a cached postscript snapshot across restarts")
	cmd.Flags().String(c.key+".fs-root", "", "absolute directory every filesystem operation is confined to (defaults to the working directory)")
	cmd.Flags().StringSlice(c.key+".fs-allow", nil, "glob patterns granting filesystem access")
	cmd.Flags().StringSlice(c.key+".http-allow", nil, "glob patterns granting HTTP-event access")

	return bindFlags(c.vpr, cmd, c.key+".postscript-dir", c.key+".snapshot-enabled", c.key+".fs-root", c.key+".fs-allow", c.key+".http-allow")
}

func (c *RuntimeComponent) Start() error {
	sub := c.vpr.Sub(c.key)
	dir := "postscripts"
	snapshotEnabled := false
	fsRoot := ""
	var fsAllow, httpAllow []string
	if sub != nil {
		if v := sub.GetString("postscript-dir"); v != "" {
			dir = v
		}
		snapshotEnabled = sub.GetBool("snapshot-enabled")
		fsRoot = sub.GetString("fs-root")
		fsAllow = sub.GetStringSlice("fs-allow")
		httpAllow = sub.GetStringSlice("http-allow")
	}
	if fsRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		fsRoot = wd
	}
	if !filepath.IsAbs(fsRoot) {
		abs, err := filepath.Abs(fsRoot)
		if err != nil {
			return err
		}
		fsRoot = abs
	}

	b := permissions.NewBuilder().State(fskind.Root{Path: fsRoot})
	b.Add(envkind.New(), envkind.Access)
	for _, variant := range []int{fskind.Open, fskind.Create, fskind.Read, fskind.Write, fskind.Execute, fskind.Info} {
		b.AddWithAllow(fskind.New(), variant, fsAllow)
	}
	for _, variant := range []int{httpkind.ReadRequest, httpkind.ModifyRequest, httpkind.WriteResponse, httpkind.SendResponse} {
		b.AddWithAllow(httpkind.New(), variant, httpAllow)
	}

	perms, err := b.Build()
	if err != nil {
		return err
	}

	state := sandbox.New(perms)
	loaderMod := modloader.New(perms)

	rt, err := runtimefacade.New(state, loaderMod, c.extensions, c.store, runtimefacade.Options{
		SnapshotEnabled: snapshotEnabled,
		PostscriptDir:   dir,
	})
	if err != nil {
		return err
	}

	c.rt = rt
	return nil
}

func (c *RuntimeComponent) Reload() error {
	if c.rt != nil {
		c.rt.Close()
	}
	return c.Start()
}

func (c *RuntimeComponent) Stop() {
	if c.rt != nil {
		c.rt.Close()
		c.rt = nil
	}
}

// Runtime returns the currently running Runtime, or nil before Start.
func (c *RuntimeComponent) Runtime() *runtimefacade.Runtime {
	return c.rt
}

func bindFlags(vpr *viper.Viper, cmd *cobra.Command, keys ...string) error {
	for _, k := range keys {
		if f := cmd.Flags().Lookup(k); f != nil {
			if err := vpr.BindPFlag(k, f); err != nil {
				return err
			}
		}
	}
	return nil
}
