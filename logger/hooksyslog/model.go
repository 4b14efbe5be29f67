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

package hooksyslog

import (
	"context"
	"log/syslog"
	"strings"
	"sync"
	"sync/atomic"

	logtps "github.com/nabbar/sanda/logger/types"
	"github.com/sirupsen/logrus"
)

// ohks holds the immutable configuration for a syslog hook.
type ohks struct {
	format           logrus.Formatter
	levels           []logrus.Level
	disableStack     bool
	disableTimestamp bool
	enableTrace      bool
	enableAccessLog  bool
}

// hks is the implementation of HookSyslog.
type hks struct {
	m sync.Mutex
	o ohks
	w *syslog.Writer
	r atomic.Bool
}

func (o *hks) Levels() []logrus.Level {
	return o.o.levels
}

func (o *hks) RegisterHook(log *logrus.Logger) {
	log.AddHook(o)
}

func (o *hks) Fire(entry *logrus.Entry) error {
	levelAccepted := false
	for _, l := range o.o.levels {
		if l == entry.Level {
			levelAccepted = true
			break
		}
	}
	if !levelAccepted {
		return nil
	}

	ent := entry.Dup()

	if o.o.disableStack {
		ent.Data = o.filterKey(ent.Data, logtps.FieldStack)
	}

	if o.o.disableTimestamp {
		ent.Data = o.filterKey(ent.Data, logtps.FieldTime)
	}

	if !o.o.enableTrace {
		ent.Data = o.filterKey(ent.Data, logtps.FieldCaller)
		ent.Data = o.filterKey(ent.Data, logtps.FieldFile)
		ent.Data = o.filterKey(ent.Data, logtps.FieldLine)
	}

	var (
		p []byte
		e error
	)

	if o.o.enableAccessLog {
		if len(entry.Message) > 0 {
			msg := entry.Message
			if !strings.HasSuffix(msg, "\n") {
				msg += "\n"
			}
			p = []byte(msg)
		} else {
			return nil
		}
	} else {
		if len(ent.Data) < 1 {
			return nil
		} else if f := o.o.format; f != nil {
			p, e = f.Format(ent)
		} else {
			p, e = ent.Bytes()
		}

		if e != nil {
			return e
		}
	}

	return o.writeLevel(entry.Level, string(p))
}

// writeLevel dispatches the message to the syslog severity matching the logrus level.
func (o *hks) writeLevel(lvl logrus.Level, msg string) error {
	o.m.Lock()
	defer o.m.Unlock()

	if o.w == nil {
		return errClosed
	}

	switch lvl {
	case logrus.PanicLevel, logrus.FatalLevel:
		return o.w.Emerg(msg)
	case logrus.ErrorLevel:
		return o.w.Err(msg)
	case logrus.WarnLevel:
		return o.w.Warning(msg)
	case logrus.InfoLevel:
		return o.w.Info(msg)
	default:
		return o.w.Debug(msg)
	}
}

func (o *hks) filterKey(f logrus.Fields, key string) logrus.Fields {
	if len(f) < 1 {
		return f
	}

	res := make(logrus.Fields, len(f))
	for k, v := range f {
		if k == key {
			continue
		}
		res[k] = v
	}
	return res
}

func (o *hks) Write(p []byte) (n int, err error) {
	o.m.Lock()
	defer o.m.Unlock()

	if o.w == nil {
		return 0, errClosed
	}
	return o.w.Write(p)
}

func (o *hks) Close() error {
	o.m.Lock()
	defer o.m.Unlock()

	if o.w == nil {
		return nil
	}
	e := o.w.Close()
	o.w = nil
	return e
}

func (o *hks) Run(ctx context.Context) {
	o.r.Store(true)
	defer o.r.Store(false)

	<-ctx.Done()
	_ = o.Close()
}

func (o *hks) IsRunning() bool {
	return o.r.Load()
}
