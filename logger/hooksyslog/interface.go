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

// Package hooksyslog provides a logrus hook implementation for writing logs to syslog.
// It supports local and remote syslog endpoints, per-level severity dispatch, and
// custom formatters.
package hooksyslog

import (
	"errors"
	"log/syslog"

	logcfg "github.com/nabbar/sanda/logger/config"
	loglvl "github.com/nabbar/sanda/logger/level"
	logtps "github.com/nabbar/sanda/logger/types"
	"github.com/sirupsen/logrus"
)

// errClosed is returned when attempting to write to a syslog hook that has
// already been closed.
var errClosed = errors.New("hooksyslog: connection not setup")

// HookSyslog defines the interface for a logrus hook that writes logs to syslog.
type HookSyslog interface {
	logtps.Hook
}

// New creates and initializes a new syslog hook with the specified options and formatter.
//
// If opt.Network and opt.Host are both empty, the hook connects to the local syslog
// daemon. Otherwise it dials the remote syslog server over the given network (tcp,
// udp, ...).
func New(opt logcfg.OptionsSyslog, format logrus.Formatter) (HookSyslog, error) {
	var (
		LVLs = make([]logrus.Level, 0)
		w    *syslog.Writer
		err  error
		fac  = parseFacility(opt.Facility)
	)

	if len(opt.LogLevel) > 0 {
		for _, ls := range opt.LogLevel {
			LVLs = append(LVLs, loglvl.Parse(ls).Logrus())
		}
	} else {
		LVLs = logrus.AllLevels
	}

	if opt.Network == "" && opt.Host == "" {
		w, err = syslog.New(fac|syslog.LOG_INFO, opt.Tag)
	} else {
		w, err = syslog.Dial(opt.Network, opt.Host, fac|syslog.LOG_INFO, opt.Tag)
	}

	if err != nil {
		return nil, err
	}

	return &hks{
		o: ohks{
			format:           format,
			levels:           LVLs,
			disableStack:     opt.DisableStack,
			disableTimestamp: opt.DisableTimestamp,
			enableTrace:      opt.EnableTrace,
			enableAccessLog:  opt.EnableAccessLog,
		},
		w: w,
	}, nil
}

// parseFacility maps a syslog facility name to its syslog.Priority constant.
// Unknown or empty names fall back to LOG_LOCAL0, matching most daemon defaults.
func parseFacility(name string) syslog.Priority {
	switch name {
	case "kern":
		return syslog.LOG_KERN
	case "user":
		return syslog.LOG_USER
	case "mail":
		return syslog.LOG_MAIL
	case "daemon":
		return syslog.LOG_DAEMON
	case "auth":
		return syslog.LOG_AUTH
	case "syslog":
		return syslog.LOG_SYSLOG
	case "lpr":
		return syslog.LOG_LPR
	case "news":
		return syslog.LOG_NEWS
	case "uucp":
		return syslog.LOG_UUCP
	case "cron":
		return syslog.LOG_CRON
	case "authpriv":
		return syslog.LOG_AUTHPRIV
	case "ftp":
		return syslog.LOG_FTP
	case "local1":
		return syslog.LOG_LOCAL1
	case "local2":
		return syslog.LOG_LOCAL2
	case "local3":
		return syslog.LOG_LOCAL3
	case "local4":
		return syslog.LOG_LOCAL4
	case "local5":
		return syslog.LOG_LOCAL5
	case "local6":
		return syslog.LOG_LOCAL6
	case "local7":
		return syslog.LOG_LOCAL7
	default:
		return syslog.LOG_LOCAL0
	}
}
