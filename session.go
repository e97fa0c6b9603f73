// Copyright 2026 The Pava Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pava

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// Session is the per-goroutine Dynamic Context: the stacks of handler,
// restart, and escape frames that [Session.Handling], [Session.WithRestart],
// and [Session.ToEscape] push and pop. Create one with [NewSession] at the
// top of a goroutine and thread it through every call that goroutine
// makes; a Session is owned by exactly one goroutine for its entire
// lifetime and is not safe for concurrent use — spawning a goroutine does
// not inherit a parent's Session, by design.
type Session struct {
	handlers []*handlerGroup
	restarts []*restartGroup
	escapes  []*escapeFrame

	diag *slog.Logger
	exit func(code int)
}

// NewSession creates an empty Dynamic Context.
func NewSession() *Session {
	return &Session{
		diag: defaultDiagnosticLogger(),
		exit: os.Exit,
	}
}

// SetDiagnosticLogger overrides the logger [Session.Error]'s fatal-abort
// path writes to. The default colorizes human-readable lines to stderr
// via a tint handler, the same handler shape the reference console logger
// in this corpus uses for its dev-mode output.
func (s *Session) SetDiagnosticLogger(l *slog.Logger) {
	s.diag = l
}

func defaultDiagnosticLogger() *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelError}))
}

// fatal logs the unhandled condition and aborts the process. It is only
// reached by [Session.Error] after its handler walk is exhausted with no
// transfer and no Handled outcome.
func (s *Session) fatal(c Condition) {
	s.diag.Error("unhandled error condition: aborting",
		slog.String("kind", string(c.Kind)),
		slog.Any("payload", c.Payload),
		slog.String("trace_id", c.TraceID.String()),
	)
	s.exit(1)
	// s.exit does not return under the default (os.Exit); this panic is a
	// backstop in case s.exit is ever set to a func that returns.
	panic("pava: Session.exit returned instead of terminating")
}
