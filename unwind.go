// Copyright 2026 The Pava Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pava

import "sync/atomic"

// idSeq is the process-wide monotonic counter backing both frame ids and
// binding ids. A binding id only needs to stay unique while its frame is
// live, so a monotonic counter is enough; a single counter namespace for
// both is deliberate — nothing needs them distinguishable, and it keeps
// every pushed frame individually identifiable for the balance checks in
// handler.go, restart.go, and escape.go.
var idSeq atomic.Uint64

func nextID() uint64 {
	return idSeq.Add(1)
}

// unwindKind tags the two things a non-local transfer can be heading for.
type unwindKind int

const (
	unwindEscape unwindKind = iota
	unwindRestart
)

// unwind is the single internal panic payload for every non-local
// transfer. A primitive that can be a transfer target recovers a panic,
// checks whether it carries an unwind addressed to its own binding, and
// either consumes it (the transfer has reached its destination) or
// re-panics it unchanged so the next frame out gets a chance.
type unwind struct {
	kind    unwindKind
	binding uint64

	// payload carries the value passed to an escape closure.
	payload any

	// name and args carry the restart name and arguments for a restart
	// invocation.
	name string
	args []any
}
