// Copyright 2026 The Pava Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pava

// handlerGroup is every pair pushed by one [Session.Handling] call. Pairs
// within a group are tried in textual (slice) order; groups are tried
// newest-first. Grouping by call, rather than flattening every pair onto
// one stack, is what makes "innermost handling call wins" and "textual
// order within one handling call" both hold without conflicting: the
// outer loop walks groups newest-first, the inner loop walks one group's
// pairs in push order.
type handlerGroup struct {
	id    uint64
	pairs []HandlerPair
}

// Handling installs pairs for the dynamic extent of body. Pairs are
// pushed as a single group above whatever the caller's Session already
// has installed; body runs; the group is popped on every exit path,
// panicking or not.
func (s *Session) Handling(pairs []HandlerPair, body func() any) any {
	g := &handlerGroup{id: nextID(), pairs: pairs}
	base := len(s.handlers)
	s.handlers = append(s.handlers, g)
	defer func() {
		if len(s.handlers) == 0 || s.handlers[len(s.handlers)-1].id != g.id {
			panic(UnbalancedStack{Stack: "handlers", Want: g.id, Got: topHandlerID(s.handlers)})
		}
		s.handlers = s.handlers[:base]
	}()
	return body()
}

func topHandlerID(groups []*handlerGroup) uint64 {
	if len(groups) == 0 {
		return 0
	}
	return groups[len(groups)-1].id
}

// Signal announces c. The handler stack is walked newest-group-first,
// textual order within a group; the first action that returns a Handled
// outcome stops the walk and its value becomes Signal's return value
// (ok=true). If no handler's matcher accepts c, or every accepting
// action declines, Signal returns (nil, false) — unhandled and
// ignorable, with no side effect of its own.
func (s *Session) Signal(c Condition) (value any, handled bool) {
	return s.walk(c)
}

// Error announces a condition that must be handled. It walks exactly as
// Signal does; if a handler transfers non-locally, control leaves here
// and never returns. If the walk is exhausted with no Handled outcome,
// Error aborts the process via its Session's diagnostic logger instead
// of returning.
func (s *Session) Error(c Condition) any {
	if v, ok := s.walk(c); ok {
		return v
	}
	s.fatal(c)
	panic("pava: unreachable")
}

// walk is the shared handler-stack traversal for Signal and Error. For
// each matching pair it runs the action with the handler stack
// temporarily truncated to everything strictly older than that pair's
// group — so the action cannot re-enter its own group, while every older
// group (crucially, not yet unwound — still real, still on the Go call
// stack) remains reachable to any nested Signal/Error the action itself
// performs. This mirrors handler-bind's documented behavior in Common
// Lisp: the establishing cluster, and everything newer, is disabled for
// the duration of one of its own handlers' execution.
func (s *Session) walk(c Condition) (value any, handled bool) {
	for gi := len(s.handlers) - 1; gi >= 0; gi-- {
		group := s.handlers[gi]
		for _, pair := range group.pairs {
			if pair.Matcher == nil || !pair.Matcher(c) {
				continue
			}
			outcome := s.runAction(pair.Action, gi, c)
			if outcome.Handled {
				return outcome.Value, true
			}
		}
	}
	return nil, false
}

// runAction truncates the visible handler stack to groups strictly older
// than gi, runs action, and restores the real stack afterward — via
// defer, so the restore happens even if action performs a non-local
// transfer. Restoring unconditionally is what keeps the stack's length
// consistent for every Handling frame the transfer subsequently unwinds
// through on its way to its target.
func (s *Session) runAction(action HandlerAction, gi int, c Condition) (outcome Outcome) {
	saved := s.handlers
	visible := make([]*handlerGroup, gi)
	copy(visible, saved[:gi])
	s.handlers = visible
	defer func() { s.handlers = saved }()
	return action(c)
}
