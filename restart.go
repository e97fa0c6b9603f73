// Copyright 2026 The Pava Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pava

// Strategy is the recovery function a named restart runs when invoked.
// It receives whatever arguments [Session.InvokeRestart] was called with.
type Strategy func(args ...any) any

// RestartPair is one (name, strategy) entry of a [Session.WithRestart]
// call.
type RestartPair struct {
	Name     string
	Strategy Strategy
}

// restartGroup is every pair pushed by one WithRestart call. All pairs
// in a group share one binding id: the return point InvokeRestart
// transfers to.
type restartGroup struct {
	id    uint64
	pairs []RestartPair
}

// WithRestart installs pairs, sharing one binding, for the dynamic extent
// of body.
//
// On a normal return, WithRestart pops the group and returns body's
// value. On a restart-transfer addressed to this call's binding,
// WithRestart pops the group, looks up the named strategy among its own
// pairs, and returns the strategy's result — running it "in the dynamic
// context of with_restart's caller," i.e. after the group is already
// popped. On any other non-local transfer, the group is popped and the
// transfer continues outward unchanged.
func (s *Session) WithRestart(pairs []RestartPair, body func() any) (result any) {
	g := &restartGroup{id: nextID(), pairs: pairs}
	base := len(s.restarts)
	s.restarts = append(s.restarts, g)
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		u, ok := r.(unwind)
		if !ok || u.kind != unwindRestart || u.binding != g.id {
			panic(r)
		}
		for _, p := range g.pairs {
			if p.Name == u.name {
				result = p.Strategy(u.args...)
				return
			}
		}
		panic(r) // matched a frame id that no longer has this name: unreachable under correct use
	}()
	defer func() {
		if len(s.restarts) == 0 || s.restarts[len(s.restarts)-1].id != g.id {
			panic(UnbalancedStack{Stack: "restarts", Want: g.id, Got: topRestartID(s.restarts)})
		}
		s.restarts = s.restarts[:base]
	}()
	result = body()
	return
}

func topRestartID(groups []*restartGroup) uint64 {
	if len(groups) == 0 {
		return 0
	}
	return groups[len(groups)-1].id
}

// AvailableRestart reports whether any restart on the stack, from any
// enclosing WithRestart call, is named name.
func (s *Session) AvailableRestart(name string) bool {
	for i := len(s.restarts) - 1; i >= 0; i-- {
		for _, p := range s.restarts[i].pairs {
			if p.Name == name {
				return true
			}
		}
	}
	return false
}

// InvokeRestart transfers control to the innermost restart named name,
// unwinding every frame between the call site and that restart's
// WithRestart call. It does not return normally on a match. If no
// restart matches, it raises [NoSuchRestart] as a condition through the
// calling Session's [Session.Error] — the caller's enclosing [Session.Handling]
// may intercept it, or it aborts the process like any other unhandled
// error.
func (s *Session) InvokeRestart(name string, args ...any) any {
	for i := len(s.restarts) - 1; i >= 0; i-- {
		for _, p := range s.restarts[i].pairs {
			if p.Name == name {
				panic(unwind{kind: unwindRestart, binding: s.restarts[i].id, name: name, args: args})
			}
		}
	}
	return s.Error(New(KindNoSuchRestart, NoSuchRestart{Name: name}))
}
