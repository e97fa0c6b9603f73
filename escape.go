// Copyright 2026 The Pava Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pava

import "sync/atomic"

// escapeFrame tracks one to_escape binding. active mirrors the affine,
// one-shot bookkeeping pattern used for continuations that must not be
// invoked after their extent ends — here the extent being guarded is the
// to_escape call itself, not a single resumption.
type escapeFrame struct {
	id     uint64
	active atomic.Bool
}

// ToEscape captures a first-class, one-shot non-local exit and passes it
// to body as the escape closure. Calling the closure while its frame is
// active unwinds every frame between the call site and this ToEscape
// call, running their scoped release along the way, and makes ToEscape
// return the value the closure was called with. The closure may be
// called from anywhere in body's dynamic extent — including from inside
// a handler action or a restart strategy — for as long as this ToEscape
// call is still on the stack.
//
// If body returns normally, ToEscape returns that value and the escape
// closure becomes permanently expired: calling it afterward raises
// [EscapeExpired] as a condition instead of transferring.
func (s *Session) ToEscape(body func(escape func(any) any) any) (result any) {
	fr := &escapeFrame{id: nextID()}
	fr.active.Store(true)
	base := len(s.escapes)
	s.escapes = append(s.escapes, fr)
	defer func() {
		if len(s.escapes) == 0 || s.escapes[len(s.escapes)-1].id != fr.id {
			panic(UnbalancedStack{Stack: "escapes", Want: fr.id, Got: topEscapeID(s.escapes)})
		}
		s.escapes = s.escapes[:base]
	}()
	defer func() {
		fr.active.Store(false)
		r := recover()
		if r == nil {
			return
		}
		u, ok := r.(unwind)
		if !ok || u.kind != unwindEscape || u.binding != fr.id {
			panic(r)
		}
		result = u.payload
	}()
	escape := func(v any) any {
		if !fr.active.Load() {
			return s.Error(New(KindEscapeExpired, EscapeExpired{Binding: fr.id}))
		}
		panic(unwind{kind: unwindEscape, binding: fr.id, payload: v})
	}
	result = body(escape)
	return
}

func topEscapeID(frames []*escapeFrame) uint64 {
	if len(frames) == 0 {
		return 0
	}
	return frames[len(frames)-1].id
}
