// Copyright 2026 The Pava Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pava

import "github.com/google/uuid"

// Kind tags a Condition for matching. pava imposes no hierarchy on kinds;
// [KindIs] and [Predicate] are the two built-in matchers and callers are
// free to compose their own on top of Payload.
type Kind string

// Condition is an opaque value describing an exceptional situation. pava
// never inspects Payload; it exists purely for the caller's Matcher and
// HandlerAction to interpret.
type Condition struct {
	Kind    Kind
	Payload any

	// TraceID correlates a condition with the diagnostic line Error's
	// fatal-abort path logs for it. It plays no role in matching.
	TraceID uuid.UUID
}

// New constructs a Condition with a fresh trace id.
func New(kind Kind, payload any) Condition {
	return Condition{Kind: kind, Payload: payload, TraceID: uuid.New()}
}

// Matcher decides whether a handler pair or restart is willing to look at
// a Condition. The predicate is the hierarchy: pava does not impose one.
type Matcher func(Condition) bool

// KindIs matches conditions whose Kind equals kind exactly.
func KindIs(kind Kind) Matcher {
	return func(c Condition) bool { return c.Kind == kind }
}

// Predicate wraps an arbitrary predicate as a Matcher.
func Predicate(p func(Condition) bool) Matcher {
	return p
}

// Any matches every condition.
func Any() Matcher {
	return func(Condition) bool { return true }
}

// Outcome is a handler action's normal (non-transferring) result. The
// zero value is [Decline]: observed, but not handled, so the condition
// keeps propagating to the next outer handler.
type Outcome struct {
	Handled bool
	Value   any
}

// Handled returns an Outcome carrying v: the condition is treated as
// handled and v becomes the signaling primitive's return value.
func Handled(v any) Outcome {
	return Outcome{Handled: true, Value: v}
}

// Decline is the explicit decline outcome: the handler observed the
// condition but chose not to handle it. It is identical to the zero
// value of Outcome; naming it avoids the ambiguity of a bare "return
// nothing to decline" convention.
var Decline = Outcome{}

// HandlerAction inspects a Condition a Matcher has already accepted. It
// either returns an Outcome, or performs a non-local transfer (such as
// calling [Session.InvokeRestart] or an escape closure), in which case it
// never returns here at all.
type HandlerAction func(Condition) Outcome

// HandlerPair is one (matcher, action) entry of a [Session.Handling] call.
type HandlerPair struct {
	Matcher Matcher
	Action  HandlerAction
}

// On is a constructor for HandlerPair, for call sites that read better as
// a function than a struct literal.
func On(m Matcher, a HandlerAction) HandlerPair {
	return HandlerPair{Matcher: m, Action: a}
}
