// Copyright 2026 The Pava Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pava implements a Common-Lisp-style condition system: signaling,
// handling, and restart-based recovery as three separate, composable
// concerns, plus a non-local escape primitive used to implement the
// non-local transfers the other two need.
//
// # Design Philosophy
//
// pava decouples:
//
//   - Signaling that something exceptional happened ([Session.Signal],
//     [Session.Error])
//   - Handling it at a dynamically-scoped outer frame ([Session.Handling])
//   - Recovering via named strategies registered by inner code but
//     selected by outer code ([Session.WithRestart], [Session.InvokeRestart])
//
// A fourth primitive, [Session.ToEscape], gives handlers and restarts the
// non-local exit they need to actually unwind.
//
// # Dynamic Context
//
// Common Lisp's special variables give handler-bind, restart-bind, and
// catch/throw an ambient, thread-local place to keep their stacks. Go has
// no ambient dynamic scoping, and building one out of goroutine-id tricks
// would just be the same global-registry anti-pattern under a different
// name. pava instead reifies the dynamic context as an explicit value: a
// [Session], created once per goroutine with [NewSession] and threaded
// through every call, the same way a context.Context is threaded rather
// than stashed in a thread-local. A Session is owned by exactly one
// goroutine for its entire lifetime and is never safe for concurrent use.
//
// # Core Operators
//
//   - [Session.Handling]: install (matcher, action) pairs for the dynamic
//     extent of a body
//   - [Session.Signal]: announce a condition; ignorable if no handler
//     handles it
//   - [Session.Error]: announce a condition that must be handled, or the
//     process aborts
//   - [Session.WithRestart]: install named recovery strategies for the
//     dynamic extent of a body
//   - [Session.InvokeRestart]: transfer control to a named restart,
//     unwinding every frame in between
//   - [Session.AvailableRestart]: ask whether a named restart is currently
//     reachable
//   - [Session.ToEscape]: capture a first-class, one-shot non-local exit
//
// # Matching and Outcomes
//
// [Condition] is an opaque value: a [Kind] tag plus an arbitrary payload.
// [Matcher] is supplied by the caller at [Session.Handling] time — pava
// imposes no hierarchy; [KindIs] and [Predicate] cover the common cases.
// A [HandlerAction] returns an [Outcome]: [Handled] to supply a value and
// stop the walk, or the zero value [Decline] to let the condition keep
// propagating outward. An action may instead perform a non-local transfer
// ([Session.InvokeRestart] or an escape closure), in which case it never
// returns to the caller at all.
//
// # Non-local Transfer
//
// Every non-local transfer in pava — an escape firing, a restart being
// invoked — is implemented as a single internal panic value caught by a
// deferred recover at its target frame, and re-panicked by every
// intermediate restart or escape frame it passes through (handling frames
// do not recover it; their deferred pop just runs). Because pava's bodies are ordinary
// Go closures rather than continuation-passing values, this is the
// natural idiomatic-Go rendition of "throw a sentinel and catch it at the
// target," and it gives every primitive scoped release for free: the
// deferred pop that balances a push runs on every exit path, panicking or
// not.
//
// # Error Kinds
//
// [NoSuchRestart] and [EscapeExpired] are raised as ordinary conditions
// (through [Session.Error]), so an enclosing [Session.Handling] can
// intercept either. [UnbalancedStack] is different: it signals that the
// bookkeeping itself is broken (a pop found a frame it didn't push), and
// is never routed through the condition machinery it indicates is unsound.
package pava
