// Copyright 2026 The Pava Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pava

import "fmt"

// KindNoSuchRestart and KindEscapeExpired tag the conditions
// [Session.InvokeRestart] and an expired escape closure raise through
// [Session.Error]. Match on them with [KindIs] the same way as any other
// condition.
const (
	KindNoSuchRestart Kind = "pava.no-such-restart"
	KindEscapeExpired Kind = "pava.escape-expired"
)

// NoSuchRestart is the payload [Session.InvokeRestart] raises, as a
// condition, when no restart frame on the stack matches Name.
type NoSuchRestart struct {
	Name string
}

func (e NoSuchRestart) Error() string {
	return fmt.Sprintf("pava: no restart named %q is available", e.Name)
}

// EscapeExpired is the payload raised, as a condition, when an escape
// closure is invoked after its [Session.ToEscape] call has already
// returned.
type EscapeExpired struct {
	Binding uint64
}

func (e EscapeExpired) Error() string {
	return fmt.Sprintf("pava: escape %d invoked after its to_escape returned", e.Binding)
}

// UnbalancedStack indicates a pop found a frame other than the one the
// popping primitive itself pushed — impossible under correct, single-
// goroutine use of a Session. It is never raised as a condition: the
// condition machinery is exactly what it says is broken, so routing it
// through that machinery would be unsound. It is a programming-error
// backstop and is always fatal.
type UnbalancedStack struct {
	Stack string
	Want  uint64
	Got   uint64
}

func (e UnbalancedStack) Error() string {
	return fmt.Sprintf("pava: unbalanced %s stack: expected to pop frame %d, found %d", e.Stack, e.Want, e.Got)
}
