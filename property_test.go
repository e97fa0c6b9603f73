// Copyright 2026 The Pava Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pava_test

import (
	"math/rand/v2"
	"testing"

	"github.com/erlendhv/pava"
)

const propertyN = 200

// TestPropertyStackBalanceAcrossExitPaths checks that frames pushed by a
// primitive are gone once it exits, across a normal return, an unhandled
// signal, a handled signal, and a non-local transfer through the frame:
// afterwards neither the probe restart nor a handler for kindDemo may
// still be reachable.
func TestPropertyStackBalanceAcrossExitPaths(t *testing.T) {
	s := pava.NewSession()
	const probe = "pava-test-balance-probe"

	check := func(t *testing.T) {
		t.Helper()
		if s.AvailableRestart(probe) {
			t.Fatalf("restart %q leaked past its enclosing frame", probe)
		}
		if _, ok := s.Signal(pava.New(kindDemo, nil)); ok {
			t.Fatalf("a handler leaked past its enclosing frame")
		}
	}

	t.Run("normal-return", func(t *testing.T) {
		s.Handling(nil, func() any { return nil })
		check(t)
	})

	t.Run("unhandled-signal", func(t *testing.T) {
		s.Handling(nil, func() any {
			s.Signal(pava.New(kindDemo, nil))
			return nil
		})
		check(t)
	})

	t.Run("handled-signal", func(t *testing.T) {
		s.Handling([]pava.HandlerPair{
			pava.On(pava.KindIs(kindDemo), func(c pava.Condition) pava.Outcome { return pava.Handled(nil) }),
		}, func() any {
			s.Signal(pava.New(kindDemo, nil))
			return nil
		})
		check(t)
	})

	t.Run("transfer-through", func(t *testing.T) {
		s.WithRestart([]pava.RestartPair{
			{Name: probe, Strategy: func(args ...any) any { return nil }},
		}, func() any {
			s.Handling(nil, func() any {
				s.Handling(nil, func() any {
					return s.InvokeRestart(probe)
				})
				return nil
			})
			return nil
		})
		check(t)
	})
}

// TestPropertyInnermostHandlingWins checks that for nested handling
// calls with matchers accepting the same condition, the innermost
// action runs and its handled outcome wins.
func TestPropertyInnermostHandlingWins(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 0))
	for range propertyN {
		s := pava.NewSession()
		payload := rng.IntN(1000)
		result := s.Handling([]pava.HandlerPair{
			pava.On(pava.KindIs(kindDemo), func(c pava.Condition) pava.Outcome { return pava.Handled("outer") }),
		}, func() any {
			return s.Handling([]pava.HandlerPair{
				pava.On(pava.KindIs(kindDemo), func(c pava.Condition) pava.Outcome { return pava.Handled("inner") }),
			}, func() any {
				v, _ := s.Signal(pava.New(kindDemo, payload))
				return v
			})
		})
		if result != "inner" {
			t.Fatalf("payload=%d: got %v, want \"inner\"", payload, result)
		}
	}
}

// TestPropertyTextualOrderWithinOneFrame checks that pairs within a
// single handling call are tried in the order they were passed.
func TestPropertyTextualOrderWithinOneFrame(t *testing.T) {
	s := pava.NewSession()
	var order []int
	s.Handling([]pava.HandlerPair{
		pava.On(pava.KindIs(kindDemo), func(c pava.Condition) pava.Outcome { order = append(order, 0); return pava.Decline }),
		pava.On(pava.KindIs(kindDemo), func(c pava.Condition) pava.Outcome { order = append(order, 1); return pava.Decline }),
		pava.On(pava.KindIs(kindDemo), func(c pava.Condition) pava.Outcome { order = append(order, 2); return pava.Handled(nil) }),
	}, func() any {
		s.Signal(pava.New(kindDemo, nil))
		return nil
	})
	if len(order) != 3 {
		t.Fatalf("order = %v, want [0 1 2]", order)
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want [0 1 2]", order)
		}
	}
}

// TestPropertyRestartShadowing checks that a restart installed by an
// inner with_restart shadows one of the same name installed by an outer
// call.
func TestPropertyRestartShadowing(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 0))
	for range propertyN {
		s := pava.NewSession()
		arg := rng.IntN(1000)
		result := s.WithRestart([]pava.RestartPair{
			{Name: "r", Strategy: func(args ...any) any { return "f1" }},
		}, func() any {
			return s.WithRestart([]pava.RestartPair{
				{Name: "r", Strategy: func(args ...any) any { return "f2" }},
			}, func() any {
				return s.InvokeRestart("r", arg)
			})
		})
		if result != "f2" {
			t.Fatalf("arg=%d: got %v, want \"f2\"", arg, result)
		}
	}
}

// TestPropertyHandlerSeesInnerRestarts checks that a handler installed
// above a with_restart that signals can still invoke the inner
// restart's name.
func TestPropertyHandlerSeesInnerRestarts(t *testing.T) {
	s := pava.NewSession()
	result := s.Handling([]pava.HandlerPair{
		pava.On(pava.KindIs(kindDemo), func(c pava.Condition) pava.Outcome {
			return pava.Handled(s.InvokeRestart("inner-restart"))
		}),
	}, func() any {
		return s.WithRestart([]pava.RestartPair{
			{Name: "inner-restart", Strategy: func(args ...any) any { return "resolved" }},
		}, func() any {
			v, _ := s.Signal(pava.New(kindDemo, nil))
			return v
		})
	})
	if result != "resolved" {
		t.Fatalf("got %v, want \"resolved\"", result)
	}
}

// TestPropertySignalIgnorability checks that signal with no matching
// handler returns without side effect or abort. The only installed
// handler matches a different kind and counts any call it receives.
func TestPropertySignalIgnorability(t *testing.T) {
	s := pava.NewSession()
	sideEffect := 0
	var v any
	var ok bool
	s.Handling([]pava.HandlerPair{
		pava.On(pava.KindIs(kindDivByZero), func(c pava.Condition) pava.Outcome {
			sideEffect++
			return pava.Handled("wrong")
		}),
	}, func() any {
		v, ok = s.Signal(pava.New(kindDemo, nil))
		return nil
	})
	if ok || v != nil {
		t.Fatalf("got (%v, %v), want (nil, false)", v, ok)
	}
	if sideEffect != 0 {
		t.Fatalf("signal with no handler had a side effect")
	}
}

// Error fatality (error(c) with no matching handler aborts the process)
// is exercised out-of-process in error_fatal_test.go, since asserting on
// os.Exit requires a subprocess.

// TestPropertyEscapeScope checks that calling an expired escape closure
// raises EscapeExpired instead of transferring.
func TestPropertyEscapeScope(t *testing.T) {
	s := pava.NewSession()
	var escape func(any) any
	s.ToEscape(func(e func(any) any) any {
		escape = e
		return nil
	})
	result := s.Handling([]pava.HandlerPair{
		pava.On(pava.KindIs(pava.KindEscapeExpired), func(c pava.Condition) pava.Outcome {
			if _, ok := c.Payload.(pava.EscapeExpired); !ok {
				t.Fatalf("payload type = %T, want pava.EscapeExpired", c.Payload)
			}
			return pava.Handled("rejected")
		}),
	}, func() any {
		return escape("too-late")
	})
	if result != "rejected" {
		t.Fatalf("got %v, want \"rejected\"", result)
	}
}

// TestPropertyDeclineSemantics checks that a handler returning the zero
// Outcome (no Handled) is treated as having declined, so outer handlers
// still see the condition.
func TestPropertyDeclineSemantics(t *testing.T) {
	s := pava.NewSession()
	innerRan := false
	outerRan := false
	s.Handling([]pava.HandlerPair{
		pava.On(pava.KindIs(kindDemo), func(c pava.Condition) pava.Outcome {
			outerRan = true
			return pava.Handled(nil)
		}),
	}, func() any {
		return s.Handling([]pava.HandlerPair{
			pava.On(pava.KindIs(kindDemo), func(c pava.Condition) pava.Outcome {
				innerRan = true
				return pava.Outcome{} // returned "normally without Handled"
			}),
		}, func() any {
			s.Signal(pava.New(kindDemo, nil))
			return nil
		})
	})
	if !innerRan || !outerRan {
		t.Fatalf("innerRan=%v outerRan=%v, want both true: zero-value Outcome must count as decline", innerRan, outerRan)
	}
}
