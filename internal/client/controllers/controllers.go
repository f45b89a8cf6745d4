// Package controllers holds one controller per shell screen. Each controller
// makes at most one outbound call per user action and reports the outcome
// through a status line, an alert, or a navigation.
package controllers

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/nav"
)

var (
	// ErrBusy is returned when an action is submitted while the previous one
	// on the same controller is still outstanding.
	ErrBusy           = errors.New("a request is already in progress")
	ErrFieldsRequired = errors.New("all fields are required")
	// ErrProfileNotSaved means the account was created but the profile
	// document write failed.
	ErrProfileNotSaved = errors.New("account created but profile was not saved")
)

// Navigator is satisfied by *nav.Stack.
type Navigator interface {
	Push(route nav.Route, params map[string]string)
	Reset(route nav.Route)
}

// Alerter shows a blocking titled message.
type Alerter interface {
	Alert(title, message string)
}

// busyGate admits one action at a time.
type busyGate struct {
	busy atomic.Bool

	mu       sync.Mutex
	onChange func(bool)
}

func (g *busyGate) enter() bool {
	if !g.busy.CompareAndSwap(false, true) {
		return false
	}
	g.notify(true)
	return true
}

func (g *busyGate) leave() {
	g.busy.Store(false)
	g.notify(false)
}

func (g *busyGate) notify(busy bool) {
	g.mu.Lock()
	fn := g.onChange
	g.mu.Unlock()
	if fn != nil {
		fn(busy)
	}
}

func (g *busyGate) setOnChange(fn func(bool)) {
	g.mu.Lock()
	g.onChange = fn
	g.mu.Unlock()
}

// statusLine is the one-line outcome text a screen shows under its form.
type statusLine struct {
	mu   sync.RWMutex
	text string
}

func (s *statusLine) set(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

func (s *statusLine) get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}
