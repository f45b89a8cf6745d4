// Package nav is the shell's screen stack.
package nav

import "sync"

type Route string

const (
	Login    Route = "/"
	Register Route = "/register"
	Home     Route = "/home"
	Profile  Route = "/profile"
	FunFact  Route = "/funfact"
	Results  Route = "/results"
)

// Entry is one screen on the stack with the parameters it was opened with.
type Entry struct {
	Route  Route
	Params map[string]string
}

// Param returns the named parameter and whether it was set.
func (e Entry) Param(name string) (string, bool) {
	v, ok := e.Params[name]
	return v, ok
}

// Stack always holds at least one entry. It is safe for concurrent use.
type Stack struct {
	mu      sync.Mutex
	entries []Entry
}

// NewStack returns a stack positioned at the login screen.
func NewStack() *Stack {
	return &Stack{entries: []Entry{{Route: Login}}}
}

func (s *Stack) Push(route Route, params map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, Entry{Route: route, Params: copyParams(params)})
}

// Reset replaces the whole stack with route, so Back cannot return to any
// screen that was open before.
func (s *Stack) Reset(route Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = []Entry{{Route: route}}
}

// Back pops the current screen. It reports false at the root.
func (s *Stack) Back() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) <= 1 {
		return false
	}
	s.entries = s.entries[:len(s.entries)-1]
	return true
}

func (s *Stack) Current() Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[len(s.entries)-1]
}

// Routes lists the stack from root to top.
func (s *Stack) Routes() []Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Route, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Route
	}
	return out
}

func copyParams(params map[string]string) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}
