package controllers

import (
	"context"
	"sync"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/nav"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/provider"
)

type alert struct {
	title   string
	message string
}

type recordingAlerter struct {
	alerts []alert
}

func (r *recordingAlerter) Alert(title, message string) {
	r.alerts = append(r.alerts, alert{title: title, message: message})
}

type fakeAuth struct {
	mu sync.Mutex

	signIn  func(email, password string) (*provider.Session, error)
	signUp  func(email, password string) (*provider.Session, error)
	signOut func(sess *provider.Session) error
	// block, when set, is waited on inside every call.
	block chan struct{}

	signInCalls  int
	signUpCalls  int
	signOutCalls int
}

func (f *fakeAuth) wait(ctx context.Context) {
	if f.block == nil {
		return
	}
	select {
	case <-f.block:
	case <-ctx.Done():
	}
}

func (f *fakeAuth) SignIn(ctx context.Context, email, password string) (*provider.Session, error) {
	f.mu.Lock()
	f.signInCalls++
	f.mu.Unlock()
	f.wait(ctx)
	return f.signIn(email, password)
}

func (f *fakeAuth) SignUp(ctx context.Context, email, password string) (*provider.Session, error) {
	f.mu.Lock()
	f.signUpCalls++
	f.mu.Unlock()
	f.wait(ctx)
	return f.signUp(email, password)
}

func (f *fakeAuth) SignOut(ctx context.Context, sess *provider.Session) error {
	f.mu.Lock()
	f.signOutCalls++
	f.mu.Unlock()
	f.wait(ctx)
	return f.signOut(sess)
}

type docWrite struct {
	collection string
	key        string
	fields     map[string]interface{}
}

type fakeDocs struct {
	err    error
	writes []docWrite
}

func (f *fakeDocs) SetDocument(_ context.Context, _ *provider.Session, collection, key string, fields map[string]interface{}) error {
	f.writes = append(f.writes, docWrite{collection: collection, key: key, fields: fields})
	return f.err
}

type fakeFacts struct {
	mu    sync.Mutex
	text  string
	err   error
	block chan struct{}
	calls int
}

func (f *fakeFacts) FetchFact(ctx context.Context, _ *provider.Session) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.text, f.err
}

func (f *fakeFacts) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// navCall records one navigation made through a controller.
type navCall struct {
	op     string
	route  nav.Route
	params map[string]string
}

type recordingNav struct {
	mu    sync.Mutex
	calls []navCall
	stack *nav.Stack
}

func newRecordingNav() *recordingNav {
	return &recordingNav{stack: nav.NewStack()}
}

func (r *recordingNav) Push(route nav.Route, params map[string]string) {
	r.mu.Lock()
	r.calls = append(r.calls, navCall{op: "push", route: route, params: params})
	r.mu.Unlock()
	r.stack.Push(route, params)
}

func (r *recordingNav) Reset(route nav.Route) {
	r.mu.Lock()
	r.calls = append(r.calls, navCall{op: "reset", route: route})
	r.mu.Unlock()
	r.stack.Reset(route)
}

func (r *recordingNav) navigations() []navCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]navCall(nil), r.calls...)
}
