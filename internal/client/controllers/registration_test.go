package controllers

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/nav"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSignUpAuth() *fakeAuth {
	return &fakeAuth{signUp: func(email, _ string) (*provider.Session, error) {
		return &provider.Session{AccountID: "acct-42", Email: email, AccessToken: "tok"}, nil
	}}
}

func TestRegister_EmptyFieldMakesNoCalls(t *testing.T) {
	tests := []struct {
		name                      string
		fullName, email, password string
	}{
		{"no name", "", "ada@example.com", "secret1"},
		{"blank name", "   ", "ada@example.com", "secret1"},
		{"no email", "Ada", "", "secret1"},
		{"blank email", "Ada", " \t", "secret1"},
		{"no password", "Ada", "ada@example.com", ""},
		{"nothing", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := newSignUpAuth()
			docs := &fakeDocs{}
			navigator := newRecordingNav()
			alerts := &recordingAlerter{}
			c := NewRegistrationController(auth, docs, navigator, alerts, zap.NewNop())

			err := c.Register(context.Background(), tt.fullName, tt.email, tt.password)

			assert.ErrorIs(t, err, ErrFieldsRequired)
			assert.Equal(t, 0, auth.signUpCalls)
			assert.Empty(t, docs.writes)
			assert.Empty(t, navigator.navigations())
			assert.Equal(t, []alert{{title: "All fields are required"}}, alerts.alerts)
		})
	}
}

func TestRegister_Success(t *testing.T) {
	auth := newSignUpAuth()
	docs := &fakeDocs{}
	navigator := newRecordingNav()
	navigator.Push(nav.Register, nil)
	alerts := &recordingAlerter{}
	c := NewRegistrationController(auth, docs, navigator, alerts, zap.NewNop())

	err := c.Register(context.Background(), "Ada Lovelace", "ada@example.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "Created: ada@example.com", c.Status())
	assert.Equal(t, []docWrite{{
		collection: "users",
		key:        "acct-42",
		fields:     map[string]interface{}{"fullName": "Ada Lovelace", "email": "ada@example.com"},
	}}, docs.writes)
	assert.Equal(t, navCall{op: "reset", route: nav.Login}, navigator.navigations()[1])
	assert.Equal(t, []nav.Route{nav.Login}, navigator.stack.Routes())
	assert.Empty(t, alerts.alerts)
}

func TestRegister_SignUpFailureSkipsProfile(t *testing.T) {
	auth := &fakeAuth{signUp: func(string, string) (*provider.Session, error) {
		return nil, &provider.Error{Code: "auth/email-already-in-use", Message: "the email address is already in use by another account"}
	}}
	docs := &fakeDocs{}
	navigator := newRecordingNav()
	alerts := &recordingAlerter{}
	c := NewRegistrationController(auth, docs, navigator, alerts, zap.NewNop())

	err := c.Register(context.Background(), "Ada", "ada@example.com", "secret1")

	assert.Error(t, err)
	assert.Equal(t, "Create unsuccessful", c.Status())
	assert.Empty(t, docs.writes)
	assert.Empty(t, navigator.navigations())
	assert.Equal(t, []alert{{title: "Registration Error", message: "the email address is already in use by another account"}}, alerts.alerts)
}

func TestRegister_ProfileFailureStillReturnsToLogin(t *testing.T) {
	auth := newSignUpAuth()
	docs := &fakeDocs{err: errors.New("connection reset")}
	navigator := newRecordingNav()
	alerts := &recordingAlerter{}
	c := NewRegistrationController(auth, docs, navigator, alerts, zap.NewNop())

	err := c.Register(context.Background(), "Ada", "ada@example.com", "secret1")

	assert.ErrorIs(t, err, ErrProfileNotSaved)
	assert.Equal(t, "Created: ada@example.com (profile not saved)", c.Status())
	require.Len(t, alerts.alerts, 1)
	assert.Equal(t, "Profile Warning", alerts.alerts[0].title)
	assert.Contains(t, alerts.alerts[0].message, "connection reset")
	assert.Equal(t, []navCall{{op: "reset", route: nav.Login}}, navigator.navigations())
}
