package controllers

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/nav"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/provider"
	"go.uber.org/zap"
)

// SessionController drives the login screen.
type SessionController struct {
	auth   provider.AuthProvider
	nav    Navigator
	alerts Alerter
	logger *zap.Logger

	gate   busyGate
	status statusLine
}

func NewSessionController(auth provider.AuthProvider, navigator Navigator, alerts Alerter, logger *zap.Logger) *SessionController {
	return &SessionController{auth: auth, nav: navigator, alerts: alerts, logger: logger}
}

// SignIn submits the credentials as entered. Validation is left to the
// provider. On success the home screen is pushed once.
func (c *SessionController) SignIn(ctx context.Context, email, password string) (*provider.Session, error) {
	if !c.gate.enter() {
		return nil, ErrBusy
	}
	defer c.gate.leave()

	sess, err := c.auth.SignIn(ctx, email, password)
	if err != nil {
		c.logger.Warn("sign in failed", zap.String("email", email), zap.Error(err))
		c.status.set("Login failed")
		c.alerts.Alert("Login Error", provider.Message(err))
		return nil, err
	}

	c.logger.Info("signed in", zap.String("account_id", sess.AccountID))
	c.status.set("Login success: " + sess.Email)
	c.nav.Push(nav.Home, nil)
	return sess, nil
}

func (c *SessionController) Status() string { return c.status.get() }

func (c *SessionController) Busy() bool { return c.gate.busy.Load() }
