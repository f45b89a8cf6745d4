package controllers

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/nav"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/provider"
	"go.uber.org/zap"
)

// ProfileController drives the profile screen's sign-out button.
type ProfileController struct {
	auth   provider.AuthProvider
	nav    Navigator
	alerts Alerter
	logger *zap.Logger

	gate   busyGate
	status statusLine
}

func NewProfileController(auth provider.AuthProvider, navigator Navigator, alerts Alerter, logger *zap.Logger) *ProfileController {
	return &ProfileController{auth: auth, nav: navigator, alerts: alerts, logger: logger}
}

// SignOut ends sess and resets the stack to login so the profile screen
// cannot be reached with back.
func (c *ProfileController) SignOut(ctx context.Context, sess *provider.Session) error {
	if !c.gate.enter() {
		return ErrBusy
	}
	defer c.gate.leave()

	if err := c.auth.SignOut(ctx, sess); err != nil {
		c.logger.Warn("sign out failed", zap.Error(err))
		c.status.set("Signout unsuccessful")
		c.alerts.Alert("Logout Failed", provider.Message(err))
		return err
	}

	email := ""
	if sess != nil {
		email = sess.Email
	}
	c.status.set("Signout successful for: " + email)
	c.nav.Reset(nav.Login)
	return nil
}

func (c *ProfileController) Status() string { return c.status.get() }

func (c *ProfileController) Busy() bool { return c.gate.busy.Load() }
