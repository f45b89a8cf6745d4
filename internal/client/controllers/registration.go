package controllers

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/nav"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/provider"
	"go.uber.org/zap"
)

const (
	// ProfileCollection is where the registration profile document is written.
	ProfileCollection = "users"

	FieldsRequiredMessage = "All fields are required"
)

// RegistrationController drives the sign-up screen.
type RegistrationController struct {
	auth   provider.AuthProvider
	docs   provider.DocumentStore
	nav    Navigator
	alerts Alerter
	logger *zap.Logger

	gate   busyGate
	status statusLine
}

func NewRegistrationController(auth provider.AuthProvider, docs provider.DocumentStore, navigator Navigator, alerts Alerter, logger *zap.Logger) *RegistrationController {
	return &RegistrationController{auth: auth, docs: docs, nav: navigator, alerts: alerts, logger: logger}
}

// Register creates the account, writes its {fullName, email} profile and
// returns to the login screen. The profile write happens only after the
// account exists. If that write fails the account is kept, a warning is
// shown, and the returned error wraps ErrProfileNotSaved.
func (c *RegistrationController) Register(ctx context.Context, fullName, email, password string) error {
	if strings.TrimSpace(fullName) == "" || strings.TrimSpace(email) == "" || password == "" {
		c.alerts.Alert(FieldsRequiredMessage, "")
		return ErrFieldsRequired
	}

	if !c.gate.enter() {
		return ErrBusy
	}
	defer c.gate.leave()

	sess, err := c.auth.SignUp(ctx, email, password)
	if err != nil {
		c.logger.Warn("sign up failed", zap.String("email", email), zap.Error(err))
		c.status.set("Create unsuccessful")
		c.alerts.Alert("Registration Error", provider.Message(err))
		return err
	}
	c.status.set("Created: " + sess.Email)
	c.logger.Info("account created", zap.String("account_id", sess.AccountID))

	profile := map[string]interface{}{
		"fullName": fullName,
		"email":    email,
	}
	if err := c.docs.SetDocument(ctx, sess, ProfileCollection, sess.AccountID, profile); err != nil {
		c.logger.Error("profile write failed", zap.String("account_id", sess.AccountID), zap.Error(err))
		c.status.set("Created: " + sess.Email + " (profile not saved)")
		c.alerts.Alert("Profile Warning", "Your account was created but your profile could not be saved: "+provider.Message(err))
		c.nav.Reset(nav.Login)
		return fmt.Errorf("%w: %v", ErrProfileNotSaved, err)
	}

	c.nav.Reset(nav.Login)
	return nil
}

func (c *RegistrationController) Status() string { return c.status.get() }

func (c *RegistrationController) Busy() bool { return c.gate.busy.Load() }
