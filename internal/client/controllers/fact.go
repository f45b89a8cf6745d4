package controllers

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/nav"
	"github.com/ahmetcoskunkizilkaya/trekpoint/internal/client/provider"
	"go.uber.org/zap"
)

// FactParam is the navigation parameter carrying the fact text.
const FactParam = "fact"

// NoFactText is shown on the fact screen when it was opened without a fact.
const NoFactText = "No fun fact available."

// FactController fetches a fun fact from the home screen and opens the fact
// screen with it. Failures are never shown to the user.
type FactController struct {
	facts  provider.FactSource
	nav    Navigator
	logger *zap.Logger

	gate busyGate
}

func NewFactController(facts provider.FactSource, navigator Navigator, logger *zap.Logger) *FactController {
	return &FactController{facts: facts, nav: navigator, logger: logger}
}

// FetchFact makes one request and collapses every failure into "no fact".
func (c *FactController) FetchFact(ctx context.Context, sess *provider.Session) (string, bool) {
	text, err := c.facts.FetchFact(ctx, sess)
	if err != nil {
		c.logger.Error("Failed to retrieve fun fact.", zap.Error(err))
		return "", false
	}
	if text == "" {
		c.logger.Info("Failed to retrieve fun fact.", zap.String("reason", "empty response"))
		return "", false
	}
	return text, true
}

// GetFunFact shows the busy indicator while the request is outstanding and
// navigates to the fact screen when a fact arrived. It reports whether it
// navigated. A call made while busy does nothing.
func (c *FactController) GetFunFact(ctx context.Context, sess *provider.Session) bool {
	if !c.gate.enter() {
		c.logger.Debug("fun fact request ignored while busy")
		return false
	}
	defer c.gate.leave()

	text, ok := c.FetchFact(ctx, sess)
	if !ok {
		return false
	}
	c.nav.Push(nav.FunFact, map[string]string{FactParam: text})
	return true
}

// OnBusyChange registers fn to be told when the busy indicator turns on
// and off.
func (c *FactController) OnBusyChange(fn func(busy bool)) { c.gate.setOnChange(fn) }

func (c *FactController) Busy() bool { return c.gate.busy.Load() }

// FunFactText is what the fact screen displays for entry.
func FunFactText(entry nav.Entry) string {
	if text, ok := entry.Param(FactParam); ok && text != "" {
		return text
	}
	return NoFactText
}
