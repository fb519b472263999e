// Package verification wraps the generative-AI collaborator that analyzes reference
// photos, checks proof photos against a wish description and advises on rewards.
package verification

import (
	"context"
	"strings"
	"time"

	"github.com/Dias221467/tagwish/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	// CouldNotVerify is the reasoning reported when the authenticity check fails.
	CouldNotVerify = "Could not verify."
	// DefaultGuidance is the advice returned when price guidance fails.
	DefaultGuidance = "Reward looks standard."
)

// Service is the capability the rest of the app consumes. Implementations never
// surface collaborator failures: they degrade to a default value instead.
type Service interface {
	// AnalyzeImage returns auto-fill fields for a reference photo, or nil when none are available.
	AnalyzeImage(ctx context.Context, image []byte) *models.ImageAnalysis
	// VerifyAuthenticity always returns a well-formed result.
	VerifyAuthenticity(ctx context.Context, description string, photo []byte) models.VerificationResult
	// PriceGuidance returns one line of advice about a reward.
	PriceGuidance(ctx context.Context, itemName string, reward float64) string
}

// Backend is a raw collaborator that reports its failures.
type Backend interface {
	AnalyzeImage(ctx context.Context, image []byte) (*models.ImageAnalysis, error)
	VerifyAuthenticity(ctx context.Context, description string, photo []byte) (*models.VerificationResult, error)
	PriceGuidance(ctx context.Context, itemName string, reward float64) (string, error)
}

// Guard turns a Backend into a Service by absorbing its errors.
type Guard struct {
	backend Backend
	timeout time.Duration
}

var _ Service = (*Guard)(nil)

// NewGuard wraps backend. A positive timeout bounds each call.
func NewGuard(backend Backend, timeout time.Duration) *Guard {
	return &Guard{backend: backend, timeout: timeout}
}

func (g *Guard) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout > 0 {
		return context.WithTimeout(ctx, g.timeout)
	}
	return context.WithCancel(ctx)
}

// AnalyzeImage returns nil on any failure, including an analysis without an item name.
func (g *Guard) AnalyzeImage(ctx context.Context, image []byte) *models.ImageAnalysis {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	analysis, err := g.backend.AnalyzeImage(ctx, image)
	if err != nil {
		logrus.WithError(err).Warn("Image analysis failed")
		return nil
	}
	if analysis == nil || strings.TrimSpace(analysis.ItemName) == "" {
		logrus.Warn("Image analysis returned no item name")
		return nil
	}
	if analysis.EstimatedPrice < 0 {
		analysis.EstimatedPrice = 0
	}
	return analysis
}

// VerifyAuthenticity degrades to a zero-score, not-authentic result on failure.
func (g *Guard) VerifyAuthenticity(ctx context.Context, description string, photo []byte) models.VerificationResult {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	result, err := g.backend.VerifyAuthenticity(ctx, description, photo)
	if err != nil || result == nil {
		logrus.WithError(err).Warn("Authenticity verification failed")
		return models.VerificationResult{MatchScore: 0, Reasoning: CouldNotVerify, IsAuthentic: false}
	}

	out := *result
	switch {
	case out.MatchScore < 0:
		out.MatchScore = 0
	case out.MatchScore > 100:
		out.MatchScore = 100
	}
	return out
}

// PriceGuidance degrades to DefaultGuidance on failure or an empty answer.
func (g *Guard) PriceGuidance(ctx context.Context, itemName string, reward float64) string {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	advice, err := g.backend.PriceGuidance(ctx, itemName, reward)
	if err != nil {
		logrus.WithError(err).Warn("Price guidance failed")
		return DefaultGuidance
	}
	advice = strings.TrimSpace(advice)
	if advice == "" {
		return DefaultGuidance
	}
	return advice
}
