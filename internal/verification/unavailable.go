package verification

import (
	"context"

	"github.com/Dias221467/tagwish/internal/models"
	"github.com/pkg/errors"
)

// ErrUnavailable is returned by the Unavailable backend for every call.
var ErrUnavailable = errors.New("verification backend not configured")

// Unavailable is the backend used when no AI credentials are configured.
type Unavailable struct{}

var _ Backend = Unavailable{}

func (Unavailable) AnalyzeImage(context.Context, []byte) (*models.ImageAnalysis, error) {
	return nil, ErrUnavailable
}

func (Unavailable) VerifyAuthenticity(context.Context, string, []byte) (*models.VerificationResult, error) {
	return nil, ErrUnavailable
}

func (Unavailable) PriceGuidance(context.Context, string, float64) (string, error) {
	return "", ErrUnavailable
}
