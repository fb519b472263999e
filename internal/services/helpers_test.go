package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Dias221467/tagwish/internal/hub"
	"github.com/Dias221467/tagwish/internal/models"
	"github.com/Dias221467/tagwish/internal/repository"
)

type stubVerifier struct {
	analysis *models.ImageAnalysis
	result   models.VerificationResult
	advice   string

	verifyCalls   int
	guidanceCalls int
	gotDesc       string
}

func (v *stubVerifier) AnalyzeImage(context.Context, []byte) *models.ImageAnalysis {
	return v.analysis
}

func (v *stubVerifier) VerifyAuthenticity(_ context.Context, description string, _ []byte) models.VerificationResult {
	v.verifyCalls++
	v.gotDesc = description
	return v.result
}

func (v *stubVerifier) PriceGuidance(context.Context, string, float64) string {
	v.guidanceCalls++
	return v.advice
}

type recorder struct {
	mu     sync.Mutex
	events []hub.Event
}

func (r *recorder) Publish(wishID string, event hub.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.WishID = wishID
	r.events = append(r.events, event)
}

func (r *recorder) all() []hub.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]hub.Event(nil), r.events...)
}

func newStore(t *testing.T) *repository.WishStore {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return repository.NewWishStore(repository.SeedWishes(now), repository.SeedUser(),
		repository.WithClock(func() time.Time { return now }))
}
