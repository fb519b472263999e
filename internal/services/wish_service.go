package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Dias221467/tagwish/internal/hub"
	"github.com/Dias221467/tagwish/internal/models"
	"github.com/Dias221467/tagwish/internal/repository"
	"github.com/Dias221467/tagwish/internal/verification"
	"github.com/sirupsen/logrus"
)

// SuggestedRewardRate is the share of the estimated price proposed as the traveler reward.
const SuggestedRewardRate = 0.15

// StatusPayload is the payload of a status event.
type StatusPayload struct {
	Status     models.WishStatus `json:"status"`
	TravelerID string            `json:"travelerId,omitempty"`
}

// Draft is the auto-fill proposal for a new wish built from a reference photo.
type Draft struct {
	Analysis        models.ImageAnalysis `json:"analysis"`
	SuggestedReward float64              `json:"suggestedReward"`
}

// WishService drives the wish lifecycle for the current user.
type WishService struct {
	store    *repository.WishStore
	verifier verification.Service
	events   hub.Publisher
}

func NewWishService(store *repository.WishStore, verifier verification.Service, events hub.Publisher) *WishService {
	return &WishService{
		store:    store,
		verifier: verifier,
		events:   events,
	}
}

// CreateWish posts a wish on behalf of the current user and debits their balance.
func (s *WishService) CreateWish(ctx context.Context, fields models.WishFields) (models.Wish, error) {
	buyer := s.store.CurrentUser()
	wish := s.store.CreateWish(fields, buyer.ID)

	logrus.WithFields(logrus.Fields{
		"wishID":  wish.ID,
		"buyerID": buyer.ID,
		"debit":   fields.EstimatedPrice + fields.Reward,
	}).Info("Wish created")
	return wish, nil
}

// GetWish returns a single wish.
func (s *WishService) GetWish(ctx context.Context, id string) (models.Wish, error) {
	return s.store.Wish(id)
}

// ListWishes returns the wishes of a view narrowed by a search query.
func (s *WishService) ListWishes(ctx context.Context, view repository.View, query string) []models.Wish {
	user := s.store.CurrentUser()
	pred := repository.ForView(view, user.ID)
	if query = strings.TrimSpace(query); query != "" {
		pred = repository.And(pred, repository.MatchesQuery(query))
	}
	return repository.Collect(s.store.Filter(pred))
}

// ClaimWish assigns the current user as the wish's traveler.
func (s *WishService) ClaimWish(ctx context.Context, wishID string) (models.Wish, error) {
	traveler := s.store.CurrentUser()
	if err := s.store.ClaimWish(wishID, traveler.ID); err != nil {
		logrus.WithError(err).WithField("wishID", wishID).Warn("Claim rejected")
		return models.Wish{}, err
	}

	wish, err := s.store.Wish(wishID)
	if err != nil {
		return models.Wish{}, err
	}
	s.publishStatus(wish)

	logrus.WithFields(logrus.Fields{
		"wishID":     wishID,
		"travelerID": traveler.ID,
	}).Info("Wish claimed")
	return wish, nil
}

// SubmitProof checks a traveler's proof photo against the wish description. An
// authentic result moves the wish to Verifying. Only Matched wishes accept proof.
func (s *WishService) SubmitProof(ctx context.Context, wishID string, photo []byte) (models.VerificationResult, error) {
	wish, err := s.store.Wish(wishID)
	if err != nil {
		return models.VerificationResult{}, err
	}
	if wish.Status != models.StatusMatched {
		return models.VerificationResult{}, fmt.Errorf("submit proof for wish %s in status %s: %w",
			wishID, wish.Status, repository.ErrInvalidTransition)
	}

	result := s.verifier.VerifyAuthenticity(ctx, wish.Description, photo)

	logrus.WithFields(logrus.Fields{
		"wishID":      wishID,
		"matchScore":  result.MatchScore,
		"isAuthentic": result.IsAuthentic,
	}).Info("Proof photo checked")

	if !result.IsAuthentic {
		return result, nil
	}
	if err := s.store.MarkVerifying(wishID); err != nil {
		// the wish changed state while the check was running
		return result, err
	}
	if updated, err := s.store.Wish(wishID); err == nil {
		s.publishStatus(updated)
	}
	return result, nil
}

// AnalyzeImage builds an auto-fill draft from a reference photo, or returns nil when
// the verification service has nothing to offer.
func (s *WishService) AnalyzeImage(ctx context.Context, image []byte) *Draft {
	analysis := s.verifier.AnalyzeImage(ctx, image)
	if analysis == nil {
		return nil
	}
	return &Draft{
		Analysis:        *analysis,
		SuggestedReward: SuggestedReward(analysis.EstimatedPrice),
	}
}

// PriceGuidance returns advice on a reward. It is only requested once an item
// name is known and the reward is positive; otherwise it returns "".
func (s *WishService) PriceGuidance(ctx context.Context, itemName string, reward float64) string {
	if strings.TrimSpace(itemName) == "" || reward <= 0 {
		return ""
	}
	return s.verifier.PriceGuidance(ctx, itemName, reward)
}

// SuggestedReward rounds 15% of the estimated price up to a whole amount.
func SuggestedReward(estimatedPrice float64) float64 {
	return math.Ceil(estimatedPrice * SuggestedRewardRate)
}

func (s *WishService) publishStatus(wish models.Wish) {
	s.events.Publish(wish.ID, hub.Event{
		Type:    hub.EventStatus,
		Payload: StatusPayload{Status: wish.Status, TravelerID: wish.TravelerID},
	})
}
