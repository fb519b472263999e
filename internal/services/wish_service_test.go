package services

import (
	"context"
	"testing"

	"github.com/Dias221467/tagwish/internal/hub"
	"github.com/Dias221467/tagwish/internal/models"
	"github.com/Dias221467/tagwish/internal/repository"
	"github.com/Dias221467/tagwish/internal/verification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWishUsesCurrentUser(t *testing.T) {
	store := newStore(t)
	svc := NewWishService(store, &stubVerifier{}, &recorder{})

	wish, err := svc.CreateWish(context.Background(), models.WishFields{
		ItemName:       "Royce Nama Chocolate",
		EstimatedPrice: 20,
		Reward:         5,
		Location:       "Sapporo",
		Image:          "data:image/png;base64,AAAA",
	})

	require.NoError(t, err)
	assert.Equal(t, "alex_01", wish.BuyerID)
	assert.Equal(t, models.StatusPending, wish.Status)
	assert.InDelta(t, 2425.50, store.CurrentUser().Balance, 1e-9)

	mine := svc.ListWishes(context.Background(), repository.ViewMine, "")
	require.Len(t, mine, 1)
	assert.Equal(t, wish.ID, mine[0].ID)
}

func TestListWishes(t *testing.T) {
	svc := NewWishService(newStore(t), &stubVerifier{}, &recorder{})
	ctx := context.Background()

	assert.Len(t, svc.ListWishes(ctx, repository.ViewExplore, ""), 4)
	assert.Len(t, svc.ListWishes(ctx, repository.ViewExplore, "   "), 4)
	assert.Empty(t, svc.ListWishes(ctx, repository.ViewMine, ""))

	paris := svc.ListWishes(ctx, repository.ViewExplore, " PARIS ")
	require.Len(t, paris, 1)
	assert.Equal(t, "2", paris[0].ID)
}

func TestClaimWishPublishesStatus(t *testing.T) {
	store := newStore(t)
	events := &recorder{}
	svc := NewWishService(store, &stubVerifier{}, events)

	wish, err := svc.ClaimWish(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, models.StatusMatched, wish.Status)
	assert.Equal(t, "alex_01", wish.TravelerID)
	assert.Equal(t, "u1", wish.BuyerID)

	got := events.all()
	require.Len(t, got, 1)
	assert.Equal(t, hub.EventStatus, got[0].Type)
	assert.Equal(t, "1", got[0].WishID)
	assert.Equal(t, StatusPayload{Status: models.StatusMatched, TravelerID: "alex_01"}, got[0].Payload)
}

func TestClaimWishErrors(t *testing.T) {
	svc := NewWishService(newStore(t), &stubVerifier{}, &recorder{})
	ctx := context.Background()

	_, err := svc.ClaimWish(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrWishNotFound)

	_, err = svc.ClaimWish(ctx, "2")
	require.NoError(t, err)
	_, err = svc.ClaimWish(ctx, "2")
	assert.ErrorIs(t, err, repository.ErrInvalidTransition)
}

func TestSubmitProofAuthenticMovesToVerifying(t *testing.T) {
	store := newStore(t)
	events := &recorder{}
	verifier := &stubVerifier{result: models.VerificationResult{MatchScore: 92, Reasoning: "Matches", IsAuthentic: true}}
	svc := NewWishService(store, verifier, events)
	ctx := context.Background()

	_, err := svc.ClaimWish(ctx, "2")
	require.NoError(t, err)

	result, err := svc.SubmitProof(ctx, "2", []byte("photo"))

	require.NoError(t, err)
	assert.True(t, result.IsAuthentic)
	assert.Equal(t, "Authentic Navy Blue tote. Must include store receipt from Paris flagship.", verifier.gotDesc)

	wish, err := store.Wish("2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerifying, wish.Status)

	got := events.all()
	require.Len(t, got, 2)
	assert.Equal(t, StatusPayload{Status: models.StatusVerifying, TravelerID: "alex_01"}, got[1].Payload)
}

func TestSubmitProofNotAuthenticKeepsMatched(t *testing.T) {
	store := newStore(t)
	verifier := &stubVerifier{result: models.VerificationResult{MatchScore: 30, Reasoning: "Wrong colour"}}
	svc := NewWishService(store, verifier, &recorder{})
	ctx := context.Background()
	_, err := svc.ClaimWish(ctx, "3")
	require.NoError(t, err)

	result, err := svc.SubmitProof(ctx, "3", []byte("photo"))

	require.NoError(t, err)
	assert.False(t, result.IsAuthentic)
	wish, _ := store.Wish("3")
	assert.Equal(t, models.StatusMatched, wish.Status)
}

func TestSubmitProofWithFailingServiceDegrades(t *testing.T) {
	store := newStore(t)
	svc := NewWishService(store, verification.NewGuard(verification.Unavailable{}, 0), &recorder{})
	ctx := context.Background()
	_, err := svc.ClaimWish(ctx, "4")
	require.NoError(t, err)

	result, err := svc.SubmitProof(ctx, "4", []byte("photo"))

	require.NoError(t, err)
	assert.Equal(t, models.VerificationResult{Reasoning: verification.CouldNotVerify}, result)
	wish, _ := store.Wish("4")
	assert.Equal(t, models.StatusMatched, wish.Status)
}

func TestSubmitProofRequiresMatchedWish(t *testing.T) {
	verifier := &stubVerifier{result: models.VerificationResult{IsAuthentic: true}}
	svc := NewWishService(newStore(t), verifier, &recorder{})

	_, err := svc.SubmitProof(context.Background(), "1", []byte("photo"))
	assert.ErrorIs(t, err, repository.ErrInvalidTransition)

	_, err = svc.SubmitProof(context.Background(), "missing", []byte("photo"))
	assert.ErrorIs(t, err, repository.ErrWishNotFound)

	assert.Zero(t, verifier.verifyCalls)
}

func TestAnalyzeImageSuggestsReward(t *testing.T) {
	verifier := &stubVerifier{analysis: &models.ImageAnalysis{ItemName: "Goyard", EstimatedPrice: 1950}}
	svc := NewWishService(newStore(t), verifier, &recorder{})

	draft := svc.AnalyzeImage(context.Background(), []byte("img"))

	require.NotNil(t, draft)
	assert.Equal(t, "Goyard", draft.Analysis.ItemName)
	assert.Equal(t, 293.0, draft.SuggestedReward)

	svc = NewWishService(newStore(t), &stubVerifier{}, &recorder{})
	assert.Nil(t, svc.AnalyzeImage(context.Background(), []byte("img")))
}

func TestSuggestedReward(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		28:   5,
		40:   6,
		100:  15,
		1950: 293,
	}
	for price, want := range cases {
		assert.Equal(t, want, SuggestedReward(price), "price %v", price)
	}
}

func TestPriceGuidanceOnlyWithNameAndReward(t *testing.T) {
	verifier := &stubVerifier{advice: "Generous."}
	svc := NewWishService(newStore(t), verifier, &recorder{})
	ctx := context.Background()

	assert.Equal(t, "", svc.PriceGuidance(ctx, "", 10))
	assert.Equal(t, "", svc.PriceGuidance(ctx, "  ", 10))
	assert.Equal(t, "", svc.PriceGuidance(ctx, "Matcha", 0))
	assert.Equal(t, "", svc.PriceGuidance(ctx, "Matcha", -2))
	assert.Zero(t, verifier.guidanceCalls)

	assert.Equal(t, "Generous.", svc.PriceGuidance(ctx, "Matcha", 10))
	assert.Equal(t, 1, verifier.guidanceCalls)
}
