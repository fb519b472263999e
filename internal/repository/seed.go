package repository

import (
	"time"

	"github.com/Dias221467/tagwish/internal/models"
)

// SeedUser returns the simulated acting user the app starts with.
func SeedUser() models.User {
	return models.User{
		ID:      "alex_01",
		Name:    "Alex Chen",
		Avatar:  "https://api.dicebear.com/7.x/avataaars/svg?seed=Alex",
		Balance: 2450.50,
		Role:    models.RoleBuyer,
	}
}

// SeedWishes returns the mock marketplace the app starts with, stamped at now.
func SeedWishes(now time.Time) []models.Wish {
	return []models.Wish{
		{
			ID:             "1",
			ItemName:       "Blue Bottle Coffee - Spring Blend",
			Description:    "Limited edition whole beans from Shinjuku. White bag with pink accents.",
			EstimatedPrice: 28,
			Reward:         12,
			Location:       "Shinjuku, Tokyo",
			Image:          "https://images.unsplash.com/photo-1559056199-641a0ac8b55e?auto=format&fit=crop&q=80&w=800",
			Status:         models.StatusPending,
			BuyerID:        "u1",
			CreatedAt:      now,
			Tag:            "TOKYO",
			Chat:           []models.ChatMessage{},
		},
		{
			ID:             "2",
			ItemName:       "Goyard Saint Louis GM Navy",
			Description:    "Authentic Navy Blue tote. Must include store receipt from Paris flagship.",
			EstimatedPrice: 1950,
			Reward:         180,
			Location:       "Paris, France",
			Image:          "https://images.unsplash.com/photo-1584917865442-de89df76afd3?auto=format&fit=crop&q=80&w=800",
			Status:         models.StatusPending,
			BuyerID:        "u2",
			CreatedAt:      now,
			Tag:            "PARIS",
			Chat:           []models.ChatMessage{},
		},
		{
			ID:             "3",
			ItemName:       "Nintendo NY Exclusive Switch Case",
			Description:    "Skyline design case only available at Rockefeller Center Nintendo Store.",
			EstimatedPrice: 35,
			Reward:         15,
			Location:       "Rockefeller Center, NYC",
			Image:          "https://images.unsplash.com/photo-1592155931584-901ac15763e3?auto=format&fit=crop&q=80&w=800",
			Status:         models.StatusPending,
			BuyerID:        "u3",
			CreatedAt:      now,
			Tag:            "NYC",
			Chat:           []models.ChatMessage{},
		},
		{
			ID:             "4",
			ItemName:       "Aesop Resurrection Hand Wash",
			Description:    "500ml pump bottle. Looking for the Australian market version.",
			EstimatedPrice: 40,
			Reward:         10,
			Location:       "Melbourne, Australia",
			Image:          "https://images.unsplash.com/photo-1620916566398-39f1143ab7be?auto=format&fit=crop&q=80&w=800",
			Status:         models.StatusPending,
			BuyerID:        "u4",
			CreatedAt:      now,
			Tag:            "MELBOURNE",
			Chat:           []models.ChatMessage{},
		},
	}
}

// NewSeededWishStore creates a store holding the seed dataset.
func NewSeededWishStore(opts ...Option) *WishStore {
	return NewWishStore(SeedWishes(time.Now()), SeedUser(), opts...)
}
