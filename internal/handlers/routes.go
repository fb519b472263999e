package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes wires every endpoint onto router.
func RegisterRoutes(router *mux.Router, wishHandler *WishHandler, userHandler *UserHandler, chatHandler *ChatHandler) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")

	// Current user routes
	router.HandleFunc("/me", userHandler.GetCurrentUserHandler).Methods("GET")
	router.HandleFunc("/me/role", userHandler.SwitchRoleHandler).Methods("PATCH")

	// Wish routes
	wishRoutes := router.PathPrefix("/wishes").Subrouter()
	wishRoutes.HandleFunc("", wishHandler.GetWishesHandler).Methods("GET")
	wishRoutes.HandleFunc("", wishHandler.CreateWishHandler).Methods("POST")
	wishRoutes.HandleFunc("/{id}", wishHandler.GetWishByIDHandler).Methods("GET")
	wishRoutes.HandleFunc("/{id}/claim", wishHandler.ClaimWishHandler).Methods("POST")
	wishRoutes.HandleFunc("/{id}/proof", wishHandler.SubmitProofHandler).Methods("POST")

	// Chat routes
	wishRoutes.HandleFunc("/{id}/messages", chatHandler.GetChatHistory).Methods("GET")
	wishRoutes.HandleFunc("/{id}/messages", chatHandler.SendMessageHandler).Methods("POST")
	router.HandleFunc("/ws/wishes/{id}", chatHandler.ChatWebSocketHandler).Methods("GET")

	// AI assistance for the post-wish form
	router.HandleFunc("/analyze", wishHandler.AnalyzeImageHandler).Methods("POST")
	router.HandleFunc("/guidance", wishHandler.PriceGuidanceHandler).Methods("POST")
}
