package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/Dias221467/tagwish/internal/models"
	"github.com/Dias221467/tagwish/internal/repository"
	"github.com/Dias221467/tagwish/internal/services"
	"github.com/Dias221467/tagwish/internal/verification"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type WishHandler struct {
	Service        *services.WishService
	MaxUploadBytes int64

	validate *validator.Validate
}

func NewWishHandler(service *services.WishService, maxUploadBytes int64) *WishHandler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &WishHandler{
		Service:        service,
		MaxUploadBytes: maxUploadBytes,
		validate:       v,
	}
}

// createWishRequest mirrors the post-wish form: a photo and an item name are mandatory.
type createWishRequest struct {
	ItemName       string  `json:"itemName" validate:"required"`
	Description    string  `json:"description"`
	EstimatedPrice float64 `json:"estimatedPrice"`
	Reward         float64 `json:"reward"`
	Location       string  `json:"location"`
	Image          string  `json:"image" validate:"required"`
	Tag            string  `json:"tag"`
}

type guidanceRequest struct {
	ItemName string  `json:"itemName"`
	Reward   float64 `json:"reward"`
}

type analyzeResponse struct {
	Image           string                `json:"image"`
	Analysis        *models.ImageAnalysis `json:"analysis"`
	SuggestedReward float64               `json:"suggestedReward"`
}

// GetWishesHandler lists wishes for ?view=explore|mine narrowed by ?q=
func (h *WishHandler) GetWishesHandler(w http.ResponseWriter, r *http.Request) {
	view := repository.View(r.URL.Query().Get("view"))
	if view == "" {
		view = repository.ViewExplore
	}
	if view != repository.ViewExplore && view != repository.ViewMine {
		writeError(w, http.StatusBadRequest, "view must be explore or mine")
		return
	}

	wishes := h.Service.ListWishes(r.Context(), view, r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, wishes)
}

// CreateWishHandler posts a new wish for the current user
func (h *WishHandler) CreateWishHandler(w http.ResponseWriter, r *http.Request) {
	var req createWishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	wish, err := h.Service.CreateWish(r.Context(), models.WishFields{
		ItemName:       req.ItemName,
		Description:    req.Description,
		EstimatedPrice: req.EstimatedPrice,
		Reward:         req.Reward,
		Location:       req.Location,
		Image:          req.Image,
		Tag:            req.Tag,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, wish)
}

// GetWishByIDHandler retrieves a specific wish by ID
func (h *WishHandler) GetWishByIDHandler(w http.ResponseWriter, r *http.Request) {
	wish, err := h.Service.GetWish(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wish)
}

// ClaimWishHandler makes the current user the traveler of a pending wish
func (h *WishHandler) ClaimWishHandler(w http.ResponseWriter, r *http.Request) {
	wish, err := h.Service.ClaimWish(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wish)
}

// SubmitProofHandler checks an uploaded proof photo against the wish description.
func (h *WishHandler) SubmitProofHandler(w http.ResponseWriter, r *http.Request) {
	wishID := mux.Vars(r)["id"]

	photo, ok := readImageUpload(w, r, h.MaxUploadBytes)
	if !ok {
		return
	}

	result, err := h.Service.SubmitProof(r.Context(), wishID, photo)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// AnalyzeImageHandler returns the uploaded photo as a data URI together with any
// auto-fill fields the verification service could extract.
func (h *WishHandler) AnalyzeImageHandler(w http.ResponseWriter, r *http.Request) {
	image, ok := readImageUpload(w, r, h.MaxUploadBytes)
	if !ok {
		return
	}

	resp := analyzeResponse{Image: dataURI(image)}
	if draft := h.Service.AnalyzeImage(r.Context(), image); draft != nil {
		resp.Analysis = &draft.Analysis
		resp.SuggestedReward = draft.SuggestedReward
	} else {
		logrus.Info("No auto-fill available for uploaded image")
	}
	writeJSON(w, http.StatusOK, resp)
}

// PriceGuidanceHandler returns one line of advice about an offered reward
func (h *WishHandler) PriceGuidanceHandler(w http.ResponseWriter, r *http.Request) {
	var req guidanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	advice := h.Service.PriceGuidance(r.Context(), req.ItemName, req.Reward)
	writeJSON(w, http.StatusOK, map[string]string{"advice": advice})
}

func dataURI(data []byte) string {
	return "data:" + verification.ImageMIMEType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request payload"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
