package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/soundreach/backoffice/internal/models"
	pkghttp "github.com/soundreach/backoffice/pkg/http"
	"github.com/soundreach/backoffice/pkg/sanitize"
)

type DonationService interface {
	RecordDonation(ctx context.Context, d *models.Donation) (*models.Donation, error)
	Total(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Donation, error)
}

type DonationHandler struct {
	service DonationService
}

func NewDonationHandler(service DonationService) *DonationHandler {
	return &DonationHandler{service: service}
}

type RecordDonationRequest struct {
	UserID      string `json:"user_id" validate:"omitempty,uuid"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"required,len=3,alpha"`
	Provider    string `json:"provider" validate:"required,oneof=stripe paypal"`
	ProviderID  string `json:"provider_id" validate:"required,max=255"`
	Recurring   bool   `json:"recurring"`
}

type DonationResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id,omitempty"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Provider    string `json:"provider"`
	ProviderID  string `json:"provider_id"`
	Recurring   bool   `json:"recurring"`
	DonorName   string `json:"donor_name,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func donationModelToResponse(d *models.Donation) *DonationResponse {
	resp := &DonationResponse{
		ID:          d.ID,
		AmountCents: d.AmountCents,
		Currency:    d.Currency,
		Provider:    d.Provider,
		ProviderID:  d.ProviderID,
		Recurring:   d.Recurring,
		DonorName:   d.DonorName,
		CreatedAt:   d.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if d.UserID != nil {
		resp.UserID = *d.UserID
	}
	return resp
}

// RecordDonation stores a completed payment reported by a provider.
// Replays of the same provider reference return 409.
func (h *DonationHandler) RecordDonation(w http.ResponseWriter, r *http.Request) {
	var req RecordDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	donation := &models.Donation{
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Provider:    req.Provider,
		ProviderID:  sanitize.Input(req.ProviderID),
		Recurring:   req.Recurring,
	}
	if req.UserID != "" {
		donation.UserID = &req.UserID
	}

	created, err := h.service.RecordDonation(r.Context(), donation)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrConflict):
			pkghttp.WriteConflict(w, "Donation already recorded")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, err.Error())
		default:
			pkghttp.WriteInternalError(w, "Something went wrong")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, donationModelToResponse(created))
}

// Total returns the all-time donation sum in minor units.
func (h *DonationHandler) Total(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.Total(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Something went wrong")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]int64{"total_cents": total})
}

// ListRecent returns the most recent donations, newest first.
func (h *DonationHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		if err := parseIntParam(l, &limit, 1, 100); err != nil {
			pkghttp.WriteBadRequest(w, "Invalid limit parameter")
			return
		}
	}

	donations, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		pkghttp.WriteInternalError(w, "Something went wrong")
		return
	}

	response := make([]*DonationResponse, len(donations))
	for i, d := range donations {
		response[i] = donationModelToResponse(d)
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"donations": response,
		"total":     len(response),
	})
}
