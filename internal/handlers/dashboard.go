package handlers

import (
	"net/http"

	pkghttp "github.com/soundreach/backoffice/pkg/http"
)

// DashboardHandler aggregates back-office summary data
type DashboardHandler struct {
	donations DonationService
	audit     AuditReader
}

func NewDashboardHandler(donations DonationService, audit AuditReader) *DashboardHandler {
	return &DashboardHandler{donations: donations, audit: audit}
}

type DashboardResponse struct {
	TotalDonationCents int64               `json:"total_donation_cents"`
	RecentDonations    []*DonationResponse `json:"recent_donations"`
	RecentActivity     []*AuditLogResponse `json:"recent_activity"`
}

// Summary returns the admin landing page data: all-time donation total,
// the ten most recent donations, and recent audit activity.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := h.donations.Total(ctx)
	if err != nil {
		pkghttp.WriteInternalError(w, "Something went wrong")
		return
	}

	recent, err := h.donations.ListRecent(ctx, 10)
	if err != nil {
		pkghttp.WriteInternalError(w, "Something went wrong")
		return
	}

	activity, err := h.audit.ListRecent(ctx, 10)
	if err != nil {
		pkghttp.WriteInternalError(w, "Something went wrong")
		return
	}

	response := &DashboardResponse{
		TotalDonationCents: total,
		RecentDonations:    make([]*DonationResponse, len(recent)),
		RecentActivity:     make([]*AuditLogResponse, len(activity)),
	}
	for i, d := range recent {
		response.RecentDonations[i] = donationModelToResponse(d)
	}
	for i, a := range activity {
		response.RecentActivity[i] = auditLogToResponse(a)
	}

	pkghttp.WriteJSON(w, http.StatusOK, response)
}
