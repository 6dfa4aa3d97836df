// README: Quote handler: price resolution without booking.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rentora/internal/modules/pricing"
)

// Quoter is the slice of the pricing service handlers need.
type Quoter interface {
	Quote(ctx context.Context, cmd pricing.QuoteCommand) (*pricing.Quote, error)
}

type QuoteHandler struct {
	pricing Quoter
}

func NewQuoteHandler(p Quoter) *QuoteHandler {
	return &QuoteHandler{pricing: p}
}

type quoteReq struct {
	VehicleGroupID    int64  `json:"vehicle_group_id"`
	PickupDate        string `json:"pickup_date"`
	DropoffDate       string `json:"dropoff_date"`
	PickupCity        string `json:"pickup_city"`
	DropoffCity       string `json:"dropoff_city"`
	VehicleLocationID int64  `json:"vehicle_location_id"`
	PickupLocationID  int64  `json:"pickup_location_id"`
	PromoCode         string `json:"promo_code"`
	IsAgreement       bool   `json:"is_agreement"`
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	pickup, err := parseDateTime(req.PickupDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid pickup_date")
		return
	}
	dropoff, err := parseDateTime(req.DropoffDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid dropoff_date")
		return
	}

	q, err := h.pricing.Quote(c.Request.Context(), pricing.QuoteCommand{
		VehicleGroupID:    req.VehicleGroupID,
		PickupDate:        pickup,
		DropoffDate:       dropoff,
		PickupCity:        req.PickupCity,
		DropoffCity:       req.DropoffCity,
		VehicleLocationID: req.VehicleLocationID,
		PickupLocationID:  req.PickupLocationID,
		PromoCode:         req.PromoCode,
		IsAgreement:       req.IsAgreement,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, q)
}

// parseDateTime accepts RFC 3339 timestamps and bare dates. Bare dates are
// midnight UTC, which keeps whole-day rentals at exact day counts.
func parseDateTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
