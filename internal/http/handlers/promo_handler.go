// README: Promo code admin handlers.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"rentora/internal/modules/promo"
)

type PromoHandler struct {
	promos *promo.Service
}

func NewPromoHandler(svc *promo.Service) *PromoHandler {
	return &PromoHandler{promos: svc}
}

type promoReq struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	DiscountType string          `json:"discount_type"`
	Value        decimal.Decimal `json:"value"`
	Currency     *string         `json:"currency"`
	StartDate    *string         `json:"start_date"`
	EndDate      *string         `json:"end_date"`
	MinDays      *int            `json:"min_days"`
	MaxDays      *int            `json:"max_days"`
	Active       bool            `json:"active"`
}

func (r *promoReq) toModel() (*promo.Promo, error) {
	p := &promo.Promo{
		Code:         r.Code,
		Name:         r.Name,
		Description:  r.Description,
		DiscountType: promo.DiscountType(r.DiscountType),
		Value:        r.Value,
		Currency:     r.Currency,
		MinDays:      r.MinDays,
		MaxDays:      r.MaxDays,
		Active:       r.Active,
	}
	if r.StartDate != nil {
		t, err := time.Parse("2006-01-02", *r.StartDate)
		if err != nil {
			return nil, err
		}
		p.StartDate = &t
	}
	if r.EndDate != nil {
		t, err := time.Parse("2006-01-02", *r.EndDate)
		if err != nil {
			return nil, err
		}
		p.EndDate = &t
	}
	return p, nil
}

func (h *PromoHandler) Create(c *gin.Context) {
	var req promoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := req.toModel()
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid date")
		return
	}
	if err := h.promos.Create(c.Request.Context(), p); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, p)
}

func (h *PromoHandler) List(c *gin.Context) {
	promos, err := h.promos.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, promos)
}

func (h *PromoHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req promoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := req.toModel()
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid date")
		return
	}
	p.ID = id
	if err := h.promos.Update(c.Request.Context(), p); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

func (h *PromoHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.promos.Delete(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
