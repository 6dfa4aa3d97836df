// README: One-way fee admin handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"rentora/internal/modules/oneway"
)

type OneWayHandler struct {
	fees *oneway.Service
}

func NewOneWayHandler(svc *oneway.Service) *OneWayHandler {
	return &OneWayHandler{fees: svc}
}

type oneWayFeeReq struct {
	FromCity  string          `json:"from_city"`
	ToCity    string          `json:"to_city"`
	FeeAmount decimal.Decimal `json:"fee_amount"`
	Currency  string          `json:"currency"`
	IsActive  bool            `json:"is_active"`
}

func (r *oneWayFeeReq) toModel() *oneway.Fee {
	return &oneway.Fee{
		FromCity:  r.FromCity,
		ToCity:    r.ToCity,
		FeeAmount: r.FeeAmount,
		Currency:  r.Currency,
		IsActive:  r.IsActive,
	}
}

func (h *OneWayHandler) Create(c *gin.Context) {
	var req oneWayFeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	f := req.toModel()
	if err := h.fees.Create(c.Request.Context(), f); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, f)
}

func (h *OneWayHandler) List(c *gin.Context) {
	fees, err := h.fees.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, fees)
}

func (h *OneWayHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req oneWayFeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	f := req.toModel()
	f.ID = id
	if err := h.fees.Update(c.Request.Context(), f); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, f)
}

func (h *OneWayHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.fees.Delete(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
