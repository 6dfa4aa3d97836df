// README: Rate and tier admin handlers.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"rentora/internal/modules/rate"
)

type RateHandler struct {
	rates *rate.Service
}

func NewRateHandler(svc *rate.Service) *RateHandler {
	return &RateHandler{rates: svc}
}

type rateReq struct {
	Name                  string           `json:"name"`
	Description           *string          `json:"description"`
	ParentRateID          *int64           `json:"parent_rate_id"`
	IncrementType         *string          `json:"increment_type"`
	IncrementValue        *decimal.Decimal `json:"increment_value"`
	ValidFrom             string           `json:"valid_from"`
	ValidUntil            string           `json:"valid_until"`
	MinDays               int              `json:"min_days"`
	MaxDays               *int             `json:"max_days"`
	UnlimitedKm           bool             `json:"unlimited_km"`
	EditableBy            string           `json:"editable_by"`
	IsActive              bool             `json:"is_active"`
	ModifierName          *string          `json:"modifier_name"`
	ModifierType          *string          `json:"modifier_type"`
	ModifierValue         *decimal.Decimal `json:"modifier_value"`
	ModifierAgreementOnly bool             `json:"modifier_agreement_only"`
}

func (r *rateReq) toModel() (*rate.Rate, error) {
	from, err := time.Parse("2006-01-02", r.ValidFrom)
	if err != nil {
		return nil, err
	}
	until, err := time.Parse("2006-01-02", r.ValidUntil)
	if err != nil {
		return nil, err
	}
	m := &rate.Rate{
		Name:                  r.Name,
		Description:           r.Description,
		ParentRateID:          r.ParentRateID,
		IncrementValue:        r.IncrementValue,
		ValidFrom:             from,
		ValidUntil:            until,
		MinDays:               r.MinDays,
		MaxDays:               r.MaxDays,
		UnlimitedKm:           r.UnlimitedKm,
		EditableBy:            r.EditableBy,
		IsActive:              r.IsActive,
		ModifierName:          r.ModifierName,
		ModifierValue:         r.ModifierValue,
		ModifierAgreementOnly: r.ModifierAgreementOnly,
	}
	if r.IncrementType != nil {
		t := rate.ModifierType(*r.IncrementType)
		m.IncrementType = &t
	}
	if r.ModifierType != nil {
		t := rate.ModifierType(*r.ModifierType)
		m.ModifierType = &t
	}
	return m, nil
}

func (h *RateHandler) Create(c *gin.Context) {
	var req rateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	r, err := req.toModel()
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid date")
		return
	}
	if err := h.rates.Create(c.Request.Context(), r); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, r)
}

func (h *RateHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	r, err := h.rates.Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, r)
}

func (h *RateHandler) List(c *gin.Context) {
	rates, err := h.rates.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, rates)
}

func (h *RateHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req rateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	r, err := req.toModel()
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid date")
		return
	}
	r.ID = id
	if err := h.rates.Update(c.Request.Context(), r); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, r)
}

func (h *RateHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.rates.Delete(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type tierReq struct {
	RateID         int64           `json:"rate_id"`
	VehicleGroupID int64           `json:"vehicle_group_id"`
	FromDays       int             `json:"from_days"`
	ToDays         *int            `json:"to_days"`
	PricePerDay    decimal.Decimal `json:"price_per_day"`
	Currency       string          `json:"currency"`
}

func (r *tierReq) toModel() *rate.Tier {
	return &rate.Tier{
		RateID:         r.RateID,
		VehicleGroupID: r.VehicleGroupID,
		FromDays:       r.FromDays,
		ToDays:         r.ToDays,
		PricePerDay:    r.PricePerDay,
		Currency:       r.Currency,
	}
}

func (h *RateHandler) CreateTier(c *gin.Context) {
	var req tierReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	t := req.toModel()
	if err := h.rates.CreateTier(c.Request.Context(), t); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, t)
}

// CreateTiersBulk builds a rate's full tier table in one call, the way the
// admin matrix editor saves it.
func (h *RateHandler) CreateTiersBulk(c *gin.Context) {
	var reqs []tierReq
	if err := c.ShouldBindJSON(&reqs); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	tiers := make([]rate.Tier, 0, len(reqs))
	for i := range reqs {
		tiers = append(tiers, *reqs[i].toModel())
	}
	if err := h.rates.CreateTiersBulk(c.Request.Context(), tiers); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, tiers)
}

func (h *RateHandler) UpdateTier(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req tierReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	t := req.toModel()
	t.ID = id
	if err := h.rates.UpdateTier(c.Request.Context(), t); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

func (h *RateHandler) DeleteTier(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.rates.DeleteTier(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type dayRangeReq struct {
	RateID   int64   `json:"rate_id"`
	FromDays int     `json:"from_days"`
	ToDays   *int    `json:"to_days"`
	Label    *string `json:"label"`
}

func (h *RateHandler) CreateDayRange(c *gin.Context) {
	var req dayRangeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	d := &rate.DayRange{RateID: req.RateID, FromDays: req.FromDays, ToDays: req.ToDays, Label: req.Label}
	if err := h.rates.CreateDayRange(c.Request.Context(), d); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, d)
}

type hourRangeReq struct {
	RateID    int64 `json:"rate_id"`
	FromHours int   `json:"from_hours"`
	ToHours   *int  `json:"to_hours"`
}

func (h *RateHandler) CreateHourRange(c *gin.Context) {
	var req hourRangeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	hr := &rate.HourRange{RateID: req.RateID, FromHours: req.FromHours, ToHours: req.ToHours}
	if err := h.rates.CreateHourRange(c.Request.Context(), hr); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, hr)
}

type kmRangeReq struct {
	RateID int64  `json:"rate_id"`
	FromKm int    `json:"from_km"`
	ToKm   *int   `json:"to_km"`
	Label  string `json:"label"`
}

func (h *RateHandler) CreateKmRange(c *gin.Context) {
	var req kmRangeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	k := &rate.KmRange{RateID: req.RateID, FromKm: req.FromKm, ToKm: req.ToKm, Label: req.Label}
	if err := h.rates.CreateKmRange(c.Request.Context(), k); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, k)
}

// Matrix returns a rate's tiers grouped by vehicle group, the shape the
// admin pricing grid renders directly.
func (h *RateHandler) Matrix(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	tiers, err := h.rates.TiersForRate(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	byGroup := make(map[string][]rate.Tier)
	for _, t := range tiers {
		key := strconv.FormatInt(t.VehicleGroupID, 10)
		byGroup[key] = append(byGroup[key], t)
	}
	writeJSON(c, http.StatusOK, gin.H{"rate_id": id, "tiers_by_group": byGroup})
}
