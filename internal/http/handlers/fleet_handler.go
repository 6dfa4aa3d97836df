// README: Vehicle group admin handlers.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"rentora/internal/modules/fleet"
)

type FleetHandler struct {
	fleet *fleet.Service
}

func NewFleetHandler(svc *fleet.Service) *FleetHandler {
	return &FleetHandler{fleet: svc}
}

type vehicleGroupReq struct {
	Name              string           `json:"name"`
	Description       *string          `json:"description"`
	Category          *string          `json:"category"`
	Seats             *int             `json:"seats"`
	Doors             *int             `json:"doors"`
	Transmission      *string          `json:"transmission"`
	FuelType          *string          `json:"fuel_type"`
	BasePricePerDay   *decimal.Decimal `json:"base_price_per_day"`
	BasePricePerWeek  *decimal.Decimal `json:"base_price_per_week"`
	BasePricePerMonth *decimal.Decimal `json:"base_price_per_month"`
	Features          []string         `json:"features"`
	ImageURL          *string          `json:"image_url"`
	DisplayOrder      int              `json:"display_order"`
	Active            bool             `json:"active"`
	MinRentalDays     int              `json:"min_rental_days"`
	MaxRentalDays     *int             `json:"max_rental_days"`
}

func (r *vehicleGroupReq) toModel() *fleet.VehicleGroup {
	return &fleet.VehicleGroup{
		Name:              r.Name,
		Description:       r.Description,
		Category:          r.Category,
		Seats:             r.Seats,
		Doors:             r.Doors,
		Transmission:      r.Transmission,
		FuelType:          r.FuelType,
		BasePricePerDay:   r.BasePricePerDay,
		BasePricePerWeek:  r.BasePricePerWeek,
		BasePricePerMonth: r.BasePricePerMonth,
		Features:          r.Features,
		ImageURL:          r.ImageURL,
		DisplayOrder:      r.DisplayOrder,
		Active:            r.Active,
		MinRentalDays:     r.MinRentalDays,
		MaxRentalDays:     r.MaxRentalDays,
	}
}

func (h *FleetHandler) Create(c *gin.Context) {
	var req vehicleGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	g := req.toModel()
	if err := h.fleet.Create(c.Request.Context(), g); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, g)
}

func (h *FleetHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	g, err := h.fleet.Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, g)
}

func (h *FleetHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	groups, err := h.fleet.List(c.Request.Context(), activeOnly)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, groups)
}

func (h *FleetHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req vehicleGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	g := req.toModel()
	g.ID = id
	if err := h.fleet.Update(c.Request.Context(), g); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, g)
}

func (h *FleetHandler) Deactivate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.fleet.Deactivate(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
