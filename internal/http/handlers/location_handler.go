// README: Location admin handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentora/internal/modules/location"
)

type LocationHandler struct {
	locations *location.Service
}

func NewLocationHandler(svc *location.Service) *LocationHandler {
	return &LocationHandler{locations: svc}
}

type locationReq struct {
	Name         string   `json:"name"`
	AddressLine1 string   `json:"address_line1"`
	AddressLine2 *string  `json:"address_line2"`
	City         string   `json:"city"`
	State        *string  `json:"state"`
	PostalCode   *string  `json:"postal_code"`
	CountryCode  string   `json:"country_code"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

func (h *LocationHandler) Create(c *gin.Context) {
	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	l := &location.Location{
		Name:         req.Name,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		CountryCode:  req.CountryCode,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}
	if err := h.locations.Create(c.Request.Context(), l); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, l)
}

func (h *LocationHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	l, err := h.locations.Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, l)
}

func (h *LocationHandler) List(c *gin.Context) {
	locations, err := h.locations.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, locations)
}
