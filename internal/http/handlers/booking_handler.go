// README: Booking handlers: create with frozen price, lifecycle transitions.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rentora/internal/modules/booking"
)

type BookingHandler struct {
	bookings *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{bookings: svc}
}

type createBookingReq struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

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

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
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

	b, err := h.bookings.Create(c.Request.Context(), booking.CreateCommand{
		CustomerName:      req.CustomerName,
		CustomerEmail:     req.CustomerEmail,
		CustomerPhone:     req.CustomerPhone,
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
	writeJSON(c, http.StatusCreated, bookingView(b))
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	b, err := h.bookings.Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, bookingView(b))
}

func (h *BookingHandler) List(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	bookings, err := h.bookings.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	views := make([]gin.H, 0, len(bookings))
	for i := range bookings {
		views = append(views, bookingView(&bookings[i]))
	}
	writeJSON(c, http.StatusOK, views)
}

type transitionReq struct {
	Status string `json:"status"`
}

func (h *BookingHandler) Transition(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req transitionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	b, err := h.bookings.Transition(c.Request.Context(), id, booking.Status(req.Status))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, bookingView(b))
}

func (h *BookingHandler) MarkPaid(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.bookings.MarkPaid(c.Request.Context(), id); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bookingView(b *booking.Booking) gin.H {
	return gin.H{
		"id":               b.ID,
		"reference":        b.Reference,
		"customer_name":    b.CustomerName,
		"customer_email":   b.CustomerEmail,
		"vehicle_group_id": b.VehicleGroupID,
		"rate_id":          b.RateID,
		"rate_tier_id":     b.RateTierID,
		"pickup_date":      b.PickupDate,
		"dropoff_date":     b.DropoffDate,
		"days":             b.Days,
		"pickup_city":      b.PickupCity,
		"dropoff_city":     b.DropoffCity,
		"price_per_day":    b.PricePerDay,
		"subtotal":         b.Subtotal,
		"one_way_fee":      b.OneWayFee,
		"delivery_fee":     b.DeliveryFee,
		"discount":         b.Discount,
		"total_amount":     b.TotalAmount,
		"currency":         b.Currency,
		"status":           b.Status,
		"payment_status":   b.PaymentStatus,
		"created_at":       b.CreatedAt,
	}
}

func intQuery(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
