package api

import (
	"context"
	"net/http"

	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/Domenick1991/airbooking-client/internal/form"
	"github.com/Domenick1991/airbooking-client/internal/normalize"
	"github.com/Domenick1991/airbooking-client/internal/service/booking"
	"github.com/Domenick1991/airbooking-client/internal/service/confirmation"
	"github.com/gin-gonic/gin"
)

// Confirmer resolves a booking reference into a confirmation view.
type Confirmer interface {
	Reconcile(ctx context.Context, ref confirmation.Reference) confirmation.State
}

type BookingHandler struct {
	service   booking.BookingUseCase
	confirmer Confirmer
}

// checkoutRequest takes flights as returned by search, in either naming.
type checkoutRequest struct {
	OutboundFlight map[string]any     `json:"outboundFlight"`
	ReturnFlight   map[string]any     `json:"returnFlight"`
	Passengers     []domain.Passenger `json:"passengers"`
	Contact        domain.ContactInfo `json:"contact"`
}

type confirmationRequest struct {
	Booking map[string]any `json:"booking"`
}

func NewBookingHandler(service booking.BookingUseCase, confirmer Confirmer) *BookingHandler {
	return &BookingHandler{service: service, confirmer: confirmer}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.checkout)
	router.GET("", h.list)
	router.GET("/pending", h.pending)
	router.POST("/confirmation", h.confirmInline)
	router.GET("/:id", h.get)
	router.GET("/:id/confirmation", h.confirm)
	router.PUT("/:id/cancel", h.cancel)
}

func (h *BookingHandler) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := booking.CheckoutInput{
		Form: form.New(form.FromDraft(req.Passengers, req.Contact)),
	}
	if len(req.OutboundFlight) > 0 {
		f := normalize.NormalizeFlight(req.OutboundFlight)
		input.Outbound = &f
	}
	if len(req.ReturnFlight) > 0 {
		f := normalize.NormalizeFlight(req.ReturnFlight)
		input.Return = &f
	}

	res, err := h.service.Checkout(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	switch res.Status {
	case booking.CheckoutCreated:
		c.JSON(http.StatusCreated, res)
	default:
		c.JSON(http.StatusAccepted, res)
	}
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.Bookings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) pending(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.PendingCheckout())
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.Booking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	b, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) confirm(c *gin.Context) {
	h.respondConfirmation(c, confirmation.Reference{BookingID: c.Param("id")})
}

func (h *BookingHandler) confirmInline(c *gin.Context) {
	var req confirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondConfirmation(c, confirmation.Reference{Booking: req.Booking})
}

func (h *BookingHandler) respondConfirmation(c *gin.Context, ref confirmation.Reference) {
	st := h.confirmer.Reconcile(c.Request.Context(), ref)
	switch {
	case st.Phase == confirmation.PhaseReady:
		c.JSON(http.StatusOK, st)
	case st.Error == confirmation.MsgNoReference:
		c.JSON(http.StatusBadRequest, st)
	case st.Error == confirmation.MsgBookingNotFound, st.Error == confirmation.MsgFlightNotFound:
		c.JSON(http.StatusNotFound, st)
	default:
		c.JSON(http.StatusBadGateway, st)
	}
}
