package api

import (
	"net/http"

	"github.com/Domenick1991/airbooking-client/internal/apiclient"
	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/Domenick1991/airbooking-client/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service booking.BookingUseCase
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signUpRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// authResponse never carries the access token; it stays in the session store.
type authResponse struct {
	User          domain.User             `json:"user"`
	Checkout      *booking.CheckoutResult `json:"checkout,omitempty"`
	CheckoutError string                  `json:"checkoutError,omitempty"`
}

func NewAuthHandler(service booking.BookingUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/signin", h.signIn)
	router.POST("/signup", h.signUp)
	router.POST("/signout", h.signOut)
	router.GET("/me", h.me)
}

func (h *AuthHandler) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.service.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAuthResponse(res))
}

func (h *AuthHandler) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.service.SignUp(c.Request.Context(), apiclient.SignUpInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAuthResponse(res))
}

func (h *AuthHandler) signOut(c *gin.Context) {
	if err := h.service.SignOut(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) me(c *gin.Context) {
	user, err := h.service.CurrentUser(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func toAuthResponse(res *booking.AuthResult) authResponse {
	out := authResponse{User: res.Session.User, Checkout: res.Checkout}
	if res.CheckoutErr != nil {
		out.CheckoutError = booking.SubmitMessage(res.CheckoutErr)
	}
	return out
}
