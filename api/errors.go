package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airbooking-client/internal/apiclient"
	"github.com/Domenick1991/airbooking-client/internal/service/booking"
	"github.com/Domenick1991/airbooking-client/internal/service/flights"
	"github.com/gin-gonic/gin"
)

// respondError maps pipeline errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var verr *booking.ValidationError
	var apiErr *apiclient.APIError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": booking.SubmitMessage(err), "fields": verr.Fields})
	case errors.Is(err, flights.ErrInvalidSearch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apiclient.IsAuthError(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apiclient.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apiclient.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "messages": backendMessages(err)})
	case errors.As(err, &apiErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "retryable": apiErr.Retryable()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func backendMessages(err error) []string {
	msgs := apiclient.Messages(err)
	if msgs == nil {
		return []string{}
	}
	return msgs
}
