package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodpath/auth"
	"foodpath/grocery"
	"foodpath/recipes"
)

const (
	msgInvalidInput        = "Invalid input"
	msgInternalServerError = "Internal server error"
)

func sendJSONResponse(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

func sendErrorResponse(c *gin.Context, status int, message string) {
	sendJSONResponse(c, status, gin.H{"message": message})
}

// fail maps domain errors onto HTTP statuses.
func fail(c *gin.Context, err error) {
	var httpErr *auth.HTTPError

	switch {
	case errors.Is(err, auth.ErrEmailRegistered):
		sendErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		sendErrorResponse(c, http.StatusUnauthorized, err.Error())
	case grocery.IsValidation(err), recipes.IsValidation(err), auth.IsValidation(err):
		sendErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, grocery.ErrNoOrder),
		errors.Is(err, grocery.ErrAddressNotFound),
		errors.Is(err, grocery.ErrProductNotFound):
		sendErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.As(err, &httpErr):
		sendErrorResponse(c, httpErr.StatusCode, httpErr.Message)
	default:
		slog.Error("HTTP: Internal error", "path", c.Request.URL.Path, "error", err)
		sendErrorResponse(c, http.StatusInternalServerError, msgInternalServerError)
	}
}

// authResponse flattens a backend result and flags mock data.
func authResponse(res auth.Result) gin.H {
	out := gin.H{
		"status": res.Status,
		"demo":   res.Demo(),
		"data":   res.Body,
	}
	if msg := res.Message(); msg != "" {
		out["message"] = msg
	}
	if notice := res.Notice(); notice != "" {
		out["notice"] = notice
	}
	if res.ErrorDetails != nil {
		out["errorDetails"] = res.ErrorDetails
	}
	return out
}
