// Package controllers holds the HTTP handlers. Controllers decode and
// validate input, call one service, and write a JSON envelope; all
// business rules live in app/services.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/novamarket/app/services"
	"github.com/shashiranjanraj/novamarket/pkg/logger"
	"github.com/shashiranjanraj/novamarket/pkg/middleware"
	"github.com/shashiranjanraj/novamarket/pkg/response"
)

// uintParam parses a numeric chi URL parameter.
func uintParam(r *http.Request, name string) (uint, bool) {
	n, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// queryInt parses an integer query parameter with a fallback.
func queryInt(r *http.Request, name string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return n
}

// currentUserID returns the authenticated user's ID. Handlers behind
// RequireAuth can rely on it being present.
func currentUserID(r *http.Request) (uint, bool) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		return 0, false
	}
	return claims.UserID, true
}

// serviceError maps common service failures onto HTTP envelopes.
func serviceError(w http.ResponseWriter, err error) {
	var stockErr *services.InsufficientStockError

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(w)
	case errors.As(err, &stockErr):
		response.Error(w, http.StatusConflict, stockErr.Error())
	case errors.Is(err, services.ErrEmptyCart):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrUnsupportedImage):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, err.Error())
	default:
		logger.Error("request failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Something went wrong")
	}
}
