package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/countryexplorer/countryexplorer/internal/auth"
	"github.com/countryexplorer/countryexplorer/internal/handler/dto"
	"github.com/countryexplorer/countryexplorer/internal/service"
)

// FavoritesHandler handles the favorites endpoints. All routes are
// behind the auth middleware; the user ID comes from the request
// context.
type FavoritesHandler struct {
	service *service.FavoritesService
	logger  *slog.Logger
}

// NewFavoritesHandler creates a new FavoritesHandler.
func NewFavoritesHandler(svc *service.FavoritesService, logger *slog.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		service: svc,
		logger:  logger,
	}
}

// List handles GET /api/favorites
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	favorites, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.writeFavoritesError(w, userID, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FavoritesResponse{Favorites: favorites})
}

// Add handles POST /api/favorites/add
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.service.Add)
}

// Remove handles POST /api/favorites/remove
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.service.Remove)
}

// mutate is the shared body for the add and remove endpoints, which
// differ only in the service call.
func (h *FavoritesHandler) mutate(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, userID, code string) ([]string, error),
) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		return
	}

	var req dto.FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	favorites, err := op(r.Context(), userID, req.CountryCode)
	if err != nil {
		h.writeFavoritesError(w, userID, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FavoritesResponse{Favorites: favorites})
}

// writeFavoritesError maps service errors onto HTTP responses.
func (h *FavoritesHandler) writeFavoritesError(w http.ResponseWriter, userID string, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User record no longer exists")
	case errors.Is(err, service.ErrInvalidCountryCode):
		writeError(w, http.StatusBadRequest, "INVALID_COUNTRY_CODE", "Country code must be a 3-letter alpha code")
	default:
		h.logger.Error("favorites operation failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Favorites operation failed")
	}
}
