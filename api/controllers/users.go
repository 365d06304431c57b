package controllers

import (
	"context"
	"net/http"

	"github.com/MichIoan/DP-API-2024-sub000/api/middleware"
	"github.com/MichIoan/DP-API-2024-sub000/api/responses"
	"github.com/MichIoan/DP-API-2024-sub000/internal/users"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/logger"
)

func callerID(ctx context.Context) (uint, error) {
	id := middleware.UserIDFromContext(ctx)
	if id == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return id, nil
}

func UsersMe(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.GetMe(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// UsersDeleteMe soft deletes the caller and revokes their refresh tokens.
func UsersDeleteMe(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteMe(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, "Account deleted", nil)
	}
}
