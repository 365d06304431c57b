package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MichIoan/DP-API-2024-sub000/api/responses"
	"github.com/MichIoan/DP-API-2024-sub000/api/validators"
	"github.com/MichIoan/DP-API-2024-sub000/internal/profiles"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/logger"
)

const (
	DefaultMaxProfiles = 5
	maxProfileNameLen  = 50
)

func ProfilesList(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListProfiles(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ProfilesCreate checks required fields, then the per-user cap, then creates.
func ProfilesCreate(svc profiles.Service, maxProfiles int, logg *logger.Logger) http.HandlerFunc {
	if maxProfiles <= 0 {
		maxProfiles = DefaultMaxProfiles
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body profiles.CreateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		body.Name = sanitizeProfileName(body.Name)

		var missing []string
		if body.Age == nil {
			missing = append(missing, "age")
		}
		if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
			missing = append(missing, "name")
		}
		if len(missing) > 0 {
			responses.WriteError(ctx, logg, w, validators.MissingFields(missing...))
			return
		}

		count, err := svc.CountProfiles(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if count >= int64(maxProfiles) {
			msg := fmt.Sprintf("Maximum profile limit reached (%d profiles)", maxProfiles)
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, msg))
			return
		}

		profile, err := svc.CreateProfile(ctx, userID, body)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusCreated, "Profile created", profile)
	}
}

func ProfileGet(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := validators.ParsePathID(r, "profileId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		profile, err := authorizeProfile(r.Context(), svc, profileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

func ProfileUpdate(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		profileID, err := validators.ParsePathID(r, "profileId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if _, err := authorizeProfile(ctx, svc, profileID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body profiles.UpdateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		body.Name = sanitizeProfileName(body.Name)

		profile, err := svc.UpdateProfile(ctx, profileID, body)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, "Profile updated", profile)
	}
}

func ProfileDelete(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		profileID, err := validators.ParsePathID(r, "profileId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if _, err := authorizeProfile(ctx, svc, profileID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.DeleteProfile(ctx, profileID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, "Profile deleted", nil)
	}
}

func sanitizeProfileName(name *string) *string {
	if name == nil {
		return nil
	}
	clean := validators.SanitizeString(*name, maxProfileNameLen)
	return &clean
}
