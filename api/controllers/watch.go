package controllers

import (
	"net/http"

	"github.com/MichIoan/DP-API-2024-sub000/api/responses"
	"github.com/MichIoan/DP-API-2024-sub000/api/validators"
	"github.com/MichIoan/DP-API-2024-sub000/internal/watch"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/logger"
)

// WatchListAdd handles POST /media/watchlist.
func WatchListAdd(svc watch.Service, profiles profileFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var body watch.AddToWatchListRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if missing := missingIDs(map[string]*uint{"profileId": body.ProfileID, "mediaId": body.MediaID}); len(missing) > 0 {
			responses.WriteError(ctx, logg, w, validators.MissingFields(missing...))
			return
		}
		if _, err := authorizeProfile(ctx, profiles, *body.ProfileID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		entry, err := svc.AddToWatchList(ctx, *body.ProfileID, *body.MediaID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusCreated, "Added to watch list", entry)
	}
}

func WatchListRemove(svc watch.Service, profiles profileFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		profileID, err := validators.ParsePathID(r, "profileId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		mediaID, err := validators.ParsePathID(r, "mediaId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if _, err := authorizeProfile(ctx, profiles, profileID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		removed, err := svc.RemoveFromWatchList(ctx, profileID, mediaID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !removed {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "media not in watch list"))
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, "Removed from watch list", nil)
	}
}

func WatchListGet(svc watch.Service, profiles profileFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		profileID, limit, err := gatedProfileQuery(r, profiles, watch.DefaultWatchListLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		list, err := svc.GetWatchList(ctx, profileID, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// HistoryMark handles POST /media/history. Progress defaults to 100.
func HistoryMark(svc watch.Service, profiles profileFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var body watch.MarkAsWatchedRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if missing := missingIDs(map[string]*uint{"profileId": body.ProfileID, "mediaId": body.MediaID}); len(missing) > 0 {
			responses.WriteError(ctx, logg, w, validators.MissingFields(missing...))
			return
		}
		if _, err := authorizeProfile(ctx, profiles, *body.ProfileID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		entry, err := svc.MarkAsWatched(ctx, watch.MarkAsWatchedInput{
			ProfileID: *body.ProfileID,
			MediaID:   *body.MediaID,
			Progress:  body.Progress,
			ResumeTo:  body.ResumeTo,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, "Watch history updated", entry)
	}
}

func HistoryGet(svc watch.Service, profiles profileFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		profileID, limit, err := gatedProfileQuery(r, profiles, watch.DefaultHistoryLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		history, err := svc.GetHistory(ctx, profileID, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}

func HistoryUpdate(svc watch.Service, profiles profileFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		historyID, err := validators.ParsePathID(r, "historyId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if _, err := authorizeHistory(ctx, profiles, svc, historyID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var patch watch.HistoryPatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		entry, err := svc.UpdateHistory(ctx, historyID, patch)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if entry == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "history entry not found"))
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, "Watch history updated", entry)
	}
}

func HistoryDelete(svc watch.Service, profiles profileFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		historyID, err := validators.ParsePathID(r, "historyId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if _, err := authorizeHistory(ctx, profiles, svc, historyID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		deleted, err := svc.DeleteHistory(ctx, historyID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !deleted {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "history entry not found"))
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, "Watch history deleted", nil)
	}
}

func Recommendations(svc watch.Service, profiles profileFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		profileID, limit, err := gatedProfileQuery(r, profiles, watch.DefaultRecommendationsLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		recs, err := svc.GetRecommendations(ctx, profileID, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, recs)
	}
}

func AgeAppropriateContent(svc watch.Service, profiles profileFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		profileID, limit, err := gatedProfileQuery(r, profiles, watch.DefaultAgeAppropriateLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		media, err := svc.GetAgeAppropriateContent(ctx, profileID, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, media)
	}
}

// gatedProfileQuery parses {profileId} and ?limit, then runs the ownership gate.
func gatedProfileQuery(r *http.Request, profiles profileFinder, defaultLimit int) (uint, int, error) {
	profileID, err := validators.ParsePathID(r, "profileId")
	if err != nil {
		return 0, 0, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", defaultLimit, 1, watch.MaxLimit)
	if err != nil {
		return 0, 0, err
	}
	if _, err := authorizeProfile(r.Context(), profiles, profileID); err != nil {
		return 0, 0, err
	}
	return profileID, limit, nil
}

func missingIDs(fields map[string]*uint) []string {
	var missing []string
	for _, name := range []string{"mediaId", "profileId"} {
		if v, ok := fields[name]; ok && (v == nil || *v == 0) {
			missing = append(missing, name)
		}
	}
	return missing
}
