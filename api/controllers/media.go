package controllers

import (
	"math"
	"net/http"
	"strings"

	"github.com/MichIoan/DP-API-2024-sub000/api/responses"
	"github.com/MichIoan/DP-API-2024-sub000/api/validators"
	"github.com/MichIoan/DP-API-2024-sub000/internal/media"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/logger"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/pagination"
)

func MediaSearch(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		query := strings.TrimSpace(r.URL.Query().Get("query"))
		if query == "" {
			responses.WriteError(ctx, logg, w, validators.MissingFields("query"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		result, err := svc.SearchMedia(ctx, query, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// MediaList serves GET /media?page&limit.
func MediaList(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		page, err := validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, math.MaxInt32)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		result, err := svc.ListMedia(ctx, pagination.Params{Page: page, Limit: limit})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// MediaGet answers in XML when the client prefers application/xml.
func MediaGet(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		mediaID, err := validators.ParsePathID(r, "mediaId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		item, err := svc.GetMedia(ctx, mediaID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if wantsXML(r) {
			responses.WriteXML(w, http.StatusOK, item.ToXML())
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func MediaSubtitles(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		mediaID, err := validators.ParsePathID(r, "mediaId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		subs, err := svc.ListSubtitles(ctx, mediaID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, subs)
	}
}

func SeriesList(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		series, err := svc.ListSeries(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, series)
	}
}

func SeriesGet(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		seriesID, err := validators.ParsePathID(r, "seriesId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		series, err := svc.GetSeries(ctx, seriesID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, series)
	}
}

func GenresList(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		genres, err := svc.ListGenres(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, genres)
	}
}

func wantsXML(r *http.Request) bool {
	accept := strings.ToLower(r.Header.Get("Accept"))
	if !strings.Contains(accept, "xml") {
		return false
	}
	xmlAt := strings.Index(accept, "application/xml")
	if xmlAt < 0 {
		xmlAt = strings.Index(accept, "text/xml")
	}
	jsonAt := strings.Index(accept, "application/json")
	return xmlAt >= 0 && (jsonAt < 0 || xmlAt < jsonAt)
}
