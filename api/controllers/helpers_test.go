package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/MichIoan/DP-API-2024-sub000/api/middleware"
	"github.com/MichIoan/DP-API-2024-sub000/internal/profiles"
	"github.com/MichIoan/DP-API-2024-sub000/internal/watch"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
)

type envelope struct {
	Status  string          `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

// serve routes req through a chi router so URL params resolve, with the
// caller id seeded the way the auth middleware would.
func serve(t *testing.T, method, pattern, target string, body io.Reader, userID uint, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func serveWithAccept(t *testing.T, target, accept string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/media/{mediaId}", h)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Accept", accept)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

type fakeProfiles struct {
	byID     map[uint]*models.Profile
	count    int64
	created  *models.Profile
	createIn *profiles.CreateProfileRequest
	calls    []string
	err      error
}

func newFakeProfiles(list ...models.Profile) *fakeProfiles {
	f := &fakeProfiles{byID: map[uint]*models.Profile{}}
	for i := range list {
		p := list[i]
		f.byID[p.ID] = &p
	}
	return f
}

func (f *fakeProfiles) FindProfile(ctx context.Context, id uint) (*models.Profile, error) {
	f.calls = append(f.calls, "find")
	p, ok := f.byID[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
	}
	return p, nil
}

func (f *fakeProfiles) ListProfiles(ctx context.Context, userID uint) ([]models.Profile, error) {
	out := []models.Profile{}
	for _, p := range f.byID {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProfiles) CountProfiles(ctx context.Context, userID uint) (int64, error) {
	f.calls = append(f.calls, "count")
	return f.count, nil
}

func (f *fakeProfiles) CreateProfile(ctx context.Context, userID uint, req profiles.CreateProfileRequest) (*models.Profile, error) {
	f.calls = append(f.calls, "create")
	f.createIn = &req
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeProfiles) UpdateProfile(ctx context.Context, id uint, req profiles.UpdateProfileRequest) (*models.Profile, error) {
	f.calls = append(f.calls, "update")
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeProfiles) DeleteProfile(ctx context.Context, id uint) error {
	f.calls = append(f.calls, "delete")
	return f.err
}

type fakeWatch struct {
	history map[uint]*models.WatchHistory
	entry   *models.WatchList
	marked  *watch.MarkAsWatchedInput
	limit   int
	removed bool
	calls   []string
	err     error
}

func newFakeWatch() *fakeWatch {
	return &fakeWatch{history: map[uint]*models.WatchHistory{}}
}

func (f *fakeWatch) AddToWatchList(ctx context.Context, profileID, mediaID uint) (*models.WatchList, error) {
	f.calls = append(f.calls, "add")
	if f.err != nil {
		return nil, f.err
	}
	if f.entry != nil {
		return f.entry, nil
	}
	return &models.WatchList{ID: 1, ProfileID: profileID, MediaID: mediaID}, nil
}

func (f *fakeWatch) RemoveFromWatchList(ctx context.Context, profileID, mediaID uint) (bool, error) {
	f.calls = append(f.calls, "remove")
	return f.removed, f.err
}

func (f *fakeWatch) GetWatchList(ctx context.Context, profileID uint, limit int) ([]models.WatchListDetail, error) {
	f.calls = append(f.calls, "watchlist")
	f.limit = limit
	return []models.WatchListDetail{}, f.err
}

func (f *fakeWatch) MarkAsWatched(ctx context.Context, in watch.MarkAsWatchedInput) (*models.WatchHistory, error) {
	f.calls = append(f.calls, "mark")
	f.marked = &in
	if f.err != nil {
		return nil, f.err
	}
	return &models.WatchHistory{ID: 9, ProfileID: in.ProfileID, MediaID: in.MediaID}, nil
}

func (f *fakeWatch) GetHistory(ctx context.Context, profileID uint, limit int) ([]models.WatchHistoryDetail, error) {
	f.calls = append(f.calls, "history")
	f.limit = limit
	return []models.WatchHistoryDetail{}, f.err
}

func (f *fakeWatch) FindHistory(ctx context.Context, historyID uint) (*models.WatchHistory, error) {
	f.calls = append(f.calls, "find_history")
	h, ok := f.history[historyID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "history entry not found")
	}
	return h, nil
}

func (f *fakeWatch) UpdateHistory(ctx context.Context, historyID uint, patch watch.HistoryPatch) (*models.WatchHistory, error) {
	f.calls = append(f.calls, "update_history")
	if f.err != nil {
		return nil, f.err
	}
	return f.history[historyID], nil
}

func (f *fakeWatch) DeleteHistory(ctx context.Context, historyID uint) (bool, error) {
	f.calls = append(f.calls, "delete_history")
	_, ok := f.history[historyID]
	return ok, f.err
}

func (f *fakeWatch) GetRecommendations(ctx context.Context, profileID uint, limit int) ([]models.Recommendation, error) {
	f.calls = append(f.calls, "recommendations")
	f.limit = limit
	return []models.Recommendation{}, f.err
}

func (f *fakeWatch) GetAgeAppropriateContent(ctx context.Context, profileID uint, limit int) ([]models.AgeAppropriateMedia, error) {
	f.calls = append(f.calls, "age_appropriate")
	f.limit = limit
	return []models.AgeAppropriateMedia{}, f.err
}
