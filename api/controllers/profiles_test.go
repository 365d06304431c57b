package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
)

func TestProfilesCreateMissingFieldsListsNames(t *testing.T) {
	svc := newFakeProfiles()
	rec := serve(t, http.MethodPost, "/profiles", "/profiles", jsonBody(`{"language":"en"}`), 1, ProfilesCreate(svc, 5, nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Missing required fields", env.Message)
	assert.JSONEq(t, `["age","name"]`, string(env.Errors))
	assert.Empty(t, svc.calls, "no count or create before field validation")
}

func TestProfilesCreateEnforcesCap(t *testing.T) {
	svc := newFakeProfiles()
	svc.count = 5
	rec := serve(t, http.MethodPost, "/profiles", "/profiles", jsonBody(`{"name":"Kids","age":9}`), 1, ProfilesCreate(svc, 5, nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Maximum profile limit reached (5 profiles)", env.Message)
	assert.Equal(t, []string{"count"}, svc.calls)
}

func TestProfilesCreateSuccess(t *testing.T) {
	svc := newFakeProfiles()
	svc.count = 4
	svc.created = &models.Profile{ID: 11, UserID: 1, Name: "Kids", Age: 9}
	rec := serve(t, http.MethodPost, "/profiles", "/profiles", jsonBody(`{"name":"Kids","age":9}`), 1, ProfilesCreate(svc, 5, nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"count", "create"}, svc.calls)
	require.NotNil(t, svc.createIn)
	assert.Equal(t, "Kids", *svc.createIn.Name)
}

func TestProfilesCreateMapsServiceErrors(t *testing.T) {
	cases := map[pkgerrors.Code]int{
		pkgerrors.CodeConflict:      http.StatusConflict,
		pkgerrors.CodeUnprocessable: http.StatusUnprocessableEntity,
	}
	for code, status := range cases {
		svc := newFakeProfiles()
		svc.err = pkgerrors.New(code, "rejected")
		rec := serve(t, http.MethodPost, "/profiles", "/profiles", jsonBody(`{"name":"Kids","age":9,"content_classification":"NC17"}`), 1, ProfilesCreate(svc, 5, nil))
		assert.Equal(t, status, rec.Code, string(code))
	}
}

func TestProfileRoutesGateOwnership(t *testing.T) {
	svc := newFakeProfiles(
		models.Profile{ID: 1, UserID: 1, Name: "Mine"},
		models.Profile{ID: 2, UserID: 2, Name: "Theirs"},
	)

	cases := []struct {
		name   string
		target string
		status int
	}{
		{name: "unparsable", target: "/profiles/abc", status: http.StatusBadRequest},
		{name: "missing", target: "/profiles/99", status: http.StatusNotFound},
		{name: "foreign", target: "/profiles/2", status: http.StatusForbidden},
		{name: "owned", target: "/profiles/1", status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, http.MethodGet, "/profiles/{profileId}", tc.target, nil, 1, ProfileGet(svc, nil))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestProfileDeleteForeignNeverReachesService(t *testing.T) {
	svc := newFakeProfiles(models.Profile{ID: 2, UserID: 2})
	rec := serve(t, http.MethodDelete, "/profiles/{profileId}", "/profiles/2", nil, 1, ProfileDelete(svc, nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, svc.calls, "delete")
}

func TestProfileDeleteBlockedByHistory(t *testing.T) {
	svc := newFakeProfiles(models.Profile{ID: 1, UserID: 1})
	svc.err = pkgerrors.New(pkgerrors.CodeConflict, "profile has watch history or watch list entries")
	rec := serve(t, http.MethodDelete, "/profiles/{profileId}", "/profiles/1", nil, 1, ProfileDelete(svc, nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProfileUpdateOwned(t *testing.T) {
	svc := newFakeProfiles(models.Profile{ID: 1, UserID: 1, Name: "Mine"})
	rec := serve(t, http.MethodPut, "/profiles/{profileId}", "/profiles/1", jsonBody(`{"language":"nl"}`), 1, ProfileUpdate(svc, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"find", "update"}, svc.calls)
}

func TestProfilesListRequiresCaller(t *testing.T) {
	svc := newFakeProfiles()
	rec := serve(t, http.MethodGet, "/profiles", "/profiles", nil, 0, ProfilesList(svc, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
