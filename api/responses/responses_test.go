package responses

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/logger"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestWriteSuccessMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccessMessage(w, http.StatusCreated, "Profile created", map[string]string{"name": "Kids"})

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Profile created", body["message"])
	assert.Equal(t, "Kids", body["data"].(map[string]any)["name"])
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields").WithDetails([]string{"name"})
	WriteError(context.Background(), testLogger(), w, err)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body types.ErrorEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, string(pkgerrors.CodeValidation), body.Code)
	assert.Equal(t, "Missing required fields", body.Message)
	assert.Equal(t, []any{"name"}, body.Errors)
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := map[pkgerrors.Code]int{
		pkgerrors.CodeUnauthorized:  http.StatusUnauthorized,
		pkgerrors.CodeForbidden:     http.StatusForbidden,
		pkgerrors.CodeNotFound:      http.StatusNotFound,
		pkgerrors.CodeConflict:      http.StatusConflict,
		pkgerrors.CodeUnprocessable: http.StatusUnprocessableEntity,
	}
	for code, status := range cases {
		w := httptest.NewRecorder()
		WriteError(context.Background(), nil, w, pkgerrors.New(code, "msg"))
		assert.Equal(t, status, w.Code, code)
	}
}

func TestWriteErrorHidesInternalDetailsInProduction(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), testLogger(), w, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body types.ErrorEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, string(pkgerrors.CodeInternal), body.Code)
	assert.Equal(t, "internal server error", body.Message)
	assert.Nil(t, body.Errors)
}

func TestWriteErrorExposesInternalDetailsOutsideProduction(t *testing.T) {
	w := httptest.NewRecorder()
	ctx := WithErrorDetails(context.Background(), true)
	WriteError(ctx, testLogger(), w, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body types.ErrorEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Contains(t, body.Errors, "connection refused")
}

func TestWriteXML(t *testing.T) {
	type doc struct {
		Name string `xml:"name"`
	}
	w := httptest.NewRecorder()
	WriteXML(w, http.StatusOK, doc{Name: "Pilot"})

	assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "<?xml"))
	assert.Contains(t, w.Body.String(), "<name>Pilot</name>")
}
