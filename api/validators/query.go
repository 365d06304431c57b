package validators

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
)

var clockPattern = regexp.MustCompile(`^\d{2,}:[0-5]\d:[0-5]\d$`)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseID parses a positive integer identifier. Empty input is reported as a
// missing field.
func ParseID(raw, field string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, MissingFields(field)
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+field).WithDetails(map[string]any{"field": field})
	}
	return uint(value), nil
}

// ParsePathID reads a chi URL parameter as an identifier.
func ParsePathID(r *http.Request, param string) (uint, error) {
	return ParseID(chi.URLParam(r, param), param)
}
