package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

func parseIDParam(r *http.Request) (int64, error) {
	idStr := r.PathValue("id")
	return strconv.ParseInt(idStr, 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}

// coerceQuantity loosely converts an add-item quantity. Anything that is not
// a whole number or a parseable integer string silently falls back to 1.
func coerceQuantity(v any) int64 {
	switch q := v.(type) {
	case nil:
		return 1
	case float64:
		return int64(q)
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(q), 10, 64); err == nil {
			return n
		}
		return 1
	default:
		return 1
	}
}

// strictQuantity converts an update quantity, reporting failure instead of
// falling back.
func strictQuantity(v any) (int64, bool) {
	switch q := v.(type) {
	case float64:
		return int64(q), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(q), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
