package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pingcheck/pingcheck/internal/logging"
	"github.com/pingcheck/pingcheck/internal/pingfederate"
)

// validateResponse is the JSON body returned for a successfully validated token.
type validateResponse struct {
	Principal   string         `json:"principal"`
	Authorities []string       `json:"authorities"`
	Attributes  map[string]any `json:"attributes"`
}

// errorResponse is the JSON body returned for every failure.
type errorResponse struct {
	Error string `json:"error"`
}

// newRouter builds the validation API.
func newRouter(validator *pingfederate.Validator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", handleHealthz)
	r.Post("/v1/validate", handleValidate(validator, logger))
	return r
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleValidate validates the presented bearer token and returns the
// authenticated principal. Invalid tokens map to 401, provider failures to
// 502; the client secret never appears in responses or logs.
func handleValidate(validator *pingfederate.Validator, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqLogger := logging.WithRequest(logger, r.Method, r.URL.Path, r.RemoteAddr)

		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing token"})
			return
		}

		auth, err := validator.Validate(r.Context(), token)
		if err != nil {
			var invalid *pingfederate.InvalidTokenError
			if errors.As(err, &invalid) {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: invalid.Reason})
				return
			}
			var transport *pingfederate.TransportError
			if errors.As(err, &transport) {
				reqLogger.Error("provider unreachable", "error", err)
				writeJSON(w, http.StatusBadGateway, errorResponse{Error: "identity provider unavailable"})
				return
			}
			reqLogger.Error("validation failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		writeJSON(w, http.StatusOK, validateResponse{
			Principal:   auth.Principal,
			Authorities: auth.Authorities.Values(),
			Attributes:  auth.Attributes,
		})
	}
}

// bearerToken extracts the token from the Authorization header, falling back
// to the token form field.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return r.PostFormValue("token")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
