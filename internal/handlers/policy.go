package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/farmsight/farmsight-api/internal/origin"
	"github.com/farmsight/farmsight-api/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// PolicyHandler exposes read-only introspection of the origin authorization
// policy: what the effective allow-list is and what decision the resolver
// would make for a given origin. Nothing here mutates the policy.
type PolicyHandler struct {
	policy *origin.Policy
}

// NewPolicyHandler creates a new policy handler.
func NewPolicyHandler(policy *origin.Policy) *PolicyHandler {
	return &PolicyHandler{policy: policy}
}

// RegisterRoutes registers policy routes on the given router. The router
// should already carry the /origin-policy prefix.
func (h *PolicyHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.GetPolicy).Methods("GET")
	r.HandleFunc("/check", h.CheckOrigin).Methods("POST")
}

// PolicyResponse describes the effective policy.
type PolicyResponse struct {
	Mode          string   `json:"mode"`
	Origins       []string `json:"origins,omitempty"`
	Methods       []string `json:"methods"`
	Headers       []string `json:"headers"`
	MaxAgeSeconds int      `json:"max_age_seconds"`
}

// GetPolicy reports the policy loaded at startup.
func (h *PolicyHandler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, PolicyResponse{
		Mode:          h.policy.Mode().String(),
		Origins:       h.policy.Origins(),
		Methods:       origin.Methods(),
		Headers:       origin.RequestHeaders(),
		MaxAgeSeconds: origin.MaxAgeSeconds,
	})
}

// CheckOriginRequest is a dry-run authorization query.
type CheckOriginRequest struct {
	Origin string `json:"origin" validate:"required,web_origin"`
	Method string `json:"method" validate:"omitempty,oneof=GET HEAD PUT PATCH POST DELETE OPTIONS"`
}

// CheckOriginResponse is the decision the resolver would make.
type CheckOriginResponse struct {
	Allow      bool   `json:"allow"`
	EchoOrigin string `json:"echo_origin,omitempty"`
	Preflight  bool   `json:"preflight"`
	Mode       string `json:"mode"`
}

// CheckOrigin runs the resolver against a caller-supplied origin without
// touching the response's own CORS headers. Useful for deploy smoke checks
// and debugging frontend origin mismatches.
func (h *PolicyHandler) CheckOrigin(w http.ResponseWriter, r *http.Request) {
	var req CheckOriginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large",
				fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldError := range validationErrors {
				respondJSONError(w, http.StatusBadRequest, "Bad Request",
					fmt.Sprintf("Validation failed: %s", fieldError.Error()))
				return
			}
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return
	}

	decision := origin.Resolve(req.Origin, h.policy)
	respondJSON(w, http.StatusOK, CheckOriginResponse{
		Allow:      decision.Allow,
		EchoOrigin: decision.EchoOrigin,
		Preflight:  req.Method == http.MethodOptions,
		Mode:       h.policy.Mode().String(),
	})
}
