package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/reellords/studio-league/backend/internal/contracts"
)

// errorResponse is the wire shape of every non-2xx body
type errorResponse struct {
	Error  string   `json:"error"`
	Kind   string   `json:"kind"`
	Fields []string `json:"fields,omitempty"`
}

// listResponse wraps paginated collection bodies
type listResponse struct {
	Data  interface{} `json:"data"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Total int         `json:"total"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message, Kind: string(kindForStatus(status))})
}

// respondDomainError maps the error taxonomy onto HTTP statuses. A locked
// acquisition window is rendered as 403 so the client can show the reason
// without treating it as a validation mistake.
func respondDomainError(w http.ResponseWriter, err error) {
	kind := contracts.KindOf(err)

	resp := errorResponse{Error: err.Error(), Kind: string(kind)}
	var de *contracts.Error
	if errors.As(err, &de) {
		resp.Error = de.Message
		resp.Fields = de.Fields
	}

	switch kind {
	case contracts.KindNotFound:
		respondJSON(w, http.StatusNotFound, resp)
	case contracts.KindForbidden, contracts.KindWindowLocked:
		respondJSON(w, http.StatusForbidden, resp)
	case contracts.KindConflict:
		respondJSON(w, http.StatusConflict, resp)
	case contracts.KindValidation:
		respondJSON(w, http.StatusBadRequest, resp)
	default:
		resp.Error = "internal server error"
		resp.Fields = nil
		respondJSON(w, http.StatusInternalServerError, resp)
	}
}

func kindForStatus(status int) contracts.ErrorKind {
	switch status {
	case http.StatusNotFound:
		return contracts.KindNotFound
	case http.StatusForbidden:
		return contracts.KindForbidden
	case http.StatusConflict:
		return contracts.KindConflict
	case http.StatusBadRequest:
		return contracts.KindValidation
	default:
		return contracts.KindInternal
	}
}
