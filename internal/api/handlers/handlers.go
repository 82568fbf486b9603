package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nexus/workspace/internal/logging"
	"github.com/nexus/workspace/internal/service"
)

// UserHeader carries the id of the signed-in user on every request.
const UserHeader = "X-User-ID"

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

var validationMessages = map[string]string{
	"required": "The field '%s' is required.",
	"email":    "The field '%s' must be a valid email address.",
	"url":      "The field '%s' must be a valid URL.",
	"max":      "The field '%s' must be no longer than %s characters.",
	"min":      "The field '%s' must have at least %s entries.",
	"oneof":    "The field '%s' must be one of %s.",
}

func validationErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = err.Error()
		return out
	}
	for _, e := range verrs {
		field := e.Field()
		msg, ok := validationMessages[e.Tag()]
		switch {
		case !ok:
			out[field] = fmt.Sprintf("Field '%s' is invalid: %s", field, e.Tag())
		case strings.Count(msg, "%s") == 2:
			out[field] = fmt.Sprintf(msg, field, e.Param())
		default:
			out[field] = fmt.Sprintf(msg, field)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeServiceError maps service sentinels onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, action string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalid):
		status = http.StatusBadRequest
	default:
		logging.Component("api").WithError(err).Error(action)
	}
	writeError(w, status, "Error trying to "+action+": "+err.Error())
}

// decodeBody reads a JSON body into dst and validates it. On failure the
// response has already been written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error trying to read the body: "+err.Error())
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return false
	}

	if err := validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Validation failed",
			"fields": validationErrors(err),
		})
		return false
	}
	return true
}

// actorID returns the signed-in user's id, answering 401 when it is missing
// or unknown.
func actorID(w http.ResponseWriter, r *http.Request, svc *service.WorkspaceService) (string, bool) {
	id := strings.TrimSpace(r.Header.Get(UserHeader))
	if id == "" {
		writeError(w, http.StatusUnauthorized, "missing "+UserHeader+" header")
		return "", false
	}
	if _, err := svc.User(id); err != nil {
		writeError(w, http.StatusUnauthorized, "unknown user "+id)
		return "", false
	}
	return id, true
}
