package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-engine/internal/domain/domainerr"
	"github.com/riskibarqy/league-engine/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "league-engine"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalErrorMapping = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// errorRules are checked in order; the first match wins.
var errorRules = []struct {
	match  func(error) bool
	mapped mappedError
}{
	{isErr(usecase.ErrInvalidInput), mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{isErr(usecase.ErrNotFound), mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{isErr(usecase.ErrUnauthorized), mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{isErr(usecase.ErrDependencyUnavailable), mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
	{isErr(usecase.ErrSeasonClosed), mappedError{http.StatusConflict, "seasonClosed", "FAILED_PRECONDITION"}},
	{isErr(usecase.ErrPreconditionFailed), mappedError{http.StatusConflict, "preconditionFailed", "FAILED_PRECONDITION"}},
	{isKind(domainerr.KindConfiguration), mappedError{http.StatusUnprocessableEntity, "invalidConfiguration", "FAILED_PRECONDITION"}},
	{isKind(domainerr.KindInsufficientData), mappedError{http.StatusConflict, "insufficientData", "FAILED_PRECONDITION"}},
	{isKind(domainerr.KindInconsistentState), mappedError{http.StatusConflict, "inconsistentState", "ABORTED"}},
}

func isErr(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

func isKind(kind domainerr.Kind) func(error) bool {
	return func(err error) bool { return domainerr.KindOf(err) == kind }
}

func mapError(err error) mappedError {
	for _, rule := range errorRules {
		if rule.match(err) {
			return rule.mapped
		}
	}
	return internalErrorMapping
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, googleResponseEnvelope{APIVersion: googleAPIVersion, Data: data})
}

func writeError(_ context.Context, w http.ResponseWriter, err error) {
	writeMapped(w, mapError(err), err.Error())
}

// writeInternalError hides the cause; it is used after a recovered panic.
func writeInternalError(_ context.Context, w http.ResponseWriter) {
	writeMapped(w, internalErrorMapping, "internal server error")
}

func writeMapped(w http.ResponseWriter, mapped mappedError, message string) {
	writeJSON(w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors:  []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}},
		},
	})
}
