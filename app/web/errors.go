package web

import (
	"encoding/json"
	"errors"
	"net/http"

	leaguedomain "github.com/Black-And-White-Club/citl/app/modules/league/domain"
	scoredomain "github.com/Black-And-White-Club/citl/app/modules/score/domain"
	scorecarddomain "github.com/Black-And-White-Club/citl/app/modules/scorecard/domain"
)

// errInvalidParam marks malformed path, query or body input.
var errInvalidParam = errors.New("invalid request")

var (
	badRequest = []error{
		errInvalidParam,
		leaguedomain.ErrTeamNameRequired,
		leaguedomain.ErrShooterNameRequired,
		scoredomain.ErrInvalidWeek,
		scoredomain.ErrInvalidScore,
		scoredomain.ErrNoEntries,
		scoredomain.ErrInvalidMatchDate,
		scoredomain.ErrInvalidSheet,
		scorecarddomain.ErrInvalidOptions,
	}
	notFound = []error{
		leaguedomain.ErrTeamNotFound,
		leaguedomain.ErrSeasonNotFound,
		scoredomain.ErrTeamNotFound,
		scorecarddomain.ErrScorecardNotFound,
	}
	conflict = []error{
		leaguedomain.ErrTeamExists,
		leaguedomain.ErrShooterExists,
	}
)

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case isAny(err, badRequest):
		return http.StatusBadRequest
	case isAny(err, notFound):
		return http.StatusNotFound
	case isAny(err, conflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
