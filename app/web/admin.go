package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	leaguedomain "github.com/Black-And-White-Club/citl/app/modules/league/domain"
	scoreservice "github.com/Black-And-White-Club/citl/app/modules/score/application"
	scoredomain "github.com/Black-And-White-Club/citl/app/modules/score/domain"
)

type teamRequest struct {
	Name string `json:"name"`
}

type teamsRequest struct {
	Names []string `json:"names"`
}

// shooterRequest carries the match date as typed so natural dates work.
type shooterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	TeamName  string `json:"team"`
	Rookie    bool   `json:"rookie"`
	Guest     bool   `json:"guest"`
	Captain   bool   `json:"captain"`
	MatchDate string `json:"match_date"`
}

type scoresRequest struct {
	MatchDate string                         `json:"match_date"`
	Week      int                            `json:"week"`
	Entries   []scoredomain.WeeklyScoreEntry `json:"entries"`
}

func (h *Handlers) parseDate(input string) (time.Time, error) {
	return scoreservice.ParseMatchDate(input, h.now())
}

func (h *Handlers) toRegistration(req shooterRequest) (leaguedomain.ShooterRegistration, error) {
	date, err := h.parseDate(req.MatchDate)
	if err != nil {
		return leaguedomain.ShooterRegistration{}, err
	}
	return leaguedomain.ShooterRegistration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		TeamName:  req.TeamName,
		Rookie:    req.Rookie,
		Guest:     req.Guest,
		Captain:   req.Captain,
		MatchDate: date,
	}, nil
}

func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.league.Overview(r.Context())
	if err != nil {
		h.serviceError(w, r, "Overview", err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *Handlers) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.serviceError(w, r, "CreateTeam", err)
		return
	}
	team, err := h.league.CreateTeam(r.Context(), req.Name)
	if err != nil {
		h.serviceError(w, r, "CreateTeam", err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

func (h *Handlers) CreateTeams(w http.ResponseWriter, r *http.Request) {
	var req teamsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.serviceError(w, r, "CreateTeams", err)
		return
	}
	res, err := h.league.CreateTeams(r.Context(), req.Names)
	if err != nil {
		h.serviceError(w, r, "CreateTeams", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) RegisterShooter(w http.ResponseWriter, r *http.Request) {
	var req shooterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.serviceError(w, r, "RegisterShooter", err)
		return
	}
	reg, err := h.toRegistration(req)
	if err != nil {
		h.serviceError(w, r, "RegisterShooter", err)
		return
	}
	shooter, err := h.league.RegisterShooter(r.Context(), reg)
	if err != nil {
		h.serviceError(w, r, "RegisterShooter", err)
		return
	}
	writeJSON(w, http.StatusCreated, shooter)
}

func (h *Handlers) RegisterShooters(w http.ResponseWriter, r *http.Request) {
	var req []shooterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.serviceError(w, r, "RegisterShooters", err)
		return
	}
	regs := make([]leaguedomain.ShooterRegistration, 0, len(req))
	for _, sr := range req {
		reg, err := h.toRegistration(sr)
		if err != nil {
			h.serviceError(w, r, "RegisterShooters", err)
			return
		}
		regs = append(regs, reg)
	}
	res, err := h.league.RegisterShooters(r.Context(), regs)
	if err != nil {
		h.serviceError(w, r, "RegisterShooters", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ScoreSheet returns the blank weekly entry sheet. ?season defaults to the
// current year.
func (h *Handlers) ScoreSheet(w http.ResponseWriter, r *http.Request) {
	season := h.now().Year()
	if v := r.URL.Query().Get("season"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid season")
			return
		}
		season = n
	}
	sheet, err := h.scores.EntrySheet(r.Context(), chi.URLParam(r, "team"), season)
	if err != nil {
		h.serviceError(w, r, "EntrySheet", err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

func (h *Handlers) RecordScores(w http.ResponseWriter, r *http.Request) {
	var req scoresRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.serviceError(w, r, "RecordWeeklyScores", err)
		return
	}
	date, err := h.parseDate(req.MatchDate)
	if err != nil {
		h.serviceError(w, r, "RecordWeeklyScores", err)
		return
	}
	res, err := h.scores.RecordWeeklyScores(r.Context(), scoredomain.WeeklyScoresRequest{
		TeamName:  chi.URLParam(r, "team"),
		MatchDate: date,
		Week:      req.Week,
		Entries:   req.Entries,
	})
	if err != nil {
		h.serviceError(w, r, "RecordWeeklyScores", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ImportScores accepts a multipart upload: "file" is the CSV or XLSX sheet
// and "match_date" dates rows that carry no date of their own.
func (h *Handlers) ImportScores(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "expected a multipart upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			writeError(w, http.StatusBadRequest, "missing file")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	date, err := h.parseDate(r.FormValue("match_date"))
	if err != nil {
		h.serviceError(w, r, "ImportScores", err)
		return
	}

	res, err := h.scores.ImportScores(r.Context(), chi.URLParam(r, "team"), header.Filename, data, date)
	if err != nil {
		h.serviceError(w, r, "ImportScores", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
