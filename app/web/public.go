package web

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	leaguedomain "github.com/Black-And-White-Club/citl/app/modules/league/domain"
	scorecarddomain "github.com/Black-And-White-Club/citl/app/modules/scorecard/domain"
)

type indexPage struct {
	Title   string
	Seasons []leaguedomain.Season
}

type seasonPage struct {
	Title  string
	Season *leaguedomain.Season
}

type scorecardPage struct {
	Title string
	View  *scorecarddomain.View
	// Query repeats the variant and key mode on the export and chart links.
	Query template.URL
}

type errorPage struct {
	Title   string
	Status  int
	Message string
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) IndexPage(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.league.ListSeasons(r.Context())
	if err != nil {
		h.renderError(w, r, "ListSeasons", err)
		return
	}
	h.render(w, r, "index.html", indexPage{Title: "Seasons", Seasons: seasons})
}

func (h *Handlers) SeasonPage(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	season, err := h.league.GetSeason(r.Context(), year)
	if err != nil {
		h.renderError(w, r, "GetSeason", err)
		return
	}
	h.render(w, r, "season.html", seasonPage{Title: fmt.Sprintf("%d season", year), Season: season})
}

func (h *Handlers) ScorecardPage(w http.ResponseWriter, r *http.Request) {
	year, team, opts, err := h.scorecardRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	view, err := h.scorecards.GetScorecard(r.Context(), year, team, opts)
	if err != nil {
		h.renderError(w, r, "GetScorecard", err)
		return
	}
	q := url.Values{"variant": {view.Variant}, "key": {view.KeyMode}}
	h.render(w, r, "scorecard.html", scorecardPage{
		Title: fmt.Sprintf("%s %d", view.Team, view.Season),
		View:  view,
		Query: template.URL(q.Encode()),
	})
}

func (h *Handlers) ListSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.league.ListSeasons(r.Context())
	if err != nil {
		h.serviceError(w, r, "ListSeasons", err)
		return
	}
	writeJSON(w, http.StatusOK, seasons)
}

func (h *Handlers) GetSeason(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	season, err := h.league.GetSeason(r.Context(), year)
	if err != nil {
		h.serviceError(w, r, "GetSeason", err)
		return
	}
	writeJSON(w, http.StatusOK, season)
}

func (h *Handlers) GetScorecard(w http.ResponseWriter, r *http.Request) {
	year, team, opts, err := h.scorecardRequest(r)
	if err != nil {
		h.serviceError(w, r, "GetScorecard", err)
		return
	}
	view, err := h.scorecards.GetScorecard(r.Context(), year, team, opts)
	if err != nil {
		h.serviceError(w, r, "GetScorecard", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) ExportScorecard(w http.ResponseWriter, r *http.Request) {
	year, team, opts, err := h.scorecardRequest(r)
	if err != nil {
		h.serviceError(w, r, "ExportXLSX", err)
		return
	}
	data, err := h.scorecards.ExportXLSX(r.Context(), year, team, opts)
	if err != nil {
		h.serviceError(w, r, "ExportXLSX", err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", strconv.Quote(fmt.Sprintf("%s-%d-scorecard.xlsx", team, year))))
	_, _ = w.Write(data)
}

func (h *Handlers) ScorecardChart(w http.ResponseWriter, r *http.Request) {
	year, team, opts, err := h.scorecardRequest(r)
	if err != nil {
		h.serviceError(w, r, "RenderChart", err)
		return
	}
	data, err := h.scorecards.RenderChart(r.Context(), year, team, opts)
	if err != nil {
		h.serviceError(w, r, "RenderChart", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "max-age=60")
	_, _ = w.Write(data)
}
