// Package web serves the league's public scorecard pages, the JSON API and
// the admin endpoints.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	leagueservice "github.com/Black-And-White-Club/citl/app/modules/league/application"
	scoreservice "github.com/Black-And-White-Club/citl/app/modules/score/application"
	scorecardservice "github.com/Black-And-White-Club/citl/app/modules/scorecard/application"
	scorecarddomain "github.com/Black-And-White-Club/citl/app/modules/scorecard/domain"
	"github.com/Black-And-White-Club/citl/internal/attr"
)

//go:embed templates/*.html
var templateFS embed.FS

// maxUpload caps score sheet uploads.
const maxUpload = 5 << 20

// Handlers serves every route.
type Handlers struct {
	league     leagueservice.Service
	scores     scoreservice.Service
	scorecards scorecardservice.Service
	pages      *template.Template
	logger     *slog.Logger
	now        func() time.Time
}

func NewHandlers(
	league leagueservice.Service,
	scores scoreservice.Service,
	scorecards scorecardservice.Service,
	logger *slog.Logger,
) (*Handlers, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pages, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Handlers{
		league:     league,
		scores:     scores,
		scorecards: scorecards,
		pages:      pages,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// serviceError logs err and writes its mapped status. Internal errors are
// not echoed to the client.
func (h *Handlers) serviceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, op+" failed", attr.ExtractCorrelationID(ctx), attr.Error(err))
		writeError(w, status, http.StatusText(status))
		return
	}
	h.logger.WarnContext(ctx, op+" rejected", attr.ExtractCorrelationID(ctx), attr.Int("status", status), attr.Error(err))
	writeError(w, status, err.Error())
}

// render executes a page template into a buffer so a template failure can
// still produce a clean 500.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "Template render failed", attr.String("template", name), attr.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// renderError shows a service error as an HTML page.
func (h *Handlers) renderError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), op+" failed", attr.ExtractCorrelationID(r.Context()), attr.Error(err))
		msg = http.StatusText(status)
	}
	var buf bytes.Buffer
	if tErr := h.pages.ExecuteTemplate(&buf, "error.html", errorPage{Title: http.StatusText(status), Status: status, Message: msg}); tErr != nil {
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParam, err)
	}
	return nil
}

// yearParam reads the {year} path segment.
func yearParam(r *http.Request) (int, error) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 {
		return 0, fmt.Errorf("%w: season %q", errInvalidParam, chi.URLParam(r, "year"))
	}
	return year, nil
}

// scorecardRequest reads the season, team and options of a scorecard route.
func (h *Handlers) scorecardRequest(r *http.Request) (int, string, scorecarddomain.Options, error) {
	year, err := yearParam(r)
	if err != nil {
		return 0, "", scorecarddomain.Options{}, err
	}
	q := r.URL.Query()
	opts, err := h.scorecards.Options(q.Get("variant"), q.Get("key"))
	if err != nil {
		return 0, "", scorecarddomain.Options{}, err
	}
	return year, chi.URLParam(r, "team"), opts, nil
}
