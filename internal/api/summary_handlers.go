package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/ergolog/internal/errors"
	"github.com/vytor/ergolog/internal/logger"
	"github.com/vytor/ergolog/internal/models"
	"github.com/vytor/ergolog/internal/summarychart"
)

const chartContainerID = "summary-chart"

func periodParam(r *http.Request) (models.Period, error) {
	raw := chi.URLParam(r, "period")
	period, ok := models.ParsePeriod(raw)
	if !ok {
		return "", errors.NewNotFoundError("summary period", raw)
	}
	return period, nil
}

// chartQuery carries the page and the replayed interactions of a chart frame.
func chartQuery(r *http.Request, page int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	for _, key := range []string{"from", "to", "solo"} {
		if v := r.URL.Query().Get(key); v != "" {
			q.Set(key, v)
		}
	}
	return q
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	period, err := periodParam(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	page := queryInt(r, "page", 1)

	summary, err := s.Summaries.Page(ctx, period, page, s.perPage())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, summary)
		return
	}
	overall, err := s.Summaries.Overall(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("failed to load overall totals: %v", err)
	}

	s.render(w, r, "pages/summary.html", pageData{
		"title":      period.Heading(),
		"period":     period,
		"periods":    models.Periods,
		"summary":    summary,
		"overall":    overall,
		"kinds":      summarychart.Kinds,
		"chart_url":  fmt.Sprintf("/summary/%s/chart?%s", period, chartQuery(r, summary.Page).Encode()),
		"pagination": pagination{Page: summary.Page, TotalPages: summary.TotalPages, Total: summary.TotalRows},
	})
}

// handleSummaryChart serves the chart of one summary page as a standalone
// document. The zoom window (from, to) and a solo series are replayed on
// the rendered chart.
func (s *Server) handleSummaryChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	period, err := periodParam(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	summary, err := s.Summaries.Page(ctx, period, queryInt(r, "page", 1), s.perPage())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	doc := summarychart.NewPage(chartContainerID)
	c := summary.Chart
	inst := s.Charts.RenderSummaryChart(ctx, doc, chartContainerID,
		c.Categories, c.Meters, c.Seconds, c.Split, c.IsoReps, period.AxisTitle())
	if inst == nil {
		s.render(w, r, "pages/chart.html", pageData{"empty": true})
		return
	}
	if err := inst.Wait(ctx); err != nil {
		log.Warn("summary chart failed: period=%s err=%v", period, err)
		s.render(w, r, "pages/chart.html", pageData{"content": doc.Panel(chartContainerID).Content()})
		return
	}

	q := r.URL.Query()
	from, errFrom := strconv.Atoi(q.Get("from"))
	to, errTo := strconv.Atoi(q.Get("to"))
	if errFrom == nil && errTo == nil {
		inst.Zoomed(from, to)
	}
	if solo := q.Get("solo"); solo != "" {
		kind, err := summarychart.ParseKind(solo)
		if err != nil {
			s.handleError(w, r, errors.NewValidationError("solo", err.Error()))
			return
		}
		inst.LegendClick(kind)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(doc.Panel(chartContainerID).Text()))
}
