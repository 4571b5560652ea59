package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/coocood/freecache"

	"github.com/vytor/ergolog/internal/errors"
	"github.com/vytor/ergolog/internal/logger"
	"github.com/vytor/ergolog/internal/models"
	"github.com/vytor/ergolog/internal/repository"
)

// SummaryService handles period totals and the chart data built from them
type SummaryService interface {
	Page(ctx context.Context, period models.Period, page, perPage int) (*models.SummaryPage, error)
	Overall(ctx context.Context) (*models.OverallTotals, error)
	RefreshSummaries(ctx context.Context) error
}

type summaryService struct {
	repo       repository.SummaryRepository
	cache      *freecache.Cache
	ttlSeconds int
}

// NewSummaryService creates a new SummaryService. A nil cache disables caching.
func NewSummaryService(repo repository.SummaryRepository, cache *freecache.Cache, ttlSeconds int) SummaryService {
	return &summaryService{repo: repo, cache: cache, ttlSeconds: ttlSeconds}
}

func summaryCacheKey(period models.Period, page, perPage int) []byte {
	return []byte(fmt.Sprintf("summary::%s::%d::%d", period, page, perPage))
}

func (s *summaryService) Page(ctx context.Context, period models.Period, page, perPage int) (*models.SummaryPage, error) {
	log := logger.FromContext(ctx)
	if _, ok := models.ParsePeriod(string(period)); !ok {
		return nil, errors.NewValidationError("period", fmt.Sprintf("unknown period %q", period))
	}
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 50
	}
	log.Debug("getting summary page: period=%s, page=%d, per_page=%d", period, page, perPage)

	key := summaryCacheKey(period, page, perPage)
	if s.cache != nil {
		if raw, err := s.cache.Get(key); err == nil {
			var cached models.SummaryPage
			if err := json.Unmarshal(raw, &cached); err == nil {
				log.Debug("summary page served from cache")
				return &cached, nil
			}
			log.Warn("failed to decode cached summary page: %v", err)
		}
	}

	total, err := s.repo.CountTotals(ctx, period)
	if err != nil {
		log.Error("failed to count summary rows: %v", err)
		return nil, errors.NewInternalError(err)
	}
	rows, err := s.repo.Totals(ctx, period, perPage, (page-1)*perPage)
	if err != nil {
		log.Error("failed to get summary rows: %v", err)
		return nil, errors.NewInternalError(err)
	}

	result := &models.SummaryPage{
		Period:     period,
		Rows:       rows,
		Page:       page,
		PerPage:    perPage,
		TotalRows:  total,
		TotalPages: totalPages(total, perPage),
		Chart:      chartData(rows),
	}

	if s.cache != nil {
		if raw, err := json.Marshal(result); err != nil {
			log.Warn("failed to encode summary page for cache: %v", err)
		} else if err := s.cache.Set(key, raw, s.ttlSeconds); err != nil {
			log.Warn("failed to cache summary page: %v", err)
		}
	}
	return result, nil
}

func (s *summaryService) Overall(ctx context.Context) (*models.OverallTotals, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting overall totals")

	totals, err := s.repo.Overall(ctx)
	if err != nil {
		log.Error("failed to get overall totals: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return totals, nil
}

// RefreshSummaries rebuilds the totals tables and drops every cached page.
func (s *summaryService) RefreshSummaries(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if err := s.repo.Refresh(ctx); err != nil {
		log.Error("failed to refresh summaries: %v", err)
		return errors.NewInternalError(err)
	}
	if s.cache != nil {
		s.cache.Clear()
	}
	log.Info("summaries refreshed")
	return nil
}

func totalPages(total, perPage int) int {
	if total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// chartData lays rows out oldest first. Rows arrive newest first.
func chartData(rows []models.SummaryRow) models.ChartData {
	n := len(rows)
	data := models.ChartData{
		Categories: make([]string, n),
		Meters:     make([]*float64, n),
		Seconds:    make([]*float64, n),
		Split:      make([]*float64, n),
		IsoReps:    make([]*float64, n),
	}
	for i, row := range rows {
		j := n - 1 - i
		data.Categories[j] = row.Label
		data.Meters[j] = finite(row.TotalMeters)
		data.Seconds[j] = finite(row.TotalSeconds)
		if row.SplitSeconds > 0 {
			data.Split[j] = finite(row.SplitSeconds)
		}
		data.IsoReps[j] = finite(row.TotalIsoReps)
	}
	return data
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
