package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vytor/ergolog/internal/logger"
	"github.com/vytor/ergolog/internal/models"
	"github.com/vytor/ergolog/internal/repository"
)

// periodStart maps each period to the SQLite expression for the first day of
// its bucket. Weeks start on Monday.
var periodStart = map[models.Period]string{
	models.PeriodDay:   "date(w.workout_date)",
	models.PeriodWeek:  "date(w.workout_date, 'weekday 0', '-6 days')",
	models.PeriodMonth: "date(w.workout_date, 'start of month')",
	models.PeriodYear:  "date(w.workout_date, 'start of year')",
}

type summaryRepository struct {
	db *sql.DB
}

// NewSummaryRepository creates a new SummaryRepository implementation
func NewSummaryRepository(db *sql.DB) repository.SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) Totals(ctx context.Context, period models.Period, limit, offset int) ([]models.SummaryRow, error) {
	log := logger.FromContext(ctx).WithPrefix("summary_repo")
	log.Debug("getting totals: period=%s, limit=%d, offset=%d", period, limit, offset)

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query, args, err := sqlBuilder.
		Select("period_start", "workouts", "total_meters", "total_seconds", "split_seconds", "total_isoreps").
		From("summary_totals_cache").
		Where(squirrel.Eq{"period": string(period)}).
		OrderBy("period_start DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query totals: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.SummaryRow
	for rows.Next() {
		row := models.SummaryRow{Period: period}
		if err := rows.Scan(&row.Start, &row.Workouts, &row.TotalMeters, &row.TotalSeconds, &row.SplitSeconds, &row.TotalIsoReps); err != nil {
			log.Error("failed to scan totals row: %v", err)
			return nil, err
		}
		row.Label = period.Label(row.Start)
		out = append(out, row)
	}
	log.Debug("found %d %s rows", len(out), period)
	return out, rows.Err()
}

func (r *summaryRepository) CountTotals(ctx context.Context, period models.Period) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM summary_totals_cache WHERE period = ?`, string(period)).Scan(&count)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("summary_repo").Error("failed to count totals: %v", err)
	}
	return count, err
}

func (r *summaryRepository) Overall(ctx context.Context) (*models.OverallTotals, error) {
	log := logger.FromContext(ctx).WithPrefix("summary_repo")

	var t models.OverallTotals
	err := r.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(workouts), 0),
       COALESCE(SUM(total_meters), 0),
       COALESCE(SUM(total_seconds), 0),
       COALESCE(SUM(total_isoreps), 0)
FROM summary_totals_cache
WHERE period = 'year'
`).Scan(&t.Workouts, &t.TotalMeters, &t.TotalSeconds, &t.TotalIsoReps)
	if err != nil {
		log.Error("failed to get overall totals: %v", err)
		return nil, err
	}
	if t.TotalMeters > 0 {
		t.SplitSeconds = t.TotalSeconds / (t.TotalMeters / 500)
	}
	return &t, nil
}

// Refresh rebuilds every period's totals from the workouts of equipment
// types that count towards totals.
func (r *summaryRepository) Refresh(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("summary_repo")
	log.Debug("refreshing summary totals cache")

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM summary_totals_cache`); err != nil {
			return err
		}
		for _, period := range models.Periods {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf(`
INSERT INTO summary_totals_cache (period, period_start, workouts, total_meters, total_seconds, split_seconds, total_isoreps)
SELECT ?,
       %[1]s AS bucket,
       COUNT(*),
       COALESCE(SUM(w.total_distance_meters), 0),
       COALESCE(SUM(w.duration_seconds), 0),
       CASE WHEN SUM(w.total_distance_meters) > 0
            THEN SUM(w.duration_seconds) / (SUM(w.total_distance_meters) / 500.0)
            ELSE 0 END,
       COALESCE(SUM(w.total_isoreps), 0)
FROM workouts w
JOIN equipment_types e ON e.id = w.equipment_type_id
WHERE e.include_in_totals = 1
GROUP BY bucket
`, periodStart[period]), string(period)); err != nil {
				log.Error("failed to refresh %s totals: %v", period, err)
				return err
			}
		}
		return nil
	})
}
