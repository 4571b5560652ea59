package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/vytor/ergolog/internal/logger"
	"github.com/vytor/ergolog/internal/models"
	"github.com/vytor/ergolog/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const dateLayout = "2006-01-02"

var workoutColumns = []string{
	"w.id", "w.cardio_log_id", "w.equipment_type_id", "e.name", "w.workout_name", "w.workout_date",
	"w.target_description", "w.duration_seconds", "w.total_distance_meters",
	"w.average_split_seconds_500m", "w.total_isoreps", "w.level", "w.notes", "w.created_at",
}

type workoutRepository struct {
	db *sql.DB
}

// NewWorkoutRepository creates a new WorkoutRepository implementation
func NewWorkoutRepository(db *sql.DB) repository.WorkoutRepository {
	return &workoutRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row rowScanner) (models.Workout, error) {
	var (
		w       models.Workout
		isoReps sql.NullInt64
		level   sql.NullFloat64
	)
	err := row.Scan(&w.ID, &w.CardioLogID, &w.EquipmentTypeID, &w.EquipmentName, &w.Name, &w.Date,
		&w.TargetDescription, &w.DurationSeconds, &w.DistanceMeters, &w.SplitSeconds,
		&isoReps, &level, &w.Notes, &w.CreatedAt)
	if err != nil {
		return w, err
	}
	if isoReps.Valid {
		v := isoReps.Int64
		w.IsoReps = &v
	}
	if level.Valid {
		v := level.Float64
		w.Level = &v
	}
	return w, nil
}

func (r *workoutRepository) baseSelect() squirrel.SelectBuilder {
	return sqlBuilder.Select(workoutColumns...).
		From("workouts w").
		Join("equipment_types e ON e.id = w.equipment_type_id")
}

func applyWorkoutFilter(q squirrel.SelectBuilder, filter models.WorkoutFilter) squirrel.SelectBuilder {
	if filter.EquipmentTypeID != 0 {
		q = q.Where(squirrel.Eq{"w.equipment_type_id": filter.EquipmentTypeID})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"w.workout_date": filter.From.Format(dateLayout)})
	}
	if filter.To != nil {
		q = q.Where(squirrel.LtOrEq{"w.workout_date": filter.To.Format(dateLayout)})
	}
	return q
}

func (r *workoutRepository) Get(ctx context.Context, id int64) (*models.Workout, error) {
	log := logger.FromContext(ctx).WithPrefix("workout_repo")
	log.Debug("getting workout: id=%d", id)

	query, args, err := r.baseSelect().Where(squirrel.Eq{"w.id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	w, err := scanWorkout(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("workout not found: id=%d", id)
		} else {
			log.Error("failed to get workout: %v", err)
		}
		return nil, err
	}
	return &w, nil
}

func (r *workoutRepository) List(ctx context.Context, filter models.WorkoutFilter) ([]models.Workout, error) {
	log := logger.FromContext(ctx).WithPrefix("workout_repo")
	log.Debug("listing workouts: equipment_type_id=%d, limit=%d, offset=%d", filter.EquipmentTypeID, filter.Limit, filter.Offset)

	q := applyWorkoutFilter(r.baseSelect(), filter)

	orderDir := "DESC"
	if filter.OrderDir == "ASC" {
		orderDir = "ASC"
	}
	q = q.OrderBy("w.workout_date "+orderDir, "w.id "+orderDir)

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	q = q.Limit(uint64(limit)).Offset(uint64(offset))

	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list workouts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var workouts []models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			log.Error("failed to scan workout row: %v", err)
			return nil, err
		}
		workouts = append(workouts, w)
	}
	log.Debug("found %d workouts", len(workouts))
	return workouts, rows.Err()
}

func (r *workoutRepository) Count(ctx context.Context, filter models.WorkoutFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("workout_repo")

	q := applyWorkoutFilter(sqlBuilder.Select("COUNT(*)").From("workouts w"), filter)
	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Error("failed to count workouts: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *workoutRepository) Insert(ctx context.Context, w models.Workout) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("workout_repo")
	log.Debug("inserting workout: cardio_log_id=%s, date=%s", w.CardioLogID, w.Date.Format(dateLayout))

	var isoReps, level any
	if w.IsoReps != nil {
		isoReps = *w.IsoReps
	}
	if w.Level != nil {
		level = *w.Level
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO workouts (
    cardio_log_id, equipment_type_id, workout_name, workout_date, target_description,
    duration_seconds, total_distance_meters, average_split_seconds_500m, total_isoreps, level, notes
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, w.CardioLogID, w.EquipmentTypeID, w.Name, w.Date.Format(dateLayout), w.TargetDescription,
		w.DurationSeconds, w.DistanceMeters, w.SplitSeconds, isoReps, level, w.Notes)
	if err != nil {
		log.Error("failed to insert workout: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("workout inserted: id=%d", id)
	return id, nil
}

func (r *workoutRepository) ExistsByCardioLogID(ctx context.Context, cardioLogID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM workouts WHERE cardio_log_id = ?`, cardioLogID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		logger.FromContext(ctx).WithPrefix("workout_repo").Error("failed to look up cardio log id: %v", err)
		return false, err
	}
	return true, nil
}

func (r *workoutRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("workout_repo")
	log.Debug("deleting workout: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete workout: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
