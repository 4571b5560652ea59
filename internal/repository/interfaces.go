package repository

import (
	"context"

	"github.com/vytor/ergolog/internal/models"
)

// WorkoutRepository handles workout data access
type WorkoutRepository interface {
	Get(ctx context.Context, id int64) (*models.Workout, error)
	List(ctx context.Context, filter models.WorkoutFilter) ([]models.Workout, error)
	Count(ctx context.Context, filter models.WorkoutFilter) (int, error)
	Insert(ctx context.Context, workout models.Workout) (int64, error)
	ExistsByCardioLogID(ctx context.Context, cardioLogID string) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// EquipmentRepository handles equipment type data access
type EquipmentRepository interface {
	Get(ctx context.Context, id int64) (*models.EquipmentType, error)
	List(ctx context.Context) ([]models.EquipmentType, error)
	GetOrCreate(ctx context.Context, name string) (*models.EquipmentType, error)
	SetIncludeInTotals(ctx context.Context, id int64, include bool) error
}

// SummaryRepository handles cached period totals
type SummaryRepository interface {
	Totals(ctx context.Context, period models.Period, limit, offset int) ([]models.SummaryRow, error)
	CountTotals(ctx context.Context, period models.Period) (int, error)
	Overall(ctx context.Context) (*models.OverallTotals, error)
	Refresh(ctx context.Context) error
}
