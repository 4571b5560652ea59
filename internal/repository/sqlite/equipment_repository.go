package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/vytor/ergolog/internal/logger"
	"github.com/vytor/ergolog/internal/models"
	"github.com/vytor/ergolog/internal/repository"
)

type equipmentRepository struct {
	db *sql.DB
}

// NewEquipmentRepository creates a new EquipmentRepository implementation
func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Get(ctx context.Context, id int64) (*models.EquipmentType, error) {
	var e models.EquipmentType
	err := r.db.QueryRowContext(ctx, `SELECT id, name, include_in_totals, created_at FROM equipment_types WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.IncludeInTotals, &e.CreatedAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.FromContext(ctx).WithPrefix("equipment_repo").Error("failed to get equipment type: %v", err)
		}
		return nil, err
	}
	return &e, nil
}

func (r *equipmentRepository) List(ctx context.Context) ([]models.EquipmentType, error) {
	log := logger.FromContext(ctx).WithPrefix("equipment_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, include_in_totals, created_at FROM equipment_types ORDER BY name`)
	if err != nil {
		log.Error("failed to list equipment types: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.EquipmentType
	for rows.Next() {
		var e models.EquipmentType
		if err := rows.Scan(&e.ID, &e.Name, &e.IncludeInTotals, &e.CreatedAt); err != nil {
			log.Error("failed to scan equipment type row: %v", err)
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetOrCreate looks an equipment type up by its upper-cased name, creating it when missing.
func (r *equipmentRepository) GetOrCreate(ctx context.Context, name string) (*models.EquipmentType, error) {
	log := logger.FromContext(ctx).WithPrefix("equipment_repo")
	name = strings.ToUpper(strings.TrimSpace(name))
	log.Debug("resolving equipment type: name=%s", name)

	var e models.EquipmentType
	err := r.db.QueryRowContext(ctx, `
INSERT INTO equipment_types (name)
VALUES (?)
ON CONFLICT(name) DO UPDATE SET name = excluded.name
RETURNING id, name, include_in_totals, created_at
`, name).Scan(&e.ID, &e.Name, &e.IncludeInTotals, &e.CreatedAt)
	if err != nil {
		log.Error("failed to upsert equipment type: %v", err)
		return nil, err
	}
	return &e, nil
}

func (r *equipmentRepository) SetIncludeInTotals(ctx context.Context, id int64, include bool) error {
	log := logger.FromContext(ctx).WithPrefix("equipment_repo")
	log.Debug("updating include_in_totals: id=%d, include=%t", id, include)

	res, err := r.db.ExecContext(ctx, `UPDATE equipment_types SET include_in_totals = ? WHERE id = ?`, include, id)
	if err != nil {
		log.Error("failed to update equipment type: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
