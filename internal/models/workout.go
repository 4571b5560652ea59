package models

import "time"

type EquipmentType struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	IncludeInTotals bool      `json:"include_in_totals"`
	CreatedAt       time.Time `json:"created_at"`
}

type Workout struct {
	ID                int64     `json:"id"`
	CardioLogID       string    `json:"cardio_log_id"`
	EquipmentTypeID   int64     `json:"equipment_type_id"`
	EquipmentName     string    `json:"equipment_name"`
	Name              string    `json:"name"`
	Date              time.Time `json:"date"`
	TargetDescription string    `json:"target_description"`
	DurationSeconds   float64   `json:"duration_seconds"`
	DistanceMeters    float64   `json:"distance_meters"`
	SplitSeconds      float64   `json:"split_seconds_500m"`
	IsoReps           *int64    `json:"iso_reps,omitempty"`
	Level             *float64  `json:"level,omitempty"`
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
}

type WorkoutFilter struct {
	EquipmentTypeID int64
	From            *time.Time
	To              *time.Time
	Limit           int
	Offset          int
	OrderDir        string
}
