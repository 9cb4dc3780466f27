package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/langchou/mallpark/internal/models"
)

// VehicleRepository 车辆数据仓库
type VehicleRepository struct {
	q querier
}

// FindByPlate 按车牌查找车辆
func (r *VehicleRepository) FindByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{}
	err := r.q.QueryRow(ctx,
		`SELECT id, number_plate, vehicle_type FROM vehicles WHERE number_plate = $1`,
		plate,
	).Scan(&vehicle.ID, &vehicle.NumberPlate, &vehicle.VehicleType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find vehicle by plate: %w", err)
	}
	return vehicle, nil
}

// Create 创建车辆记录
func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO vehicles (number_plate, vehicle_type) VALUES ($1, $2) RETURNING id`,
		vehicle.NumberPlate, vehicle.VehicleType,
	).Scan(&vehicle.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}
