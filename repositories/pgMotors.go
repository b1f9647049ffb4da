package repositories

import (
	"context"

	"motor-monitor/db"
	"motor-monitor/entities"
)

type motorPgRepository struct {
	db db.Database
}

func NewMotorPgRepository(database db.Database) MotorRepository {
	return &motorPgRepository{db: database}
}

func (r *motorPgRepository) GetAll(ctx context.Context) ([]entities.Motor, error) {
	var motors []entities.Motor
	err := r.db.Conn(ctx).Order("id ASC").Find(&motors).Error
	return motors, err
}

func (r *motorPgRepository) GetByID(ctx context.Context, id uint) (*entities.Motor, error) {
	var motor entities.Motor
	err := r.db.Conn(ctx).Where("id = ?", id).Take(&motor).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &motor, nil
}

func (r *motorPgRepository) GetByZoneID(ctx context.Context, zoneID uint) ([]entities.Motor, error) {
	var motors []entities.Motor
	err := r.db.Conn(ctx).Where("zone_id = ?", zoneID).Order("id ASC").Find(&motors).Error
	return motors, err
}

func (r *motorPgRepository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.Conn(ctx).Model(&entities.Motor{}).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}
