package repositories

import (
	"context"

	"motor-monitor/db"
	"motor-monitor/entities"
)

type zonePgRepository struct {
	db db.Database
}

func NewZonePgRepository(database db.Database) ZoneRepository {
	return &zonePgRepository{db: database}
}

func (r *zonePgRepository) GetAll(ctx context.Context) ([]entities.Zone, error) {
	var zones []entities.Zone
	err := r.db.Conn(ctx).Order("id ASC").Find(&zones).Error
	return zones, err
}
