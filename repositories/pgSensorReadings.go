package repositories

import (
	"context"

	"motor-monitor/db"
	"motor-monitor/entities"
)

type sensorReadingPgRepository struct {
	db db.Database
}

func NewSensorReadingPgRepository(database db.Database) SensorReadingRepository {
	return &sensorReadingPgRepository{db: database}
}

func (r *sensorReadingPgRepository) Latest(ctx context.Context, motorID uint) (*entities.SensorReading, error) {
	var reading entities.SensorReading
	err := r.db.Conn(ctx).
		Where("motor_id = ?", motorID).
		Order("timestamp DESC").
		Order("id DESC").
		Take(&reading).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &reading, nil
}

func (r *sensorReadingPgRepository) LatestPerMotor(ctx context.Context) (map[uint]entities.SensorReading, error) {
	conn := r.db.Conn(ctx)
	newest := conn.Model(&entities.SensorReading{}).
		Select("motor_id, MAX(timestamp) AS ts").
		Group("motor_id")

	var rows []entities.SensorReading
	err := conn.Table("sensor_readings AS sr").
		Select("sr.*").
		Joins("JOIN (?) AS newest ON sr.motor_id = newest.motor_id AND sr.timestamp = newest.ts", newest).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	// two readings can share the newest timestamp; the higher id wins, as in Latest
	latest := make(map[uint]entities.SensorReading, len(rows))
	for _, row := range rows {
		if cur, ok := latest[row.MotorID]; !ok || row.ID > cur.ID {
			latest[row.MotorID] = row
		}
	}
	return latest, nil
}

func (r *sensorReadingPgRepository) CreateBatch(ctx context.Context, readings []entities.SensorReading) error {
	if len(readings) == 0 {
		return nil
	}
	return r.db.Conn(ctx).CreateInBatches(readings, 100).Error
}
