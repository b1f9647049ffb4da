package usecases

import (
	"context"

	"motor-monitor/entities"
	"motor-monitor/repositories"
)

type fakeZones struct{ zones []entities.Zone }

func (f *fakeZones) GetAll(context.Context) ([]entities.Zone, error) { return f.zones, nil }

type fakeMotors struct{ motors []entities.Motor }

func (f *fakeMotors) GetAll(context.Context) ([]entities.Motor, error) { return f.motors, nil }

func (f *fakeMotors) GetByID(_ context.Context, id uint) (*entities.Motor, error) {
	for _, m := range f.motors {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeMotors) GetByZoneID(_ context.Context, zoneID uint) ([]entities.Motor, error) {
	var out []entities.Motor
	for _, m := range f.motors {
		if m.ZoneID == zoneID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMotors) ListIDs(context.Context) ([]uint, error) {
	ids := make([]uint, 0, len(f.motors))
	for _, m := range f.motors {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

type fakeReadings struct {
	latest        map[uint]entities.SensorReading
	err           error
	latestCalls   int
	perMotorCalls int
}

func (f *fakeReadings) Latest(_ context.Context, motorID uint) (*entities.SensorReading, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.latestCalls++
	r, ok := f.latest[motorID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &r, nil
}

func (f *fakeReadings) LatestPerMotor(context.Context) (map[uint]entities.SensorReading, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.perMotorCalls++
	return f.latest, nil
}

func (f *fakeReadings) CreateBatch(context.Context, []entities.SensorReading) error { return nil }

type fakeUsers struct{ users map[string]entities.User }

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*entities.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uint) (*entities.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}
