package db

import (
	"context"
	"fmt"
	"log/slog"

	"motor-monitor/entities"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	username, password, email, role string
}

var seedUsers = []seedUser{
	{"admin", "admin123", "admin@example.com", entities.RoleAdministrator},
	{"operator", "operator123", "operator@example.com", entities.RoleOperator},
}

var seedMotors = []entities.Motor{
	{MotorName: "Motor A-1", MotorType: "AC Induction", RatedPowerKW: 5.5},
	{MotorName: "Motor A-2", MotorType: "DC Brushless", RatedPowerKW: 7.5},
	{MotorName: "Motor A-3", MotorType: "AC Induction", RatedPowerKW: 10.0},
	{MotorName: "Motor A-4", MotorType: "DC Brushless", RatedPowerKW: 3.0},
	{MotorName: "Motor A-5", MotorType: "AC Induction", RatedPowerKW: 15.0},
}

// Seed inserts the two operator accounts, one zone and its five motors.
// It does nothing when users already exist.
func Seed(ctx context.Context, database Database) error {
	var count int64
	if err := database.Conn(ctx).Model(&entities.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		slog.Debug("seed skipped, users already present", "users", count)
		return nil
	}

	return database.Conn(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range seedUsers {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", u.username, err)
			}
			user := entities.User{Username: u.username, Password: string(hash), Email: u.email, Role: u.role}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", u.username, err)
			}
		}

		zone := entities.Zone{ZoneName: "Assembly Line 1", Location: "Building A, Floor 1"}
		if err := tx.Create(&zone).Error; err != nil {
			return fmt.Errorf("seed zone: %w", err)
		}

		motors := make([]entities.Motor, len(seedMotors))
		copy(motors, seedMotors)
		for i := range motors {
			motors[i].ZoneID = zone.ID
		}
		if err := tx.Create(&motors).Error; err != nil {
			return fmt.Errorf("seed motors: %w", err)
		}

		slog.Info("seeded database", "users", len(seedUsers), "zones", 1, "motors", len(motors))
		return nil
	})
}
