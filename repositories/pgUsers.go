package repositories

import (
	"context"
	"errors"

	"motor-monitor/db"
	"motor-monitor/entities"

	"gorm.io/gorm"
)

type userPgRepository struct {
	db db.Database
}

func NewUserPgRepository(database db.Database) UserRepository {
	return &userPgRepository{db: database}
}

func (r *userPgRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Conn(ctx).Where("username = ?", username).Take(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userPgRepository) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.Conn(ctx).Where("id = ?", id).Take(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// notFound maps gorm's sentinel onto ErrNotFound and passes everything else through.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
