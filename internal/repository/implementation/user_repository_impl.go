package implementation

import (
	"context"
	"errors"

	"photostudio-be/internal/entity"
	"photostudio-be/internal/mapper"
	"photostudio-be/internal/model"
	"photostudio-be/internal/repository/contract"
	"photostudio-be/internal/repository/specification"

	"gorm.io/gorm"
)

type userRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &userRepositoryImpl{db: db, mapper: mapper.NewUserMapper()}
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err, "user")
	}
	user.ID = m.ID
	return nil
}

func (r *userRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
	if err := specification.ApplyAll(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *userRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var models []*model.User
	if err := specification.ApplyAll(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0, len(models))
	for _, m := range models {
		users = append(users, r.mapper.ToEntity(m))
	}
	return users, nil
}
