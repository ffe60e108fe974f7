package mapper

import (
	"photostudio-be/internal/entity"
	"photostudio-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Mobile:       u.Mobile,
		PasswordHash: u.PasswordHash,
		Role:         entity.UserRole(u.Role),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Mobile:       u.Mobile,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
