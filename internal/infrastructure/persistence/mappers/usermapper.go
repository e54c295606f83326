package mappers

import (
	"fmt"

	"iops/internal/domain/user"
	vo "iops/internal/domain/user/valueobjects"
	"iops/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between the user domain entity and its
// persistence model.
type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) (*models.UserModel, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create email value object: %w", err)
	}

	// The stored tier string is carried through unvalidated; quota lookups
	// apply the free fallback for values the code no longer recognizes.
	entity, err := user.Reconstruct(
		model.ID,
		email,
		model.Username,
		model.PasswordHash,
		vo.Tier(model.Tier),
		user.Role(model.Role),
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user entity: %w", err)
	}

	return entity, nil
}

func (m *UserMapperImpl) ToModel(entity *user.User) (*models.UserModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.UserModel{
		ID:           entity.ID(),
		Email:        entity.Email().String(),
		Username:     entity.Username(),
		PasswordHash: entity.PasswordHash(),
		Tier:         entity.Tier().String(),
		Role:         string(entity.Role()),
		IsActive:     entity.IsActive(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}, nil
}
