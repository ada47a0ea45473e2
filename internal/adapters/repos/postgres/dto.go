package postgres

import (
	"time"

	"github.com/google/uuid"

	"gitlab.com/verigate/verigate-backend/internal/domain/user"
	"gitlab.com/verigate/verigate-backend/internal/domain/verification"
)

type UserDTO struct {
	ID         uuid.UUID
	Email      string
	Phone      string
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type AuthCodeDTO struct {
	ID        int64
	UserID    uuid.UUID
	Code      string
	CreatedAt time.Time
}

func DomainToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:         uuid.UUID(u.ID()),
		Email:      u.Email(),
		Phone:      u.Phone(),
		IsVerified: u.IsVerified(),
		CreatedAt:  u.CreatedAt(),
		UpdatedAt:  u.UpdatedAt(),
	}
}

func UserToDomain(dto UserDTO) *user.User {
	return user.Rehydrate(user.RehydrateArgs{
		ID:        user.ID(dto.ID),
		Email:     dto.Email,
		Phone:     dto.Phone,
		Verified:  dto.IsVerified,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}

func DomainToAuthCodeDTO(c *verification.AuthCode) AuthCodeDTO {
	return AuthCodeDTO{
		UserID:    uuid.UUID(c.UserID()),
		Code:      c.Code(),
		CreatedAt: c.CreatedAt(),
	}
}

func AuthCodeToDomain(dto AuthCodeDTO) *verification.AuthCode {
	return verification.Rehydrate(verification.RehydrateArgs{
		UserID:    user.ID(dto.UserID),
		Code:      dto.Code,
		CreatedAt: dto.CreatedAt,
	})
}
