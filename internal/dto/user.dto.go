package dto

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

type UserDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	GuardianEmail *string   `json:"guardian_email,omitempty"`
}

func FromUser(u models.User) UserDTO {
	return UserDTO{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		GuardianEmail: u.GuardianEmail,
	}
}
