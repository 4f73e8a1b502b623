package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobfinder/api/data"
)

type User struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	Interests        []string  `json:"interests"`
	LastVacancyCheck time.Time `json:"lastVacancyCheck"`
	CreatedAt        time.Time `json:"createdAt"`
}

func FromDataUser(u data.User) User {
	return User{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		Interests:        append([]string{}, u.Interests...),
		LastVacancyCheck: u.LastVacancyCheck,
		CreatedAt:        u.CreatedAt,
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateInterestsRequest struct {
	Interests []string `json:"interests"`
}

type UpdateInterestsResponse struct {
	Message   string   `json:"message"`
	Interests []string `json:"interests"`
}

type KeywordsResponse struct {
	Keywords []string `json:"keywords"`
}
