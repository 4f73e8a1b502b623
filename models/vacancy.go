package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobfinder/api/data"
)

type Employer struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type Applicant struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type Vacancy struct {
	ID               int64       `json:"id"`
	Title            string      `json:"title"`
	Company          string      `json:"company"`
	Description      string      `json:"description"`
	Requirements     string      `json:"requirements"`
	Responsibilities string      `json:"responsibilities"`
	Keywords         []string    `json:"keywords"`
	Location         string      `json:"location"`
	Lat              float64     `json:"lat"`
	Lng              float64     `json:"lng"`
	SalaryMin        *int        `json:"salaryMin"`
	SalaryMax        *int        `json:"salaryMax"`
	WorkFormat       string      `json:"workFormat"`
	Schedule         string      `json:"schedule"`
	Employer         Employer    `json:"employer"`
	IsActive         bool        `json:"isActive"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
	Applicants       []Applicant `json:"applicants,omitempty"`
}

func FromDataVacancy(v data.Vacancy) Vacancy {
	return Vacancy{
		ID:               v.ID,
		Title:            v.Title,
		Company:          v.Company,
		Description:      v.Description,
		Requirements:     v.Requirements,
		Responsibilities: v.Responsibilities,
		Keywords:         append([]string{}, v.Keywords...),
		Location:         v.Location,
		Lat:              v.Lat,
		Lng:              v.Lng,
		SalaryMin:        v.SalaryMin,
		SalaryMax:        v.SalaryMax,
		WorkFormat:       v.WorkFormat,
		Schedule:         v.Schedule,
		Employer: Employer{
			ID:    v.EmployerID,
			Name:  v.EmployerName,
			Email: v.EmployerEmail,
		},
		IsActive:  v.IsActive,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

type CreateVacancyRequest struct {
	Title            string  `json:"title"`
	Company          string  `json:"company"`
	Description      string  `json:"description"`
	Requirements     string  `json:"requirements"`
	Responsibilities string  `json:"responsibilities"`
	Location         string  `json:"location"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	SalaryMin        *int    `json:"salaryMin"`
	SalaryMax        *int    `json:"salaryMax"`
	WorkFormat       string  `json:"workFormat"`
	Schedule         string  `json:"schedule"`
}

type UpdateVacancyRequest struct {
	Title            string  `json:"title"`
	Company          string  `json:"company"`
	Description      string  `json:"description"`
	Requirements     string  `json:"requirements"`
	Responsibilities string  `json:"responsibilities"`
	Location         string  `json:"location"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	SalaryMin        *int    `json:"salaryMin"`
	SalaryMax        *int    `json:"salaryMax"`
	WorkFormat       string  `json:"workFormat"`
	Schedule         string  `json:"schedule"`
	IsActive         *bool   `json:"isActive"`
}

type NewCountResponse struct {
	NewCount int `json:"newCount"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
