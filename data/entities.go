package data

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	RoleJobseeker = "jobseeker"
	RoleEmployer  = "employer"
)

type User struct {
	ID               uuid.UUID      `db:"id"`
	Name             string         `db:"name"`
	Email            string         `db:"email"`
	PasswordHash     string         `db:"password_hash"`
	Role             string         `db:"role"`
	Interests        pq.StringArray `db:"interests"`
	LastVacancyCheck time.Time      `db:"last_vacancy_check"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

type Vacancy struct {
	ID               int64          `db:"id"`
	Title            string         `db:"title"`
	Company          string         `db:"company"`
	Description      string         `db:"description"`
	Requirements     string         `db:"requirements"`
	Responsibilities string         `db:"responsibilities"`
	Keywords         pq.StringArray `db:"keywords"`
	Location         string         `db:"location"`
	Lat              float64        `db:"lat"`
	Lng              float64        `db:"lng"`
	SalaryMin        *int           `db:"salary_min"`
	SalaryMax        *int           `db:"salary_max"`
	WorkFormat       string         `db:"work_format"`
	Schedule         string         `db:"schedule"`
	EmployerID       uuid.UUID      `db:"employer_id"`
	IsActive         bool           `db:"is_active"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`

	// Populated by joins, not columns of the vacancies table.
	EmployerName  string `db:"employer_name"`
	EmployerEmail string `db:"employer_email"`
}

type Conversation struct {
	ID            int64     `db:"id"`
	VacancyID     *int64    `db:"vacancy_id"`
	LastMessageID *int64    `db:"last_message_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type Message struct {
	ID             int64     `db:"id"`
	ConversationID int64     `db:"conversation_id"`
	SenderID       uuid.UUID `db:"sender_id"`
	Content        string    `db:"content"`
	CreatedAt      time.Time `db:"created_at"`

	SenderName  string `db:"sender_name"`
	SenderEmail string `db:"sender_email"`
}
