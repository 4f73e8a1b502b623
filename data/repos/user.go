package repos

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jobfinder/api/data"
)

type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db}
}

func (r *UserRepo) InsertUser(user data.User) (uuid.UUID, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES (:id, :name, :email, :password_hash, :role)
		RETURNING id`

	rows, err := r.db.NamedQuery(query, user)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert user: %w", err)
	}
	defer rows.Close()

	var id uuid.UUID
	if rows.Next() {
		err = rows.Scan(&id)
		if err != nil {
			return uuid.Nil, fmt.Errorf("scan returned id: %w", err)
		}
	}

	return id, nil
}

func (r *UserRepo) GetUserByID(id uuid.UUID) (*data.User, error) {
	var user data.User
	query := "SELECT * FROM users WHERE id = $1"
	err := r.db.Get(&user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

func (r *UserRepo) GetUserByEmail(email string) (*data.User, error) {
	var user data.User
	query := "SELECT * FROM users WHERE email = $1"
	err := r.db.Get(&user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *UserRepo) GetUsersByRole(role string) ([]data.User, error) {
	var users []data.User
	query := `
		SELECT id, name, email, role, interests, last_vacancy_check, created_at, updated_at
		FROM users
		WHERE role = $1`

	err := r.db.Select(&users, query, role)
	if err != nil {
		return nil, fmt.Errorf("get users by role: %w", err)
	}

	return users, nil
}

func (r *UserRepo) UpdateInterests(id uuid.UUID, interests []string) error {
	query := "UPDATE users SET interests = $2, updated_at = now() WHERE id = $1"
	_, err := r.db.Exec(query, id, pq.StringArray(interests))
	if err != nil {
		return fmt.Errorf("update interests: %w", err)
	}

	return nil
}

func (r *UserRepo) UpdateLastVacancyCheck(id uuid.UUID, checkedAt time.Time) error {
	query := "UPDATE users SET last_vacancy_check = $2, updated_at = now() WHERE id = $1"
	_, err := r.db.Exec(query, id, checkedAt)
	if err != nil {
		return fmt.Errorf("update last vacancy check: %w", err)
	}

	return nil
}
