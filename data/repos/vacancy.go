package repos

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jobfinder/api/data"
)

type VacancyRepo struct {
	db *sqlx.DB
}

func NewVacancyRepo(db *sqlx.DB) *VacancyRepo {
	return &VacancyRepo{db}
}

// VacancyFilter narrows the active vacancy listing. Zero values mean "no filter".
type VacancyFilter struct {
	SalaryMin  *int
	SalaryMax  *int
	WorkFormat string
	Schedule   string
	Location   string
}

const vacancyColumns = `
	v.id, v.title, v.company, v.description, v.requirements, v.responsibilities,
	v.keywords, v.location, v.lat, v.lng, v.salary_min, v.salary_max,
	v.work_format, v.schedule, v.employer_id, v.is_active, v.created_at, v.updated_at,
	u.name AS employer_name, u.email AS employer_email`

func (r *VacancyRepo) CreateVacancy(v data.Vacancy) (*data.Vacancy, error) {
	query := `
		INSERT INTO vacancies
			(title, company, description, requirements, responsibilities, keywords,
			 location, lat, lng, salary_min, salary_max, work_format, schedule, employer_id)
		VALUES
			(:title, :company, :description, :requirements, :responsibilities, :keywords,
			 :location, :lat, :lng, :salary_min, :salary_max, :work_format, :schedule, :employer_id)
		RETURNING id`

	rows, err := r.db.NamedQuery(query, v)
	if err != nil {
		return nil, fmt.Errorf("create vacancy: %w", err)
	}
	defer rows.Close()

	var id int64
	if rows.Next() {
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan returned id: %w", err)
		}
	}

	return r.GetVacancyByID(id)
}

func (r *VacancyRepo) GetVacancyByID(id int64) (*data.Vacancy, error) {
	var v data.Vacancy
	query := `
		SELECT ` + vacancyColumns + `
		FROM vacancies v
		JOIN users u ON u.id = v.employer_id
		WHERE v.id = $1`

	err := r.db.Get(&v, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vacancy by id: %w", err)
	}

	return &v, nil
}

func (r *VacancyRepo) FindActive(filter VacancyFilter) ([]data.Vacancy, error) {
	conditions := []string{"v.is_active = true"}
	args := []interface{}{}

	if filter.SalaryMin != nil {
		args = append(args, *filter.SalaryMin)
		conditions = append(conditions, "v.salary_min >= $"+strconv.Itoa(len(args)))
	}
	if filter.SalaryMax != nil {
		args = append(args, *filter.SalaryMax)
		conditions = append(conditions, "v.salary_max <= $"+strconv.Itoa(len(args)))
	}
	if filter.WorkFormat != "" {
		args = append(args, filter.WorkFormat)
		conditions = append(conditions, "v.work_format = $"+strconv.Itoa(len(args)))
	}
	if filter.Schedule != "" {
		args = append(args, filter.Schedule)
		conditions = append(conditions, "v.schedule = $"+strconv.Itoa(len(args)))
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		conditions = append(conditions, "v.location ILIKE $"+strconv.Itoa(len(args)))
	}

	query := `
		SELECT ` + vacancyColumns + `
		FROM vacancies v
		JOIN users u ON u.id = v.employer_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY v.created_at DESC`

	var vacancies []data.Vacancy
	err := r.db.Select(&vacancies, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find active vacancies: %w", err)
	}

	return vacancies, nil
}

func (r *VacancyRepo) FindActiveCreatedAfter(since time.Time) ([]data.Vacancy, error) {
	query := `
		SELECT ` + vacancyColumns + `
		FROM vacancies v
		JOIN users u ON u.id = v.employer_id
		WHERE v.is_active = true AND v.created_at > $1
		ORDER BY v.created_at DESC`

	var vacancies []data.Vacancy
	err := r.db.Select(&vacancies, query, since)
	if err != nil {
		return nil, fmt.Errorf("find active vacancies created after: %w", err)
	}

	return vacancies, nil
}

func (r *VacancyRepo) FindByEmployer(employerID uuid.UUID) ([]data.Vacancy, error) {
	query := `
		SELECT ` + vacancyColumns + `
		FROM vacancies v
		JOIN users u ON u.id = v.employer_id
		WHERE v.employer_id = $1
		ORDER BY v.created_at DESC`

	var vacancies []data.Vacancy
	err := r.db.Select(&vacancies, query, employerID)
	if err != nil {
		return nil, fmt.Errorf("find vacancies by employer: %w", err)
	}

	return vacancies, nil
}

// UpdateVacancy replaces the editable fields. Keywords are deliberately left
// untouched: they are computed once at creation and edits do not refresh them.
func (r *VacancyRepo) UpdateVacancy(v data.Vacancy) (*data.Vacancy, error) {
	query := `
		UPDATE vacancies
		SET title = :title, company = :company, description = :description,
		    requirements = :requirements, responsibilities = :responsibilities,
		    location = :location, lat = :lat, lng = :lng,
		    salary_min = :salary_min, salary_max = :salary_max,
		    work_format = :work_format, schedule = :schedule,
		    is_active = :is_active, updated_at = now()
		WHERE id = :id`

	_, err := r.db.NamedExec(query, v)
	if err != nil {
		return nil, fmt.Errorf("update vacancy: %w", err)
	}

	return r.GetVacancyByID(v.ID)
}

func (r *VacancyRepo) DeleteVacancy(id int64) error {
	_, err := r.db.Exec("DELETE FROM vacancies WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete vacancy: %w", err)
	}

	return nil
}

// Apply records an application. Returns false if the user already applied.
func (r *VacancyRepo) Apply(vacancyID int64, userID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO applications (vacancy_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (vacancy_id, user_id) DO NOTHING`

	res, err := r.db.Exec(query, vacancyID, userID)
	if err != nil {
		return false, fmt.Errorf("apply to vacancy: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("apply rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *VacancyRepo) GetApplicants(vacancyID int64) ([]data.User, error) {
	query := `
		SELECT u.id, u.name, u.email, u.role, u.interests, u.last_vacancy_check, u.created_at, u.updated_at
		FROM applications a
		JOIN users u ON u.id = a.user_id
		WHERE a.vacancy_id = $1
		ORDER BY a.created_at`

	var users []data.User
	err := r.db.Select(&users, query, vacancyID)
	if err != nil {
		return nil, fmt.Errorf("get applicants: %w", err)
	}

	return users, nil
}
