package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/lib/pq"

	"github.com/jobfinder/api/data"
	"github.com/jobfinder/api/data/repos"
	"github.com/jobfinder/api/keywords"
	"github.com/jobfinder/api/models"
	"github.com/jobfinder/api/relevance"
)

// VacancyDispatcher is the notification hook invoked after a vacancy is
// durably created. Satisfied by *realtime.Dispatcher.
type VacancyDispatcher interface {
	VacancyCreated(vacancy models.Vacancy) error
}

type VacancyHandler struct {
	vacancyRepo *repos.VacancyRepo
	userRepo    *repos.UserRepo
	dispatcher  VacancyDispatcher
}

func NewVacancyHandler(vacancyRepo *repos.VacancyRepo, userRepo *repos.UserRepo, dispatcher VacancyDispatcher) *VacancyHandler {
	return &VacancyHandler{
		vacancyRepo: vacancyRepo,
		userRepo:    userRepo,
		dispatcher:  dispatcher,
	}
}

func (h *VacancyHandler) GetVacancies(w http.ResponseWriter, r *http.Request) Result {
	filter := repos.VacancyFilter{
		WorkFormat: r.URL.Query().Get("workFormat"),
		Schedule:   r.URL.Query().Get("schedule"),
		Location:   r.URL.Query().Get("location"),
	}
	if s := r.URL.Query().Get("salaryMin"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			filter.SalaryMin = &v
		}
	}
	if s := r.URL.Query().Get("salaryMax"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			filter.SalaryMax = &v
		}
	}

	vacancies, err := h.vacancyRepo.FindActive(filter)
	if err != nil {
		return InternalError(err, "get vacancies")
	}

	return Ok(toVacancyDTOs(vacancies))
}

func (h *VacancyHandler) CreateVacancy(w http.ResponseWriter, r *http.Request) Result {
	user := r.Context().Value("user").(data.User)
	if user.Role != data.RoleEmployer {
		return Forbidden("Only employers can create vacancies.")
	}

	var req models.CreateVacancyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("Invalid request.")
	}
	if req.Title == "" || req.Company == "" || req.Description == "" ||
		req.Requirements == "" || req.Responsibilities == "" || req.Location == "" {
		return BadRequest("All text fields are required.")
	}
	if !validWorkFormat(req.WorkFormat) || !validSchedule(req.Schedule) {
		return BadRequest("Invalid work format or schedule.")
	}

	// Keywords are computed exactly once, here. Edits never refresh them.
	extracted := keywords.Extract(req.Title, req.Description, req.Requirements, req.Responsibilities)
	slog.Debug("extracted vacancy keywords", "title", req.Title, "keywords", extracted)

	created, err := h.vacancyRepo.CreateVacancy(data.Vacancy{
		Title:            req.Title,
		Company:          req.Company,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Keywords:         pq.StringArray(extracted),
		Location:         req.Location,
		Lat:              req.Lat,
		Lng:              req.Lng,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		WorkFormat:       req.WorkFormat,
		Schedule:         req.Schedule,
		EmployerID:       user.ID,
	})
	if err != nil {
		return InternalError(err, "create vacancy")
	}

	dto := models.FromDataVacancy(*created)

	// Fan out after the durable write. The employer's response does not wait
	// for, or depend on, delivery.
	go func() {
		if err := h.dispatcher.VacancyCreated(dto); err != nil {
			slog.Error("vacancy dispatch failed", "vacancyId", dto.ID, "error", err)
		}
	}()

	return Created(dto)
}

func (h *VacancyHandler) ApplyToVacancy(w http.ResponseWriter, r *http.Request) Result {
	user := r.Context().Value("user").(data.User)
	if user.Role != data.RoleJobseeker {
		return Forbidden("Only jobseekers can apply to vacancies.")
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return BadRequest("Invalid vacancy ID.")
	}

	vacancy, err := h.vacancyRepo.GetVacancyByID(id)
	if err != nil {
		return InternalError(err, "apply: get vacancy")
	}
	if vacancy == nil {
		return NotFound("Vacancy not found.")
	}

	applied, err := h.vacancyRepo.Apply(id, user.ID)
	if err != nil {
		return InternalError(err, "apply to vacancy")
	}
	if !applied {
		return BadRequest("You have already applied to this vacancy.")
	}

	return Ok(models.MessageResponse{Message: "Application submitted"})
}

func (h *VacancyHandler) MyVacancies(w http.ResponseWriter, r *http.Request) Result {
	user := r.Context().Value("user").(data.User)

	vacancies, err := h.vacancyRepo.FindByEmployer(user.ID)
	if err != nil {
		return InternalError(err, "get my vacancies")
	}

	res := make([]models.Vacancy, 0, len(vacancies))
	for _, v := range vacancies {
		dto := models.FromDataVacancy(v)
		applicants, err := h.vacancyRepo.GetApplicants(v.ID)
		if err != nil {
			return InternalError(err, "get my vacancies: applicants")
		}
		for _, a := range applicants {
			dto.Applicants = append(dto.Applicants, models.Applicant{ID: a.ID, Name: a.Name, Email: a.Email})
		}
		res = append(res, dto)
	}

	return Ok(res)
}

// NewCount recomputes the unseen-vacancy count from stored vacancies, not
// from missed events. Repeated calls have no side effects.
func (h *VacancyHandler) NewCount(w http.ResponseWriter, r *http.Request) Result {
	user := r.Context().Value("user").(data.User)
	if user.Role != data.RoleJobseeker {
		return Forbidden("Only jobseekers can check new vacancies.")
	}

	candidates, err := h.vacancyRepo.FindActiveCreatedAfter(user.LastVacancyCheck)
	if err != nil {
		return InternalError(err, "new count: load vacancies")
	}

	count := relevance.CountUnseen(user.Interests, candidates)

	return Ok(models.NewCountResponse{NewCount: count})
}

func (h *VacancyHandler) MarkChecked(w http.ResponseWriter, r *http.Request) Result {
	user := r.Context().Value("user").(data.User)
	if user.Role != data.RoleJobseeker {
		return Forbidden("Only jobseekers can mark vacancies checked.")
	}

	if err := h.userRepo.UpdateLastVacancyCheck(user.ID, time.Now()); err != nil {
		return InternalError(err, "mark checked")
	}

	return Ok(models.MessageResponse{Message: "Check time updated"})
}

func (h *VacancyHandler) RelevantVacancies(w http.ResponseWriter, r *http.Request) Result {
	user := r.Context().Value("user").(data.User)
	if user.Role != data.RoleJobseeker {
		return Forbidden("Only jobseekers can get relevant vacancies.")
	}

	vacancies, err := h.vacancyRepo.FindActive(repos.VacancyFilter{})
	if err != nil {
		return InternalError(err, "relevant vacancies")
	}

	relevant := relevance.FilterRelevant(user.Interests, vacancies, 10)

	return Ok(toVacancyDTOs(relevant))
}

func (h *VacancyHandler) UpdateVacancy(w http.ResponseWriter, r *http.Request) Result {
	user := r.Context().Value("user").(data.User)
	if user.Role != data.RoleEmployer {
		return Forbidden("Only employers can edit vacancies.")
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return BadRequest("Invalid vacancy ID.")
	}

	vacancy, err := h.vacancyRepo.GetVacancyByID(id)
	if err != nil {
		return InternalError(err, "update: get vacancy")
	}
	if vacancy == nil {
		return NotFound("Vacancy not found.")
	}
	if vacancy.EmployerID != user.ID {
		return Forbidden("You can only edit your own vacancies.")
	}

	var req models.UpdateVacancyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("Invalid request.")
	}
	if req.Title == "" || req.Company == "" || req.Description == "" ||
		req.Requirements == "" || req.Responsibilities == "" || req.Location == "" {
		return BadRequest("All text fields are required.")
	}
	if !validWorkFormat(req.WorkFormat) || !validSchedule(req.Schedule) {
		return BadRequest("Invalid work format or schedule.")
	}

	vacancy.Title = req.Title
	vacancy.Company = req.Company
	vacancy.Description = req.Description
	vacancy.Requirements = req.Requirements
	vacancy.Responsibilities = req.Responsibilities
	vacancy.Location = req.Location
	vacancy.Lat = req.Lat
	vacancy.Lng = req.Lng
	vacancy.SalaryMin = req.SalaryMin
	vacancy.SalaryMax = req.SalaryMax
	vacancy.WorkFormat = req.WorkFormat
	vacancy.Schedule = req.Schedule
	if req.IsActive != nil {
		vacancy.IsActive = *req.IsActive
	}

	updated, err := h.vacancyRepo.UpdateVacancy(*vacancy)
	if err != nil {
		return InternalError(err, "update vacancy")
	}

	return Ok(models.FromDataVacancy(*updated))
}

func (h *VacancyHandler) DeleteVacancy(w http.ResponseWriter, r *http.Request) Result {
	user := r.Context().Value("user").(data.User)
	if user.Role != data.RoleEmployer {
		return Forbidden("Only employers can delete vacancies.")
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return BadRequest("Invalid vacancy ID.")
	}

	vacancy, err := h.vacancyRepo.GetVacancyByID(id)
	if err != nil {
		return InternalError(err, "delete: get vacancy")
	}
	if vacancy == nil {
		return NotFound("Vacancy not found.")
	}
	if vacancy.EmployerID != user.ID {
		return Forbidden("You can only delete your own vacancies.")
	}

	if err := h.vacancyRepo.DeleteVacancy(id); err != nil {
		return InternalError(err, "delete vacancy")
	}

	return Ok(models.MessageResponse{Message: "Vacancy deleted"})
}

func toVacancyDTOs(vacancies []data.Vacancy) []models.Vacancy {
	res := make([]models.Vacancy, 0, len(vacancies))
	for _, v := range vacancies {
		res = append(res, models.FromDataVacancy(v))
	}
	return res
}

func validWorkFormat(s string) bool {
	return s == "remote" || s == "office" || s == "hybrid"
}

func validSchedule(s string) bool {
	return s == "fulltime" || s == "parttime" || s == "flexible"
}
