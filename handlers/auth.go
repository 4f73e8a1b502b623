package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobfinder/api/config"
	"github.com/jobfinder/api/data"
	"github.com/jobfinder/api/data/repos"
	"github.com/jobfinder/api/keywords"
	"github.com/jobfinder/api/models"
)

const tokenTTL = 7 * 24 * time.Hour

type AuthHandler struct {
	userRepo *repos.UserRepo
	secret   []byte
}

func NewAuthHandler(userRepo *repos.UserRepo) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		secret:   []byte(config.Config.JWTSecret),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) Result {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("Invalid request.")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" {
		return BadRequest("Name and email are required.")
	}
	if len(req.Password) < 6 {
		return BadRequest("Password must be at least 6 characters.")
	}
	if req.Role != data.RoleJobseeker && req.Role != data.RoleEmployer {
		return BadRequest("Role must be jobseeker or employer.")
	}

	existing, err := h.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		return InternalError(err, "register: get user by email")
	}
	if existing != nil {
		return BadRequest("A user with this email already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return InternalError(err, "register: hash password")
	}

	id, err := h.userRepo.InsertUser(data.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	})
	if err != nil {
		return InternalError(err, "register: insert user")
	}

	user, err := h.userRepo.GetUserByID(id)
	if err != nil || user == nil {
		return InternalError(err, "register: load created user")
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		return InternalError(err, "register: issue token")
	}

	return Created(models.AuthResponse{Token: token, User: models.FromDataUser(*user)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) Result {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("Invalid request.")
	}

	user, err := h.userRepo.GetUserByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return InternalError(err, "login: get user by email")
	}
	if user == nil {
		return BadRequest("Invalid email or password.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return BadRequest("Invalid email or password.")
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		return InternalError(err, "login: issue token")
	}

	return Ok(models.AuthResponse{Token: token, User: models.FromDataUser(*user)})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) Result {
	user := r.Context().Value("user").(data.User)
	return Ok(models.FromDataUser(user))
}

func (h *AuthHandler) UpdateInterests(w http.ResponseWriter, r *http.Request) Result {
	user := r.Context().Value("user").(data.User)

	var req models.UpdateInterestsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BadRequest("Invalid request.")
	}
	if req.Interests == nil {
		return BadRequest("Interests must be an array of strings.")
	}

	if err := h.userRepo.UpdateInterests(user.ID, req.Interests); err != nil {
		return InternalError(err, "update interests")
	}

	return Ok(models.UpdateInterestsResponse{
		Message:   "Interests updated",
		Interests: req.Interests,
	})
}

// GetKeywords serves the interest picker vocabulary. Public.
func (h *AuthHandler) GetKeywords(w http.ResponseWriter, r *http.Request) Result {
	return Ok(models.KeywordsResponse{Keywords: keywords.Vocabulary})
}

// GetUser resolves the user behind an Authorization header. Used by the
// private route wrapper.
func (h *AuthHandler) GetUser(authHeader string) Result {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return Unauthorized("Missing authorization header")
	}

	user, err := h.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return Unauthorized("Invalid token")
	}

	return Ok(*user)
}

// VerifyToken validates a session token and loads its user. Also used for
// the websocket handshake.
func (h *AuthHandler) VerifyToken(tokenString string) (*data.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return h.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	sub, ok := claims["userId"].(string)
	if !ok {
		return nil, errors.New("token missing userId")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.New("invalid userId in token")
	}

	user, err := h.userRepo.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return user, nil
}

func (h *AuthHandler) issueToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID.String(),
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}
