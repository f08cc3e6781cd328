package handlers

import (
	"net/http"
	"strings"
	"time"

	"boardapi/internal/domain"
	"boardapi/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, hash, err := h.Users.GetCredentials(c.Request.Context(), strings.TrimSpace(req.Login))
	if err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, domain.AuthError{Msg: "wrong login or password"})
			return
		}
		RespondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		RespondDomainError(c, domain.AuthError{Msg: "wrong login or password"})
		return
	}

	if user.Status != models.UserStatusActive {
		RespondDomainError(c, domain.ForbiddenError{Msg: "account suspended"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(h.Env.TokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(h.Env.JWTSecret))
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "could not issue token", Err: err})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": signed,
		"user":  user,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if name == "" || username == "" || email == "" {
		RespondDomainError(c, domain.ValidationError{Msg: "name, username and email are required"})
		return
	}
	if len(req.Password) < 8 {
		RespondDomainError(c, domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"})
		return
	}

	// advisory pre-check; the unique indexes stay authoritative
	exists, err := h.Users.Exists(c.Request.Context(), email, username)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists {
		RespondDomainError(c, domain.ConflictError{Resource: "user", Msg: "email or username already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "could not hash password", Err: err})
		return
	}

	id, err := h.Users.Create(c.Request.Context(), models.User{
		Name:     name,
		Username: username,
		Email:    email,
		Role:     models.RoleMember,
		Status:   models.UserStatusActive,
	}, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":       id,
			"name":     name,
			"username": username,
			"email":    email,
			"role":     models.RoleMember,
			"status":   models.UserStatusActive,
		},
	})
}
