package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pedidosapp/order-api/internal/audit"
	"github.com/pedidosapp/order-api/internal/auth"
	"github.com/pedidosapp/order-api/internal/authz"
	"github.com/pedidosapp/order-api/internal/httperr"
	"github.com/pedidosapp/order-api/internal/middleware"
	"github.com/pedidosapp/order-api/internal/models"
	"github.com/pedidosapp/order-api/internal/validators"
)

// emailDomainValid fica atrás de uma var para os testes não dependerem
// de DNS.
var emailDomainValid = validators.IsEmailDomainValid

type AuthHandler struct {
	db     *gorm.DB
	issuer *auth.Issuer
	audit  *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, issuer *auth.Issuer, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, issuer: issuer, audit: audit}
}

// --------- Requests ---------

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Signup cria uma conta comum. O campo admin nunca é aceito aqui.
func (h *AuthHandler) Signup(c *gin.Context) {
	h.createAccount(c, false)
}

// CreateAdmin é restrito: apenas admins criam outros admins.
func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	if err := authz.RequireAdmin(caller); err != nil {
		httperr.Forbidden(c, "admin_only", "Apenas administradores podem criar outros administradores.")
		return
	}

	h.createAccount(c, true)
}

func (h *AuthHandler) createAccount(c *gin.Context, admin bool) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := validators.NormalizeEmail(req.Email)

	if !emailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao criar usuário.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Active:       true,
		Admin:        admin,
	}

	// o índice único decide a duplicidade; checar antes com um COUNT
	// deixaria duas inscrições simultâneas passarem
	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "email_already_exists", "Já existe um usuário com esse email.")
			return
		}
		httperr.Internal(c, "failed_to_create_user", "Erro ao criar usuário.")
		return
	}

	action := "user_created"
	if admin {
		action = "admin_created"
	}
	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   action,
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"admin": user.Admin,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Usuário ou senha inválidos.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	// conta desativada nunca loga, com ou sem a senha certa
	if !user.Active {
		httperr.Unauthorized(c, "inactive_account", "Conta desativada.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Usuário ou senha inválidos.")
		return
	}

	pair, err := h.issuer.IssuePair(user.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Refresh troca um refresh token válido por um novo access token. O
// refresh token não é rotacionado.
func (h *AuthHandler) Refresh(c *gin.Context) {
	tokenString, ok := middleware.BearerToken(c)
	if !ok {
		httperr.Unauthorized(c, "missing_authorization_header", "Refresh token ausente.")
		return
	}

	userID, err := h.issuer.Validate(tokenString, auth.KindRefresh)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrExpiredToken):
			httperr.Unauthorized(c, "expired_token", "Refresh token expirado.")
		case errors.Is(err, auth.ErrWrongTokenKind):
			httperr.Unauthorized(c, "wrong_token_kind", "Token informado não é um refresh token.")
		default:
			httperr.Unauthorized(c, "invalid_token", "Refresh token inválido.")
		}
		return
	}

	var user models.User
	if err := h.db.Where("id = ? AND active = ?", userID, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "account_inactive_or_missing", "Conta desativada ou inexistente.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	access, err := h.issuer.IssueAccess(user.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": access,
		"token_type":   "Bearer",
	})
}
