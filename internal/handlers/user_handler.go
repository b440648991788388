package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pedidosapp/order-api/internal/audit"
	"github.com/pedidosapp/order-api/internal/authz"
	"github.com/pedidosapp/order-api/internal/httperr"
	"github.com/pedidosapp/order-api/internal/httpresp"
	"github.com/pedidosapp/order-api/internal/middleware"
	"github.com/pedidosapp/order-api/internal/models"
)

type UserHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewUserHandler(db *gorm.DB, audit *audit.Dispatcher) *UserHandler {
	return &UserHandler{db: db, audit: audit}
}

// Deactivate desliga uma conta sem apagar o registro. Contas nunca são
// removidas fisicamente.
func (h *UserHandler) Deactivate(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	if err := authz.RequireAdmin(caller); err != nil {
		httperr.Forbidden(c, "admin_only", "Apenas administradores podem desativar contas.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var user models.User
	if err := h.db.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	if err := h.db.Model(&user).Update("active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_deactivate_user", "Erro ao desativar usuário.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &caller.ID,
		Action:   "user_deactivated",
		Entity:   "user",
		EntityID: &user.ID,
	})

	user.Active = false
	httpresp.OK(c, user)
}
