package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/pedidosapp/order-api/internal/httpresp"
	"github.com/pedidosapp/order-api/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	httpresp.OK(c, middleware.CurrentUser(c))
}
