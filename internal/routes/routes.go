package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pedidosapp/order-api/internal/audit"
	"github.com/pedidosapp/order-api/internal/auth"
	"github.com/pedidosapp/order-api/internal/config"
	"github.com/pedidosapp/order-api/internal/handlers"
	infraRepo "github.com/pedidosapp/order-api/internal/infra/repository"
	"github.com/pedidosapp/order-api/internal/middleware"
	ucOrder "github.com/pedidosapp/order-api/internal/usecase/order"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	orderRepo := infraRepo.NewOrderGormRepository(db)
	userRepo := infraRepo.NewUserGormRepository(db)

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — ORDERS
	// ======================================================
	createOrderUC := ucOrder.NewCreateOrder(orderRepo, auditDispatcher)
	addItemUC := ucOrder.NewAddItem(orderRepo, auditDispatcher)
	removeItemUC := ucOrder.NewRemoveItem(orderRepo, auditDispatcher)
	cancelOrderUC := ucOrder.NewCancelOrder(orderRepo, auditDispatcher)
	advanceOrderUC := ucOrder.NewAdvanceOrder(orderRepo, auditDispatcher)
	finalizeOrderUC := ucOrder.NewFinalizeOrder(orderRepo, auditDispatcher)
	getOrderUC := ucOrder.NewGetOrder(orderRepo)
	listMyOrdersUC := ucOrder.NewListMyOrders(orderRepo)
	listAllOrdersUC := ucOrder.NewListAllOrders(orderRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, issuer, auditDispatcher)
	meHandler := handlers.NewMeHandler()
	userHandler := handlers.NewUserHandler(db, auditDispatcher)

	orderHandler := handlers.NewOrderHandler(
		createOrderUC,
		addItemUC,
		removeItemUC,
		cancelOrderUC,
		advanceOrderUC,
		finalizeOrderUC,
		getOrderUC,
		listMyOrdersUC,
		listAllOrdersUC,
	)

	// ======================================================
	// AUTH
	// ======================================================
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/criar_conta", middleware.StrictRateLimit(), authHandler.Signup)
		authGroup.POST("/login", middleware.StrictRateLimit(), authHandler.Login)
		authGroup.GET("/refresh", authHandler.Refresh)
	}

	// ======================================================
	// ROTAS PRIVADAS
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(issuer, userRepo))
	{
		secured.GET("/me", meHandler.GetMe)

		secured.POST("/auth/criar_admin", authHandler.CreateAdmin)
		secured.PATCH("/auth/usuarios/:id/desativar", userHandler.Deactivate)

		// ------------------------------
		// PEDIDOS
		// ------------------------------
		pedidos := secured.Group("/pedidos")
		{
			pedidos.POST("/", orderHandler.Create)
			pedidos.GET("/", orderHandler.ListAll)
			pedidos.GET("/meus", orderHandler.ListMine)
			pedidos.GET("/:id", orderHandler.Get)

			pedidos.POST("/:id/itens", orderHandler.AddItem)
			pedidos.DELETE("/itens/:id", orderHandler.RemoveItem)

			pedidos.POST("/:id/preparar", orderHandler.Advance)
			pedidos.POST("/:id/cancelar", orderHandler.Cancel)
			pedidos.POST("/:id/finalizar", orderHandler.Finalize)
		}
	}
}
