package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/pedidosapp/order-api/internal/domain/order"
	"github.com/pedidosapp/order-api/internal/httperr"
	"github.com/pedidosapp/order-api/internal/httpresp"
	"github.com/pedidosapp/order-api/internal/middleware"
	ucOrder "github.com/pedidosapp/order-api/internal/usecase/order"
)

// ======================================================
// HANDLER
// ======================================================

type OrderHandler struct {
	createUC   *ucOrder.CreateOrder
	addItemUC  *ucOrder.AddItem
	removeUC   *ucOrder.RemoveItem
	cancelUC   *ucOrder.CancelOrder
	advanceUC  *ucOrder.AdvanceOrder
	finalizeUC *ucOrder.FinalizeOrder
	getUC      *ucOrder.GetOrder
	listMineUC *ucOrder.ListMyOrders
	listAllUC  *ucOrder.ListAllOrders
}

func NewOrderHandler(
	createUC *ucOrder.CreateOrder,
	addItemUC *ucOrder.AddItem,
	removeUC *ucOrder.RemoveItem,
	cancelUC *ucOrder.CancelOrder,
	advanceUC *ucOrder.AdvanceOrder,
	finalizeUC *ucOrder.FinalizeOrder,
	getUC *ucOrder.GetOrder,
	listMineUC *ucOrder.ListMyOrders,
	listAllUC *ucOrder.ListAllOrders,
) *OrderHandler {
	return &OrderHandler{
		createUC:   createUC,
		addItemUC:  addItemUC,
		removeUC:   removeUC,
		cancelUC:   cancelUC,
		advanceUC:  advanceUC,
		finalizeUC: finalizeUC,
		getUC:      getUC,
		listMineUC: listMineUC,
		listAllUC:  listAllUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AddItemRequest struct {
	Quantity  int     `json:"quantity" binding:"required"`
	Flavor    string  `json:"flavor" binding:"required"`
	Size      string  `json:"size" binding:"required"`
	UnitPrice float64 `json:"unit_price"`
}

// ======================================================
// HELPERS
// ======================================================

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func writeOrderError(c *gin.Context, err error) {
	switch httperr.BusinessCode(err) {
	case "order_not_found":
		httperr.NotFound(c, "order_not_found", "Pedido não encontrado.")
	case "item_not_found":
		httperr.NotFound(c, "item_not_found", "Item de pedido não encontrado.")
	case "not_allowed":
		httperr.Forbidden(c, "not_allowed", "Você não tem autorização para realizar esta ação.")
	case "admin_only":
		httperr.Forbidden(c, "admin_only", "Rota restrita a administradores.")
	case "invalid_state":
		httperr.BadRequest(c, "invalid_state", "Itens só podem ser alterados em pedidos pendentes.")
	case "invalid_transition":
		httperr.BadRequest(c, "invalid_transition", "Transição de status não permitida.")
	case "invalid_quantity":
		httperr.BadRequest(c, "invalid_quantity", "Quantidade deve ser maior que zero.")
	case "invalid_unit_price":
		httperr.BadRequest(c, "invalid_unit_price", "Preço unitário não pode ser negativo.")
	default:
		httperr.Internal(c, "internal_error", "Erro interno.")
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *OrderHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	o, err := h.createUC.Execute(c.Request.Context(), user)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	httpresp.Created(c, o)
}

// ======================================================
// LIST
// ======================================================

func (h *OrderHandler) ListMine(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orders, err := h.listMineUC.Execute(c.Request.Context(), user)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	httpresp.List(c, orders)
}

func (h *OrderHandler) ListAll(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orders, err := h.listAllUC.Execute(c.Request.Context(), user)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	httpresp.List(c, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.getUC.Execute(c.Request.Context(), user, id)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	httpresp.OK(c, o)
}

// ======================================================
// ITEMS
// ======================================================

func (h *OrderHandler) AddItem(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	o, err := h.addItemUC.Execute(c.Request.Context(), user, id, domain.ItemSpec{
		Quantity:  req.Quantity,
		Flavor:    req.Flavor,
		Size:      req.Size,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		writeOrderError(c, err)
		return
	}

	httpresp.OK(c, o)
}

func (h *OrderHandler) RemoveItem(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.removeUC.Execute(c.Request.Context(), user, id)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	httpresp.OK(c, o)
}

// ======================================================
// STATE TRANSITIONS
// ======================================================

func (h *OrderHandler) Cancel(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.cancelUC.Execute(c.Request.Context(), user, id)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	httpresp.OK(c, o)
}

func (h *OrderHandler) Advance(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.advanceUC.Execute(c.Request.Context(), user, id)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	httpresp.OK(c, o)
}

func (h *OrderHandler) Finalize(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	o, err := h.finalizeUC.Execute(c.Request.Context(), user, id)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	httpresp.OK(c, o)
}
