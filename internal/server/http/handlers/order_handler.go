package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/delivery/internal/domain/model"
	"github.com/polkiloo/delivery/internal/server/http/dto"
	"github.com/polkiloo/delivery/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// Home handles GET /orders/.
func (h *OrderHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OrdersHomeResponse{Message: "Módulo de pedidos ativo", UserID: CurrentUser(c).ID})
}

// Create handles POST /orders/pedido.
func (h *OrderHandler) Create(c *gin.Context) {
	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentUser(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OrderCreatedResponse{Message: "Pedido criado com sucesso", OrderID: order.ID})
}

// Cancel handles POST /orders/pedido/cancelar/:id.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.CancelOrder(c.Request.Context(), id, CurrentUser(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderStatusResponse{Message: "Pedido cancelado com sucesso", Status: string(order.Status)})
}

// Finalize handles POST /orders/pedido/finalizar/:id.
func (h *OrderHandler) Finalize(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.FinalizeOrder(c.Request.Context(), id, CurrentUser(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderStatusResponse{Message: "Pedido finalizado com sucesso", Status: string(order.Status)})
}

// ListAll handles GET /orders/listar (admins only).
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context(), CurrentUser(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Mine handles GET /orders/meus_pedidos.
func (h *OrderHandler) Mine(c *gin.Context) {
	orders, err := h.facade.MyOrders(c.Request.Context(), CurrentUser(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Get handles GET /orders/pedido/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.Order(c.Request.Context(), id, CurrentUser(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// AddItem handles POST /orders/pedido/adicionar_item/:id.
func (h *OrderHandler) AddItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	order, err := h.facade.AddItem(c.Request.Context(), id, usecase.ItemSpec{
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice.Decimal,
		Flavor:    model.Flavor(req.Flavor),
		Size:      model.Size(req.Size),
	}, CurrentUser(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderTotalResponse{Message: "Item adicionado com sucesso", Total: dto.NewMoney(order.Price)})
}

// RemoveItem handles DELETE /orders/pedido/remover_item/:item_id.
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	id, ok := pathID(c, "item_id")
	if !ok {
		return
	}
	order, err := h.facade.RemoveItem(c.Request.Context(), id, CurrentUser(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderTotalResponse{Message: "Item removido com sucesso", Total: dto.NewMoney(order.Price)})
}
