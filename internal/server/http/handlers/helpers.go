package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/delivery/internal/domain/model"
	"github.com/polkiloo/delivery/internal/server/http/dto"
	"github.com/polkiloo/delivery/internal/server/http/middleware"
)

// CurrentUser extracts the authenticated caller from context.
func CurrentUser(c *gin.Context) *model.User {
	val, ok := c.Get(middleware.CallerContextKey)
	if !ok {
		return nil
	}
	user, _ := val.(*model.User)
	return user
}

// pathID parses a positive integer path parameter, writing 400 on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.ItemResponse, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, dto.ItemResponse{
			ID:        it.ID,
			Quantity:  it.Quantity,
			UnitPrice: dto.NewMoney(it.UnitPrice),
			Flavor:    string(it.Flavor),
			Size:      string(it.Size),
		})
	}
	return dto.OrderResponse{
		ID:     order.ID,
		UserID: order.UserID,
		Status: string(order.Status),
		Price:  dto.NewMoney(order.Price),
		Items:  items,
	}
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}
