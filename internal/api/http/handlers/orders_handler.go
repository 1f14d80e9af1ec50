package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rentcar-service/internal/api/dto"
	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/service"
	apperrors "github.com/spec-kit/rentcar-service/pkg/util/errorutil"
)

// OrdersHandler exposes order capture and listing.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orderService}
}

// Create handles POST /api/orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	_, err := h.orders.Create(c.UserContext(), service.OrderCreateInput{
		UserName:      req.UserName,
		CarName:       req.CarName,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.MessageResponse{Message: "order saved"})
}

// ListForUser handles GET /api/orders/:userName.
func (h *OrdersHandler) ListForUser(c *fiber.Ctx) error {
	userName, err := url.PathUnescape(c.Params("userName"))
	if err != nil {
		return apperrors.NewValidationError("malformed user name", nil)
	}

	orders, err := h.orders.ListForUser(c.UserContext(), userName)
	if err != nil {
		return err
	}
	return c.JSON(orderResponses(orders))
}

// ListAll handles GET /api/all-orders.
func (h *OrdersHandler) ListAll(c *fiber.Ctx) error {
	orders, err := h.orders.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(orderResponses(orders))
}

func orderResponses(orders []domain.Order) []dto.OrderResponse {
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, dto.OrderResponse{
			ID:            o.ID,
			UserName:      o.UserName,
			CarName:       o.CarName,
			PaymentMethod: o.PaymentMethod,
			Date:          o.Date,
		})
	}
	return items
}
