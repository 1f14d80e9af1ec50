package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/events"
	"github.com/spec-kit/rentcar-service/internal/repository"
	apperrors "github.com/spec-kit/rentcar-service/pkg/util/errorutil"
)

// OrderService records and lists rental orders.
type OrderService struct {
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        Clock
}

// OrderDependencies bundles collaborators for OrderService.
type OrderDependencies struct {
	OrderRepo  repository.OrderRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      Clock
}

// OrderCreateInput describes an order submission.
type OrderCreateInput struct {
	UserName      string
	CarName       string
	PaymentMethod string
}

// NewOrderService constructs OrderService.
func NewOrderService(deps OrderDependencies) *OrderService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orders:     deps.OrderRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        clockOrDefault(deps.Clock),
	}
}

// Create stores a new order dated now.
func (s *OrderService) Create(ctx context.Context, input OrderCreateInput) (*domain.Order, error) {
	order := &domain.Order{
		UserName:      strings.TrimSpace(input.UserName),
		CarName:       strings.TrimSpace(input.CarName),
		PaymentMethod: strings.TrimSpace(input.PaymentMethod),
		Date:          s.now(),
	}
	if order.UserName == "" || order.CarName == "" || order.PaymentMethod == "" {
		return nil, apperrors.NewValidationError("userName, carName, paymentMethod required", nil)
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventOrderCreated, order.UserName, order.Date, events.OrderCreatedPayload{
		OrderID:       order.ID,
		UserName:      order.UserName,
		CarName:       order.CarName,
		PaymentMethod: order.PaymentMethod,
	}))
	return order, nil
}

// ListForUser returns orders whose userName matches exactly, newest first.
// An unknown user simply has no orders.
func (s *OrderService) ListForUser(ctx context.Context, userName string) ([]domain.Order, error) {
	return s.orders.ListByUserName(ctx, userName)
}

// ListAll returns every order, newest first.
func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}
