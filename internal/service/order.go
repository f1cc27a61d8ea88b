package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_orders/internal/events"
	"github.com/Skotchmaster/shop_orders/internal/logging"
	"github.com/Skotchmaster/shop_orders/internal/models"
	"github.com/Skotchmaster/shop_orders/internal/repo"
	"github.com/Skotchmaster/shop_orders/internal/transport"
)

var (
	ErrValidation  = errors.New("validation")  // 400
	ErrNotFound    = errors.New("not found")   // 404
	ErrConflict    = errors.New("conflict")    // 409
	ErrPersistence = errors.New("persistence") // 500
)

type OrderService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

// CreateOrder checks the four required top-level fields and nothing below
// them: item contents and address sub-fields are accepted as-is, and the
// total is not recomputed against item prices. Callers are authenticated
// before anything here runs.
func (svc *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req transport.CreateOrderRequest) (*models.Order, error) {
	if req.ShippingAddress == nil {
		return nil, fmt.Errorf("%w: shippingAddress required", ErrValidation)
	}
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: paymentMethod required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	if req.TotalAmount <= 0 {
		return nil, fmt.Errorf("%w: totalAmount required", ErrValidation)
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: it.Product,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	order := &models.Order{
		UserID:          userID,
		Items:           items,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: *req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   models.PaymentStatusPaid,
		Status:          models.OrderStatusProcessing,
	}

	if _, err := svc.Repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	l := logging.FromContext(ctx).With("svc", "orders.create")

	if err := svc.Producer.Publish(ctx, order.ID.String(), events.OrderCreated{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
	}); err != nil {
		l.Warn("order_created_publish_failed", "order_id", order.ID, "error", err)
	}

	// The order is already durable; a failed enrichment read must not turn
	// a successful creation into an error.
	enriched, err := svc.Repo.GetOrder(ctx, order.ID)
	if err != nil {
		l.Warn("order_enrich_failed", "order_id", order.ID, "error", err)
		return order, nil
	}

	return enriched, nil
}

// GetOrder answers ErrNotFound both for an id that matches nothing and for
// an order owned by someone else. A non-owner must never learn that the
// order exists, so the two cases are indistinguishable from outside.
func (svc *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := svc.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if order.UserID != userID {
		logging.FromContext(ctx).Debug("order_owner_mismatch", "order_id", orderID)
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}

	return order, nil
}

func (svc *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders, err := svc.Repo.ListOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return orders, nil
}
