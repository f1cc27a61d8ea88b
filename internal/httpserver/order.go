package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_orders/internal/auth"
	"github.com/Skotchmaster/shop_orders/internal/logging"
	"github.com/Skotchmaster/shop_orders/internal/service"
	"github.com/Skotchmaster/shop_orders/internal/transport"
)

type OrderHTTP struct {
	Svc  *service.OrderService
	Auth *auth.Authenticator
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	userID, err := h.Auth.UserID(c)
	if err != nil {
		l.Warn("create_order_error", "status", 401, "reason", "unauthenticated")
		return respondError(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return respondError(c, http.StatusBadRequest, "All fields are required")
	}

	order, err := h.Svc.CreateOrder(ctx, userID, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_order_error", "status", 400, "reason", "missing fields", "error", err)
			return respondError(c, http.StatusBadRequest, "All fields are required")
		}
		l.Error("create_order_error", "status", 500, "error", err)
		return respondInternal(c, "Error creating order", err)
	}

	l.Info("create_order_success", "order_id", order.ID, "user_id", userID)
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"order":   order,
	})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	userID, err := h.Auth.UserID(c)
	if err != nil {
		l.Warn("get_order_error", "status", 401, "reason", "unauthenticated")
		return respondError(c, http.StatusUnauthorized, "Unauthorized")
	}

	// An id that does not parse cannot name an order, and a non-owner must
	// get the same answer as nobody: one 404 covers malformed, unknown and
	// not-owned alike.
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_order_error", "status", 404, "reason", "malformed id")
		return respondError(c, http.StatusNotFound, "Order not found")
	}

	order, err := h.Svc.GetOrder(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_error", "status", 404, "order_id", orderID)
			return respondError(c, http.StatusNotFound, "Order not found")
		}
		l.Error("get_order_error", "status", 500, "error", err)
		return respondInternal(c, "Error fetching order", err)
	}

	l.Info("get_order_success", "order_id", orderID)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"order":   order,
	})
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID, err := h.Auth.UserID(c)
	if err != nil {
		l.Warn("list_orders_error", "status", 401, "reason", "unauthenticated")
		return respondError(c, http.StatusUnauthorized, "Unauthorized")
	}

	orders, err := h.Svc.ListOrders(ctx, userID)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return respondInternal(c, "Error fetching orders", err)
	}

	l.Info("list_orders_success", "user_id", userID, "count", len(orders))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"orders":  orders,
	})
}
