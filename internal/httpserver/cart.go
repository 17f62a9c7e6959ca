package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/labstack/echo/v4"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) View(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.view")

	view, err := h.Svc.ViewCart(ctx, CurrentSession(c))
	if err != nil {
		return fail(l, "view_cart_error", err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	id, ok := util.ParseUint(c.Param("id"))
	if !ok {
		return badRequest(l, "add_to_cart_error", "id is not a positive integer", nil)
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_to_cart_error", "invalid body", err)
	}

	sess, err := h.Svc.AddItem(ctx, CurrentSession(c), id, string(req.Quantity))
	if err != nil {
		return fail(l, "add_to_cart_error", err)
	}

	view, err := h.Svc.ViewCart(ctx, sess)
	if err != nil {
		return fail(l, "add_to_cart_error", err)
	}

	l.Info("add_to_cart_success", "product_id", id)
	return c.JSON(http.StatusOK, view)
}
