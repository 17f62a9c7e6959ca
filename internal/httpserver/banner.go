package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/labstack/echo/v4"
)

type BannerHTTP struct {
	Svc *service.BannerService
}

func (h *BannerHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.banners")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "banners_list_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *BannerHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.banner_add")

	var req transport.BannerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "banner_add_error", "invalid body", err)
	}

	b, err := h.Svc.Add(ctx, req)
	if err != nil {
		return fail(l, "banner_add_error", err)
	}

	l.Info("banner_add_success", "banner_id", b.ID)
	return c.JSON(http.StatusCreated, b)
}

func (h *BannerHTTP) Activate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.banner_activate")

	id, ok := util.ParseUint(c.Param("id"))
	if !ok {
		return badRequest(l, "banner_activate_error", "id is not a positive integer", nil)
	}

	if err := h.Svc.Activate(ctx, id); err != nil {
		return fail(l, "banner_activate_error", err)
	}

	l.Info("banner_activate_success", "banner_id", id)
	return c.JSON(http.StatusOK, echo.Map{"active_banner_id": id})
}
