package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/labstack/echo/v4"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) Home(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.home")

	page, err := h.Svc.Home(ctx)
	if err != nil {
		return fail(l, "home_error", err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHTTP) Shop(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.shop")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.Shop(ctx, offset, limit)
	if err != nil {
		return fail(l, "shop_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": util.Meta(offset, limit, total),
	})
}

func (h *CatalogHTTP) Product(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.product")

	id, ok := util.ParseUint(c.Param("id"))
	if !ok {
		return badRequest(l, "product_page_error", "id is not a positive integer", nil)
	}

	page, err := h.Svc.ProductPage(ctx, id)
	if err != nil {
		return fail(l, "product_page_error", err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	q := c.QueryParam("q")
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.SearchProducts(ctx, q, offset, limit)
	if err != nil {
		return fail(l, "search_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"query": q,
		"data":  items,
		"meta":  util.Meta(offset, limit, total),
	})
}

func (h *CatalogHTTP) AdminList(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.products")

	items, err := h.Svc.ListProducts(ctx)
	if err != nil {
		return fail(l, "admin_products_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) AdminGet(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.product_get")

	id, ok := util.ParseUint(c.Param("id"))
	if !ok {
		return badRequest(l, "admin_product_get_error", "id is not a positive integer", nil)
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return fail(l, "admin_product_get_error", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) AdminCreate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.product_create")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "product_create_error", "invalid body", err)
	}

	created, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return fail(l, "product_create_error", err)
	}

	l.Info("product_create_success", "product_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) AdminUpdate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.product_update")

	id, ok := util.ParseUint(c.Param("id"))
	if !ok {
		return badRequest(l, "product_update_error", "id is not a positive integer", nil)
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "product_update_error", "invalid body", err)
	}

	updated, err := h.Svc.UpdateProduct(ctx, id, req)
	if err != nil {
		return fail(l, "product_update_error", err)
	}

	l.Info("product_update_success", "product_id", id)
	return c.JSON(http.StatusOK, updated)
}

func (h *CatalogHTTP) AdminDelete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.product_delete")

	id, ok := util.ParseUint(c.Param("id"))
	if !ok {
		return badRequest(l, "product_delete_error", "id is not a positive integer", nil)
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return fail(l, "product_delete_error", err)
	}

	l.Info("product_delete_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
