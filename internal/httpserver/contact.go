package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/labstack/echo/v4"
)

type ContactHTTP struct {
	Svc *service.ContactService
}

func (h *ContactHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.submit")

	var req transport.ContactRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "contact_submit_error", "invalid body", err)
	}

	contact, err := h.Svc.Submit(ctx, req)
	if err != nil {
		return fail(l, "contact_submit_error", err)
	}

	l.Info("contact_submit_success", "contact_id", contact.ID)
	return c.JSON(http.StatusCreated, echo.Map{"message": "thank you for your message"})
}
