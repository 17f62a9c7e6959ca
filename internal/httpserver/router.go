package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CartHandler    *CartHTTP
	CatalogHandler *CatalogHTTP
	BannerHandler  *BannerHTTP
	ContactHandler *ContactHTTP
	Sessions       *SessionMiddleware

	// OperatorSecret enables POST /operator/promote/:email when set.
	OperatorSecret string
	// Ready reports whether backing stores answer. Nil means always ready.
	Ready     func(c echo.Context) error
	StaticDir string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	if d.StaticDir != "" {
		e.Static("/static", d.StaticDir)
	}

	site := e.Group("", d.Sessions.LoadSession)
	site.GET("/", d.CatalogHandler.Home)
	site.GET("/shop", d.CatalogHandler.Shop)
	site.GET("/product/:id", d.CatalogHandler.Product)
	site.GET("/search", d.CatalogHandler.Search)
	site.POST("/submit-contact", d.ContactHandler.Submit)

	site.POST("/signup", d.AuthHandler.Signup)
	site.POST("/login", d.AuthHandler.Login)
	site.GET("/logout", d.AuthHandler.Logout)
	site.POST("/logout", d.AuthHandler.Logout)

	cart := site.Group("/cart", d.Sessions.RequireLogin)
	cart.GET("", d.CartHandler.View)
	cart.POST("/add/:id", d.CartHandler.Add)

	admin := site.Group("/admin", d.Sessions.RequireAdmin)
	admin.GET("", d.AuthHandler.Dashboard)
	admin.GET("/products", d.CatalogHandler.AdminList)
	admin.POST("/products/add", d.CatalogHandler.AdminCreate)
	admin.GET("/products/edit/:id", d.CatalogHandler.AdminGet)
	admin.POST("/products/edit/:id", d.CatalogHandler.AdminUpdate)
	admin.POST("/products/delete/:id", d.CatalogHandler.AdminDelete)
	admin.GET("/banners", d.BannerHandler.List)
	admin.POST("/banners/add", d.BannerHandler.Add)
	admin.POST("/banners/activate/:id", d.BannerHandler.Activate)

	if d.OperatorSecret != "" {
		op := e.Group("/operator", RequireOperator(d.OperatorSecret))
		op.POST("/promote/:email", d.AuthHandler.Promote)
	}
}
