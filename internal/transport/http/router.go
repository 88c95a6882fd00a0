package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/handlers"
)

type Deps struct {
	ProductHandler  *handlers.ProductHandler
	CartHandler     *handlers.CartHandler
	WishlistHandler *handlers.WishlistHandler
	AuthHandler     *handlers.AuthHandler
	SearchHandler   *handlers.SearchHandler
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)
	v1.GET("/session", d.AuthHandler.Session)

	v1.GET("/search", d.SearchHandler.Search)
	v1.GET("/categories", d.ProductHandler.GetCategories)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	cart := v1.Group("/cart", handlers.RequireAuth(d.JWTSecret))
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.POST("/checkout", d.CartHandler.Checkout)
	cart.POST("/:id/increment", d.CartHandler.IncrementItem)
	cart.DELETE("/:id", d.CartHandler.DecrementItem)
	cart.DELETE("/:id/all", d.CartHandler.RemoveItem)

	wishlist := v1.Group("/wishlist")
	wishlist.GET("", d.WishlistHandler.GetWishlist)
	wishlist.POST("/toggle", d.WishlistHandler.Toggle)
	wishlist.DELETE("", d.WishlistHandler.Clear)
}
