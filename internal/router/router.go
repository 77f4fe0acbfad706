package router

import (
	"github.com/prostore-go/internal/cache"
	"github.com/prostore-go/internal/http/handlers/admin"
	"github.com/prostore-go/internal/http/handlers/public"
	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 装配全部 HTTP 路由
func SetupRouter(container *provider.Container) *gin.Engine {
	cfg := container.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.L))
	r.Use(CORSMiddleware(cfg.CORS))

	r.Static("/uploads", "./uploads")

	publicHandler := public.New(container)
	adminHandler := admin.New(container)

	jwtSecret := cfg.JWT.SecretKey
	userAuth := UserJWTAuthMiddleware(jwtSecret, container.UserRepo)
	optionalAuth := OptionalUserJWTMiddleware(jwtSecret, container.UserRepo)

	api := r.Group("/api/v1")

	// 商品与评价，公开可读
	api.GET("/products", publicHandler.ListProducts)
	api.GET("/products/latest", publicHandler.LatestProducts)
	api.GET("/products/featured", publicHandler.FeaturedProducts)
	api.GET("/products/categories", publicHandler.ProductCategories)
	api.GET("/products/slug/:slug", publicHandler.GetProductBySlug)
	api.GET("/reviews/:product_id", publicHandler.ListProductReviews)

	api.GET("/captcha/image", publicHandler.GetImageCaptcha)

	// 购物车支持匿名会话，携带 Token 时绑定到用户
	cart := api.Group("/cart", optionalAuth)
	{
		cart.GET("", publicHandler.GetCart)
		cart.POST("/items", publicHandler.AddCartItem)
		cart.POST("/items/remove", publicHandler.RemoveCartItem)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register", publicHandler.Register)
		auth.POST("/login", RateLimitMiddleware(cache.Client(), RateLimitRule{
			Prefix:        "login",
			WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
			MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
			Message:       "too many login attempts, try again later",
		}, KeyByIPAndJSONField("email")), publicHandler.Login)
	}

	user := api.Group("/user", userAuth)
	{
		user.GET("/me", publicHandler.Me)
		user.PUT("/profile", publicHandler.UpdateProfile)
		user.PUT("/address", publicHandler.UpdateAddress)
		user.PUT("/payment-method", publicHandler.UpdatePaymentMethod)
	}

	orders := api.Group("/orders", userAuth)
	{
		orders.POST("", publicHandler.CreateOrder)
		orders.GET("", publicHandler.ListMyOrders)
		orders.GET("/:id", publicHandler.GetOrder)
		orders.POST("/:id/paypal", publicHandler.CreatePayPalOrder)
		orders.POST("/:id/paypal/capture", publicHandler.ApprovePayPalOrder)
		orders.POST("/:id/stripe", publicHandler.CreateStripePaymentIntent)
		orders.POST("/:id/stripe/confirm", publicHandler.ConfirmStripePayment)
	}

	reviews := api.Group("/reviews", userAuth)
	{
		reviews.PUT("/:product_id", publicHandler.UpsertReview)
		reviews.GET("/:product_id/mine", publicHandler.GetMyReview)
	}

	adminGroup := api.Group("/admin", userAuth, AdminRBACMiddleware(container.AuthzService))
	{
		adminGroup.GET("/dashboard/summary", adminHandler.GetOrderSummary)

		adminGroup.GET("/products", adminHandler.ListProducts)
		adminGroup.POST("/products", adminHandler.CreateProduct)
		adminGroup.GET("/products/:id", adminHandler.GetProduct)
		adminGroup.PUT("/products/:id", adminHandler.UpdateProduct)
		adminGroup.DELETE("/products/:id", adminHandler.DeleteProduct)

		adminGroup.GET("/orders", adminHandler.ListOrders)
		adminGroup.GET("/orders/:id", adminHandler.GetOrder)
		adminGroup.DELETE("/orders/:id", adminHandler.DeleteOrder)
		adminGroup.PUT("/orders/:id/pay", adminHandler.MarkOrderAsPaid)
		adminGroup.PUT("/orders/:id/deliver", adminHandler.DeliverOrder)

		adminGroup.GET("/users", adminHandler.ListUsers)
		adminGroup.GET("/users/:id", adminHandler.GetUser)
		adminGroup.PUT("/users/:id", adminHandler.UpdateUser)
		adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)

		adminGroup.POST("/upload", adminHandler.UploadFile)
	}

	return r
}
