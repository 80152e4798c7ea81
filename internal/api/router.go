package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thugozi/foodtruck-api/internal/api/handler"
	"github.com/thugozi/foodtruck-api/internal/api/middleware"
	"github.com/thugozi/foodtruck-api/internal/core/domain"
	"github.com/thugozi/foodtruck-api/internal/core/ports"
)

// Services bundles the assembled service layer for route registration.
type Services struct {
	Auth    ports.AuthService
	Loyalty ports.LoyaltyService
	Bills   ports.BillService
	Sweep   ports.SweepService
	Admin   ports.AdminService
	Orders  ports.OrderService
	Catalog ports.CatalogService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, svc Services, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("foodtruck"))

	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	loyaltyHandler := handler.NewLoyaltyHandler(svc.Loyalty, svc.Bills)
	adminHandler := handler.NewAdminHandler(svc.Loyalty, svc.Admin, svc.Sweep)
	menuHandler := handler.NewMenuHandler(svc.Catalog)
	orderHandler := handler.NewOrderHandler(svc.Orders)
	shopHandler := handler.NewShopHandler(svc.Catalog)

	authRequired := middleware.Auth(jwtSecret)
	userOnly := middleware.RBAC(domain.RoleUser)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/admin/login", authHandler.AdminLogin)
	e.GET("/menu", menuHandler.List)
	e.GET("/shop/status", shopHandler.Status)
	e.GET("/shop/settings", shopHandler.Settings)
	e.GET("/shop/about", shopHandler.About)
	e.GET("/shop/validate-location", shopHandler.ValidateLocation)
	e.GET("/coupons/validate/:code", shopHandler.ValidateCoupon)

	// --- Customer routes ---
	user := e.Group("", authRequired, userOnly)
	user.GET("/auth/me", authHandler.Me)
	user.POST("/loyalty/apply", loyaltyHandler.Apply)
	user.POST("/loyalty/upload-student-id", loyaltyHandler.UploadStudentID)
	user.POST("/loyalty/upload-bill", loyaltyHandler.UploadBill)
	user.GET("/loyalty/points", loyaltyHandler.Points)
	user.GET("/loyalty/history", loyaltyHandler.History)
	user.POST("/orders", orderHandler.Create)
	user.GET("/orders", orderHandler.MyOrders)
	user.GET("/orders/:id", orderHandler.Get)

	// --- Admin console routes ---
	admin := e.Group("/admin", authRequired, adminOnly)
	admin.POST("/change-password", authHandler.ChangeAdminPassword)
	admin.POST("/change-username", authHandler.ChangeAdminUsername)
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/verifications", adminHandler.PendingVerifications)
	admin.POST("/verifications/:id/approve", adminHandler.ApproveVerification)
	admin.POST("/verifications/:id/reject", adminHandler.RejectVerification)
	admin.GET("/users", adminHandler.Users)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.POST("/users/:id/disable-loyalty", adminHandler.DisableLoyalty)
	admin.POST("/users/:id/points/reset", adminHandler.ResetPoints)
	admin.POST("/users/:id/points/restore", adminHandler.RestorePoints)
	admin.POST("/loyalty/check-expiry", adminHandler.CheckExpiry)
	admin.GET("/loyalty/expiry-logs", adminHandler.ExpiryLogs)
	admin.GET("/logs", adminHandler.Logs)
	admin.GET("/menu", menuHandler.AdminList)
	admin.POST("/menu", menuHandler.Create)
	admin.PUT("/menu/:id", menuHandler.Update)
	admin.DELETE("/menu/:id", menuHandler.Delete)
	admin.GET("/orders", orderHandler.AdminList)
	admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	admin.POST("/coupons", shopHandler.CreateCoupon)
	admin.GET("/coupons", shopHandler.ListCoupons)
	admin.PUT("/coupons/:id", shopHandler.SetCouponActive)
	admin.DELETE("/coupons/:id", shopHandler.DeleteCoupon)
	admin.PUT("/settings", shopHandler.UpdateSettings)
	admin.POST("/closed-days", shopHandler.AddClosedDay)
	admin.GET("/closed-days", shopHandler.ClosedDays)
	admin.PUT("/about", shopHandler.UpdateAbout)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	return e
}
