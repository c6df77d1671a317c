package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/veloclub/clubhouse-api/internal/config"
	domainRepo "github.com/veloclub/clubhouse-api/internal/domain/repository"
	"github.com/veloclub/clubhouse-api/internal/presentation/http/handler"
	"github.com/veloclub/clubhouse-api/internal/presentation/http/middleware"
	"github.com/veloclub/clubhouse-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Item         *handler.ItemHandler
	Order        *handler.OrderHandler
	Session      *handler.SessionHandler
	Report       *handler.ReportHandler
	Member       *handler.MemberHandler
	Invoice      *handler.InvoiceHandler
	Notification *handler.NotificationHandler
	Settings     *handler.SettingsHandler
	User         *handler.UserHandler
	Printer      *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.GET("/profile", h.Auth.Me)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	registerCafeteriaRoutes(protected, h, deps)
	registerMemberRoutes(protected, h)
	registerInvoiceRoutes(protected, h)
	registerNotificationRoutes(protected, h)
	registerSettingsRoutes(protected, h)
	registerUserRoutes(protected, h)
	registerPrinterRoutes(protected, h)
}

func registerCafeteriaRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	cafeteria := protected.Group("/cafeteria")

	// Catalog
	items := cafeteria.Group("/items")
	{
		items.GET("", h.Item.List)
		items.GET("/low-stock", h.Item.LowStock)
		items.GET("/:id", h.Item.Get)

		manage := items.Group("")
		manage.Use(middleware.RequirePermission("manage-items"))
		{
			manage.POST("", h.Item.Create)
			manage.PUT("/:id", h.Item.Update)
			manage.DELETE("/:id", h.Item.Delete)
			manage.POST("/:id/restock", h.Item.Restock)
			manage.POST("/low-stock/digest", h.Item.SendLowStockDigest)
		}
	}

	// Orders
	orders := cafeteria.Group("/orders")
	orders.Use(middleware.RequirePermission("manage-orders"))
	{
		orders.GET("", h.Order.List)
		// Order creation uses idempotency middleware to prevent duplicates
		orders.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.GET("/:id/receipt", h.Order.Receipt)
		orders.POST("/:id/print", h.Order.PrintReceipt)
	}

	// Receipt history with page-local aggregates
	cafeteria.GET("/receipts", middleware.RequirePermission("view-reports"), h.Report.Receipts)

	// Till sessions
	sessions := cafeteria.Group("/sessions")
	{
		till := sessions.Group("")
		till.Use(middleware.RequirePermission("operate-till"))
		{
			till.POST("", h.Session.Start)
			till.GET("/resume", h.Session.Resume)
			till.PUT("/cart", h.Session.SaveCart)
			till.POST("/:id/sales", h.Session.RecordSale)
			till.POST("/:id/close", h.Session.Close)
		}

		history := sessions.Group("")
		history.Use(middleware.RequirePermission("manage-sessions"))
		{
			history.GET("", h.Session.List)
			history.GET("/export", h.Session.Export)
			history.GET("/:id", h.Session.Get)
			history.GET("/:id/report", h.Session.Report)
			history.POST("/:id/report/print", h.Session.PrintReport)
			history.POST("/:id/abandon", middleware.RequireRole("admin"), h.Session.Abandon)
		}
	}
}

func registerMemberRoutes(protected *gin.RouterGroup, h *Handlers) {
	members := protected.Group("/members")
	members.Use(middleware.RequirePermission("manage-members"))
	{
		members.GET("", h.Member.List)
		members.POST("", h.Member.Create)
		members.GET("/:id", h.Member.Get)
		members.PUT("/:id", h.Member.Update)
		members.DELETE("/:id", h.Member.Delete)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers) {
	invoices := protected.Group("/invoices")
	invoices.Use(middleware.RequirePermission("manage-invoices"))
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", h.Invoice.Issue)
		invoices.POST("/fee-batch", h.Invoice.FeeBatch)
		invoices.POST("/sweep-overdue", h.Invoice.SweepOverdue)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/pay", h.Invoice.MarkPaid)
		invoices.POST("/:id/cancel", h.Invoice.Cancel)
	}
}

func registerNotificationRoutes(protected *gin.RouterGroup, h *Handlers) {
	notifications := protected.Group("/notifications")
	{
		notifications.GET("", h.Notification.List)
		notifications.GET("/unread-count", h.Notification.UnreadCount)
		notifications.POST("", middleware.RequireRole("admin", "treasurer"), h.Notification.Create)
		notifications.PUT("/read-all", h.Notification.MarkAllRead)
		notifications.PUT("/:id/read", h.Notification.MarkRead)
		notifications.DELETE("/:id", h.Notification.Delete)
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers) {
	settings := protected.Group("/settings")
	settings.Use(middleware.RequirePermission("manage-settings"))
	{
		settings.GET("", h.Settings.List)
		settings.PUT("/cashier_pin", h.Settings.SetPin)
		settings.GET("/:key", h.Settings.Get)
		settings.PUT("/:key", h.Settings.Set)
		settings.DELETE("/:key", h.Settings.Delete)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/roles", h.User.Roles)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
		users.POST("/:id/roles", h.User.AssignRole)
		users.DELETE("/:id/roles", h.User.RemoveRole)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printer := protected.Group("/printer")
	printer.Use(middleware.RequirePermission("operate-till"))
	{
		printer.GET("/status", h.Printer.Status)
		printer.POST("/test", h.Printer.Test)
	}
}
