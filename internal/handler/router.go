package handler

import (
	"net/http"

	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/handler/api"
	"hotel-booking/internal/handler/middleware"
	"hotel-booking/internal/pkg/config"
	"hotel-booking/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine         *gin.Engine
	Config         config.Config
	Logger         *middleware.Logger
	Metrics        *metrics.Metrics
	AuthMiddleware *middleware.AuthMiddleware
	Auth           *api.AuthHandler
	Rooms          *api.RoomHandler
	Bookings       *api.BookingHandler
	Payments       *api.PaymentHandler
}

func NewRouter(p RouterParams) {
	setupMiddleware(p)
	setupRoutes(p)
}

func setupMiddleware(p RouterParams) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	p.Engine.Use(middleware.CustomRecovery())
	p.Engine.Use(middleware.NewCORSMiddleware(p.Config.CORS))
	p.Engine.Use(p.Logger.LoggingMiddleware())
	if p.Config.Metrics.Enabled {
		p.Engine.Use(middleware.MetricsMiddleware(p.Metrics))
	}
	p.Engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	engine.GET("/health", healthCheck)

	if p.Config.Metrics.Enabled {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(p.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := p.AuthMiddleware.RequireAuth()
	adminOnly := p.AuthMiddleware.RequireRole(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		addRoutes(auth, []route{
			{Method: http.MethodPost, Path: "/register", Handler: p.Auth.Register},
			{Method: http.MethodPost, Path: "/login", Handler: p.Auth.Login},
			{Method: http.MethodPost, Path: "/logout", Handler: p.Auth.Logout, Mw: []gin.HandlerFunc{requireAuth}},
			{Method: http.MethodGet, Path: "/me", Handler: p.Auth.Me, Mw: []gin.HandlerFunc{requireAuth}},
		})

		rooms := apiGroup.Group("/rooms")
		addRoutes(rooms, []route{
			{Method: http.MethodGet, Path: "", Handler: p.Rooms.List},
			{Method: http.MethodGet, Path: "/:id", Handler: p.Rooms.Get},
			{Method: http.MethodPost, Path: "", Handler: p.Rooms.Create, Mw: []gin.HandlerFunc{requireAuth, adminOnly}},
			{Method: http.MethodPatch, Path: "/:id/availability", Handler: p.Rooms.SetAvailability, Mw: []gin.HandlerFunc{requireAuth, adminOnly}},
		})

		bookings := apiGroup.Group("/bookings")
		bookings.Use(requireAuth)
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: p.Bookings.Create},
			{Method: http.MethodGet, Path: "", Handler: p.Bookings.ListMine},
			{Method: http.MethodGet, Path: "/:id", Handler: p.Bookings.Get},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: p.Bookings.Cancel},
			{Method: http.MethodPost, Path: "/:id/payments", Handler: p.Payments.Record},
			{Method: http.MethodGet, Path: "/:id/payments", Handler: p.Payments.List},
			{Method: http.MethodGet, Path: "/:id/payments/summary", Handler: p.Payments.Summary},
			{Method: http.MethodPost, Path: "/:id/refunds", Handler: p.Payments.Refund, Mw: []gin.HandlerFunc{adminOnly}},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(requireAuth, adminOnly)
		addRoutes(admin, []route{
			{Method: http.MethodGet, Path: "/bookings", Handler: p.Bookings.ListAll},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
