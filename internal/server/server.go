package server

import (
	"context"
	"net/http"

	"tablebook/internal/auth"
	"tablebook/internal/booking"
	"tablebook/internal/config"
	"tablebook/internal/email"
	"tablebook/internal/table"
	"tablebook/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	RegisterValidators()

	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(50, 100))

	userService := user.NewService(user.NewRepository(db), cfg.JWTSecret)
	userHandler := user.NewHandler(userService)

	tableService := table.NewService(table.NewRepository(db))
	tableHandler := table.NewHandler(tableService)

	var mailer booking.Mailer
	if emailService != nil {
		mailer = emailService
	}
	bookingService := booking.NewService(booking.NewRepository(db), tableService, userService, mailer)
	bookingHandler := booking.NewHandler(bookingService)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.PUT("/me", userHandler.UpdateMe)
		protected.POST("/me/password", userHandler.ChangePassword)

		protected.GET("/tables", tableHandler.List)
		protected.GET("/tables/available", tableHandler.ListAvailable)
		protected.GET("/tables/:tableID", tableHandler.Get)

		protected.GET("/bookings", bookingHandler.ListMine)
		protected.POST("/bookings", bookingHandler.Create)
		protected.GET("/bookings/upcoming", bookingHandler.ListUpcoming)
		protected.GET("/bookings/availability", bookingHandler.CheckAvailability)
		protected.GET("/bookings/:bookingID", bookingHandler.Get)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.Cancel)
	}

	operatorMiddleware := auth.RequireRole(user.RoleAdmin, user.RoleManager)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, operatorMiddleware)
	{
		admin.GET("/users", userHandler.List)
		admin.GET("/users/:userID", userHandler.Get)
		admin.PUT("/users/:userID", userHandler.Update)
		admin.DELETE("/users/:userID", userHandler.Delete)

		admin.POST("/tables", tableHandler.Create)
		admin.PUT("/tables/:tableID", tableHandler.Update)
		admin.DELETE("/tables/:tableID", tableHandler.Delete)

		admin.GET("/overview", Overview(userService, tableService, bookingService))

		admin.GET("/bookings", bookingHandler.ListAll)
		admin.GET("/bookings/stats", bookingHandler.Stats)
		admin.PUT("/bookings/:bookingID", bookingHandler.Update)
		admin.DELETE("/bookings/:bookingID", bookingHandler.Delete)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	if emailService != nil {
		router.GET("/test-email", TestEmail(emailService))
	}
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
