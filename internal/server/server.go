package server

import (
	"context"
	"net/http"

	"jobmarket/internal/account"
	"jobmarket/internal/auth"
	"jobmarket/internal/chat"
	"jobmarket/internal/config"
	"jobmarket/internal/feed"
	"jobmarket/internal/job"
	"jobmarket/internal/marketplace"
	"jobmarket/internal/notification"
	"jobmarket/internal/reputation"
	"jobmarket/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router     *gin.Engine
	db         *sqlx.DB
	config     *config.Config
	httpServer *http.Server
}

func New(db *sqlx.DB, cfg *config.Config, broker *feed.Broker, push *notification.PushDispatcher) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	accountRepo := account.NewRepository(db)
	accountService := account.NewService(accountRepo, cfg.JWTSecret)
	accountHandler := account.NewHandler(accountService)

	walletRepo := wallet.NewRepository(db)
	walletService := wallet.NewService(walletRepo, cfg.PlatformAccountID)
	walletHandler := wallet.NewHandler(walletService)

	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo, broker, push)
	notificationHandler := notification.NewHandler(notificationService, broker)

	jobRepo := job.NewRepository(db)
	jobService := job.NewService(jobRepo, accountRepo, walletService, broker, notificationService)
	jobHandler := job.NewHandler(jobService)

	marketplaceService := marketplace.NewService(jobService)
	marketplaceHandler := marketplace.NewHandler(marketplaceService)

	reputationRepo := reputation.NewRepository(db)
	reputationService := reputation.NewService(reputationRepo, accountRepo)
	reputationHandler := reputation.NewHandler(reputationService)

	chatRepo := chat.NewRepository(db)
	chatService := chat.NewService(chatRepo, broker, push)
	chatHandler := chat.NewHandler(chatService, broker)

	public := router.Group("/auth")
	{
		public.POST("/register", accountHandler.Register)
		public.POST("/login", accountHandler.Login)
		public.POST("/refresh", accountHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", accountHandler.GetMe)
		protected.PUT("/me", accountHandler.UpdateProfile)

		protected.GET("/specialists", accountHandler.ListSpecialists)
		protected.GET("/specialists/:specialistID/reviews", reputationHandler.ListReviews)
		protected.GET("/specialists/:specialistID/reputation", reputationHandler.GetSummary)

		protected.GET("/jobs/:jobID", jobHandler.GetJob)
		protected.GET("/jobs/:jobID/messages", chatHandler.ListMessages)
		protected.GET("/jobs/:jobID/messages/stream", chatHandler.StreamMessages)
		protected.POST("/jobs/:jobID/messages", chatHandler.SendMessage)

		protected.GET("/wallet/balance", walletHandler.GetBalance)
		protected.GET("/wallet/transactions", walletHandler.ListTransactions)
		protected.POST("/wallet/topup", walletHandler.TopUp)

		protected.GET("/notifications", notificationHandler.ListNotifications)
		protected.GET("/notifications/unread", notificationHandler.UnreadCount)
		protected.GET("/notifications/stream", notificationHandler.StreamNotifications)
		protected.POST("/notifications/:notificationID/read", notificationHandler.MarkRead)
	}

	clientOnly := router.Group("/")
	clientOnly.Use(authMiddleware, auth.RequireRole(auth.RoleClient, auth.RoleAdmin))
	{
		clientOnly.POST("/jobs", jobHandler.CreateJob)
		clientOnly.GET("/jobs", jobHandler.ListMyJobs)
		clientOnly.POST("/jobs/:jobID/review", reputationHandler.SubmitReview)
	}

	specialistOnly := router.Group("/")
	specialistOnly.Use(authMiddleware, auth.RequireRole(auth.RoleSpecialist, auth.RoleAdmin))
	{
		specialistOnly.GET("/marketplace/jobs", marketplaceHandler.BrowseJobs)
		specialistOnly.POST("/marketplace/jobs/:jobID/accept", marketplaceHandler.AcceptJob)
		specialistOnly.POST("/jobs/:jobID/complete", jobHandler.CompleteJob)
		specialistOnly.GET("/schedule", jobHandler.ListMySchedule)
		specialistOnly.POST("/verification", accountHandler.SubmitVerification)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/verifications", accountHandler.ListPendingVerification)
		admin.POST("/verifications/:accountID/approve", accountHandler.ApproveVerification)
		admin.POST("/verifications/:accountID/reject", accountHandler.RejectVerification)
		admin.POST("/accounts/:accountID/promote", accountHandler.PromoteToAdmin)
		admin.GET("/accounts/:accountID/transactions", walletHandler.GetAccountTransactions)
		admin.POST("/settlements/:settlementID/settle", walletHandler.SettleTopUp)
		admin.GET("/test-push", TestPush(push))
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
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
