package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pinboard/internal/config"
	"pinboard/internal/handler"
	"pinboard/internal/middleware"
	"pinboard/internal/model"
	"pinboard/internal/repository"
	"pinboard/internal/validation"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"
)

type Server struct {
	Engine *gin.Engine
	Client *mongo.Client
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Connect to MongoDB
	client, err := repository.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	db := client.Database(cfg.MongoDB)
	if err := repository.EnsureIndexes(context.Background(), db); err != nil {
		return nil, fmt.Errorf("❌ failed to ensure indexes: %w", err)
	}
	log.Println("✅ Connected to database")

	// Custom binding rules for pin/board fields
	if err := validation.Register(); err != nil {
		return nil, err
	}

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	pinRepo := repository.NewPinRepository(db)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, cfg.JWTSecret)
	boardHandler := handler.NewBoardHandler(boardRepo, pinRepo, userRepo)
	pinHandler := handler.NewPinHandler(pinRepo, boardRepo, userRepo)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/users", userHandler.List)
	r.GET("/pins", pinHandler.List)
	r.GET("/pins/:id", pinHandler.GetByID)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Routes readable anonymously but privacy-filtered when a token is sent
	optional := r.Group("/")
	optional.Use(middleware.OptionalJWTAuthMiddleware(cfg.JWTSecret))
	{
		optional.GET("/boards", boardHandler.List)
		optional.GET("/boards/:id", boardHandler.GetByID)
	}

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		authorized.GET("/users/profile", userHandler.Profile)

		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)

		// Pin routes
		authorized.PUT("/pins/:id", pinHandler.Update)
		authorized.DELETE("/pins/:id", pinHandler.Delete)
		authorized.POST("/pins/:id/repin", pinHandler.Repin)
		authorized.POST("/pins/:id/toggle-like", pinHandler.ToggleLike)
	}

	// Pin creation is additionally role-gated
	r.POST("/pins",
		middleware.JWTAuthMiddleware(cfg.JWTSecret, model.RoleUser, model.RoleAdmin),
		pinHandler.Create,
	)

	return &Server{
		Engine: r,
		Client: client,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}
	if err := s.Client.Disconnect(ctx); err != nil {
		log.Printf("⚠️  Failed to disconnect from database: %s", err)
	}

	log.Println("✅ Server exited properly")
}
