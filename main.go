package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"progress-service/internal/db"
	"progress-service/internal/event"
	"progress-service/internal/handlers"
	"progress-service/internal/leaderboard"
	"progress-service/internal/repository"
	"progress-service/internal/scoring"
	"progress-service/internal/service"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	db.InitMongo(mongoURI)

	// Day boundaries for streaks and daily questions are computed in one
	// authoritative zone for all devices.
	loc := time.UTC
	if tz := os.Getenv("STREAK_TIMEZONE"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			log.Fatalf("Invalid STREAK_TIMEZONE %q: %v", tz, err)
		}
		loc = parsed
	}
	engine := scoring.NewEngine(loc)

	// Leaderboard cache
	var board *leaderboard.Cache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		board = leaderboard.NewCache(db.InitRedis(addr, os.Getenv("REDIS_PASSWORD")))
	} else {
		log.Println("Redis not configured, leaderboard reads recompute from Mongo")
	}

	// RabbitMQ event publisher
	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.Publisher
	if rabbitURL != "" && eventExchange != "" {
		var err error
		publisher, err = event.NewPublisher(rabbitURL, eventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, progress events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database("progress_service")

	// Repositories
	userRepo := repository.NewUserRepository(database)
	questionRepo := repository.NewQuestionRepository(database)

	// Services
	var scoreBoard service.ScoreBoard
	if board != nil {
		scoreBoard = board
	}
	progressService := service.NewProgressService(userRepo, questionRepo, engine, scoreBoard, publisher)
	questionService := service.NewQuestionService(questionRepo)
	leaderboardService := service.NewLeaderboardService(userRepo, board, publisher)
	userService := service.NewUserService(userRepo, publisher)
	dailyService := service.NewDailyService(userRepo, questionRepo, engine, publisher)

	// Handlers
	progressHandler := handlers.NewProgressHandler(progressService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	userHandler := handlers.NewUserHandler(userService)
	dailyHandler := handlers.NewDailyHandler(dailyService)

	// Public routes
	publicQuestion := r.Group("/public/progress/question")
	{
		publicQuestion.GET("/", questionHandler.ListQuestions)
		publicQuestion.GET("/:id", questionHandler.GetQuestion)
	}
	r.GET("/public/progress/leaderboard", leaderboardHandler.GetTop)

	// Protected routes require an authenticated identity
	protected := r.Group("/protected/progress")
	protected.Use(requireUser())
	{
		protected.POST("/user", userHandler.Provision)
		protected.GET("/user", userHandler.GetProfile)
		protected.GET("/user/history", userHandler.GetHistory)
		protected.GET("/user/rank", leaderboardHandler.GetMyRank)
		protected.GET("/question/:id/status", userHandler.GetQuestionStatus)
		protected.POST("/question/:id/favorite", userHandler.AddFavorite)
		protected.DELETE("/question/:id/favorite", userHandler.RemoveFavorite)
		protected.POST("/question", questionHandler.CreateQuestion)
		protected.POST("/answer", progressHandler.SubmitAnswer)
		protected.GET("/daily", dailyHandler.GetToday)
		protected.POST("/leaderboard/recompute", leaderboardHandler.Recompute)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "6667"
	}
	r.Run(":" + port)
}

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-User-ID") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
