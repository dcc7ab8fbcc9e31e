package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"gameshelf/internal/config"
	"gameshelf/internal/constants"
	"gameshelf/internal/database"
	"gameshelf/internal/epic"
	"gameshelf/internal/handlers"
	"gameshelf/internal/middleware"
	"gameshelf/internal/repository"
	"gameshelf/internal/services"
	"gameshelf/internal/steam"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware: cookie store by default, Redis when configured
	var store sessions.Store
	if cfg.RedisHost != "" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret), // authentication key
		)
		if err != nil {
			log.Fatalf("Failed to create Redis store: %v", err)
		}
		store = rs
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	gameRepo := repository.NewGameRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)
	followRepo := repository.NewFollowRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)

	// Initialize storefront clients
	steamClient := steam.New(cfg.SteamAPIKey)
	epicClient := epic.New(cfg.EpicClientID, cfg.EpicClientSecret, cfg.EpicDeploymentID)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	postService := services.NewPostService(postRepo, userRepo)
	libraryService := services.NewLibraryService(gameRepo, libraryRepo, userRepo)
	importService := services.NewImportService(libraryRepo, steamClient, epicClient)
	socialService := services.NewSocialService(userRepo, followRepo, libraryRepo)
	recService := services.NewRecommendationService(prefRepo, libraryRepo, followRepo, gameRepo)
	aiService := services.NewAIService(cfg.OpenAIAPIKey)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	postHandler := handlers.NewPostHandler(postService)
	libraryHandler := handlers.NewLibraryHandler(libraryService, importService)
	socialHandler := handlers.NewSocialHandler(socialService)
	recHandler := handlers.NewRecommendationHandler(recService, aiService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Gameshelf API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.DELETE("/me", middleware.RequireAuth(), authHandler.DeleteCurrentUser)
		}

		// Post routes (protected)
		posts := api.Group("/posts")
		posts.Use(middleware.RequireAuth())
		{
			posts.GET("", postHandler.ListPosts)
			posts.POST("", postHandler.CreatePost)
		}

		// Library routes (protected)
		library := api.Group("/library")
		library.Use(middleware.RequireAuth())
		{
			library.GET("", libraryHandler.ListLibrary)
			library.GET("/random", libraryHandler.RandomGame)
			library.POST("/games", libraryHandler.AddGame)
			library.DELETE("/games/:game_id", libraryHandler.RemoveGame)
			library.POST("/import/steam", libraryHandler.ImportSteam)
			library.POST("/import/epic", libraryHandler.ImportEpic)
			library.POST("/import/epic/manifest", libraryHandler.ImportEpicManifest)
		}

		// Social routes (protected)
		social := api.Group("/social")
		social.Use(middleware.RequireAuth())
		{
			social.GET("/users", socialHandler.BrowseUsers)
			social.POST("/users/:id/follow", socialHandler.FollowUser)
			social.DELETE("/users/:id/follow", socialHandler.UnfollowUser)
			social.GET("/following", socialHandler.ListFollowing)
			social.GET("/followers", socialHandler.ListFollowers)
			social.GET("/users/:id/common-games", socialHandler.CommonGames)
		}

		// Recommendation routes (protected)
		recs := api.Group("/recommendations")
		recs.Use(middleware.RequireAuth())
		{
			recs.GET("", recHandler.GetRecommendations)
			recs.GET("/preferences", recHandler.GetPreferences)
			recs.PUT("/preferences", recHandler.SetPreferences)
		}

		// Game tag routes (protected)
		games := api.Group("/games")
		games.Use(middleware.RequireAuth())
		{
			games.GET("/:id/tags", recHandler.GetGameTags)
			games.PUT("/:id/tags", recHandler.SetGameTags)
			games.GET("/:id/tags/suggest", recHandler.SuggestGameTags)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
