package main

import (
	"log"
	"net/http"
	"os"

	"editorial-cms/config"
	"editorial-cms/handlers"
	"editorial-cms/middleware"
	"editorial-cms/repositories"
	"editorial-cms/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	db := config.InitDB()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	versionRepo := repositories.NewArticleVersionRepository(db)
	changeRepo := repositories.NewChangeRecordRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	revisionRepo := repositories.NewRevisionRequestRepository(db)
	tagRepo := repositories.NewTagRepository(db)

	// Initialize services
	diff := services.NewDiffEngine()
	policy := services.NewArticlePolicy()
	authService := services.NewAuthService(userRepo)
	articleService := services.NewArticleService(articleRepo, versionRepo, reviewRepo, tagRepo, diff, policy)
	reviewService := services.NewReviewService(articleRepo, reviewRepo, userRepo, policy)
	changeService := services.NewChangeService(articleRepo, versionRepo, changeRepo, diff, policy)
	revisionService := services.NewRevisionService(articleRepo, revisionRepo, policy)
	tagService := services.NewTagService(tagRepo, policy)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	articleHandler := handlers.NewArticleHandler(articleService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	changeHandler := handlers.NewChangeHandler(changeService)
	revisionHandler := handlers.NewRevisionHandler(revisionService)
	tagHandler := handlers.NewTagHandler(tagService)

	// Setup router
	router := gin.Default()
	router.Use(middleware.RequestID())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Profile
			protected.GET("/profile", authHandler.GetProfile)

			// Articles
			articles := protected.Group("/articles")
			{
				articles.POST("", articleHandler.CreateArticle)
				articles.GET("", articleHandler.GetArticles)
				articles.GET("/:id", articleHandler.GetArticle)
				articles.PUT("/:id", articleHandler.UpdateArticle)
				articles.DELETE("/:id", articleHandler.DeleteArticle)

				// Workflow transitions
				articles.POST("/:id/submit", articleHandler.SubmitArticle)
				articles.POST("/:id/approve", articleHandler.ApproveArticle)
				articles.POST("/:id/reject", articleHandler.RejectArticle)
				articles.POST("/:id/publish", articleHandler.PublishArticle)

				// Versions
				articles.GET("/:id/versions", articleHandler.GetArticleVersions)
				articles.GET("/:id/versions/:version_number", articleHandler.GetArticleVersion)
				articles.GET("/:id/compare", articleHandler.CompareVersions)

				// Reviews
				articles.POST("/:id/reviewers", reviewHandler.AssignReviewer)
				articles.POST("/:id/reviewers/reassign", reviewHandler.ReassignReviewer)
				articles.POST("/:id/reviews", reviewHandler.SubmitReview)
				articles.GET("/:id/assignments", reviewHandler.GetAssignments)
				articles.GET("/:id/decisions", reviewHandler.GetDecisions)

				// Tracked changes
				articles.POST("/:id/changes", changeHandler.TrackChanges)
				articles.GET("/:id/changes", changeHandler.GetChanges)
				articles.POST("/:id/changes/approve-all", changeHandler.ApproveAllChanges)
				articles.POST("/:id/changes/reject-all", changeHandler.RejectAllChanges)

				// Revision requests
				articles.POST("/:id/revision-requests", revisionHandler.RequestRevision)
				articles.GET("/:id/revision-requests", revisionHandler.GetRequests)
				articles.POST("/:id/revision-requests/approve", revisionHandler.ApproveRevision)
				articles.POST("/:id/revision-requests/reject", revisionHandler.RejectRevision)
			}

			// Change records addressed directly
			changes := protected.Group("/changes")
			{
				changes.POST("/:change_id/approve", changeHandler.ApproveChange)
				changes.POST("/:change_id/reject", changeHandler.RejectChange)
			}

			// Revision request completion by the author
			revisions := protected.Group("/revision-requests")
			{
				revisions.POST("/:request_id/complete", revisionHandler.CompleteRevision)
			}

			// Tags
			tags := protected.Group("/tags")
			{
				tags.POST("", tagHandler.CreateTag)
				tags.GET("", tagHandler.GetTags)
				tags.GET("/:id", tagHandler.GetTag)
			}
		}

		// Public article routes (published only)
		public := v1.Group("/public")
		{
			public.GET("/articles", articleHandler.GetPublicArticles)
			public.GET("/articles/:id", articleHandler.GetPublicArticle)
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
