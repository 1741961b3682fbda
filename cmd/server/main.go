package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"homeadvisor/internal/config"
	"homeadvisor/internal/handler"
	"homeadvisor/internal/service"
	"homeadvisor/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("Home Buying Advisor")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize the persistence backend
	st, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s storage: %v", cfg.Storage.Backend, err)
	}
	defer st.Close()
	log.Printf("✅ Storage backend ready: %s", cfg.Storage.Backend)

	// Initialize OpenAI client. When disabled it still satisfies the LLM
	// interface and the modules fall back to their built-in responses.
	llm := service.NewOpenAIClient(&cfg.OpenAI)
	if cfg.OpenAI.Enabled {
		log.Printf("✅ OpenAI client initialized")
		log.Printf("   - API Base: %s", cfg.OpenAI.APIBase)
		log.Printf("   - Chat model: %s", cfg.OpenAI.ChatModel)
		log.Printf("   - Temperature: %.2f", cfg.OpenAI.Temperature)
		log.Printf("   - MaxTokens: %d", cfg.OpenAI.MaxTokens)
	} else {
		log.Println("⚠️  OpenAI is disabled - advisory modules will use built-in responses")
		log.Println("   Set OPENAI_API_KEY environment variable to enable AI features")
	}

	// Initialize services
	selections := service.NewSelectionManager(st)
	ranker := service.NewRanker(
		cfg.Ranking.WeightLocation,
		cfg.Ranking.WeightBudget,
		cfg.Ranking.WeightBedrooms,
		cfg.Ranking.WeightType,
	)
	search := service.NewPropertySearch(llm, service.NewCatalog(), ranker, st,
		cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	agent := service.NewAgent(
		service.NewIntentRouter(),
		selections,
		search,
		service.NewNegotiationAssistant(llm),
		service.NewLegalGuide(llm),
		service.NewMortgageRecommender(llm),
		service.NewNeighborhoodAnalyzer(llm),
		service.NewMarketingGenerator(llm),
		llm,
	)

	log.Println("✅ Services initialized")

	// Initialize handlers
	queryHandler := handler.NewQueryHandler(agent)
	selectionHandler := handler.NewSelectionHandler(selections, agent)
	preferenceHandler := handler.NewPreferenceHandler(st)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "home-buying-advisor",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Conversational entry point
		apiV1.POST("/process_query", queryHandler.ProcessQuery)
		apiV1.POST("/reset_user_data", queryHandler.ResetUserData)

		// Selection list
		apiV1.POST("/select_property", selectionHandler.SelectProperty)
		apiV1.GET("/selected_properties/:user_id", selectionHandler.GetSelectedProperties)
		apiV1.GET("/selection_insights/:user_id", selectionHandler.GetSelectionInsights)
		apiV1.POST("/update_property_status", selectionHandler.UpdatePropertyStatus)
		apiV1.POST("/remove_selected_property", selectionHandler.RemoveSelectedProperty)

		// Preferences
		apiV1.POST("/save_preferences", preferenceHandler.SavePreferences)
		apiV1.GET("/load_preferences/:user_id", preferenceHandler.LoadPreferences)

		// Mocked purchase actions
		apiV1.POST("/book_visit", queryHandler.BookVisit)
		apiV1.POST("/handle_paperwork", queryHandler.HandlePaperwork)
	}

	// Serve static files (frontend)
	// This function is implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API: http://localhost:%d/api/v1", cfg.Server.Port)
	log.Printf("🌐 Web UI: http://localhost:%d", cfg.Server.Port)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}

// newStore builds the configured persistence backend.
func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return store.NewMemory(), nil
	case "file":
		return store.NewFile(cfg.Storage.DataDir)
	case "postgres":
		return store.NewPostgres(cfg.GetPostgresDSN(),
			cfg.Storage.MaxConnections, cfg.Storage.MaxIdleConnections)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
