package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pastebox/config"
	"pastebox/handlers"
	"pastebox/handlers/retrieval"
	"pastebox/handlers/upload"
	"pastebox/internal/server"
	"pastebox/internal/services"
	"pastebox/storage"
	"pastebox/utils"

	// Lambda imports (only used when in Lambda mode)
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
)

// Version/build info (set via -ldflags at build time)
var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "none"
)

// Lambda-specific variables
var (
	ginLambdaV1   *ginadapter.GinLambda
	ginLambdaV2   *ginadapter.GinLambdaV2
	ginLambdaOnce sync.Once
)

// isLambdaEnvironment detects if running in AWS Lambda
func isLambdaEnvironment() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

func main() {
	log.Printf("pastebox Version: %s", Version)
	log.Printf("Build Time:      %s", BuildTime)
	log.Printf("Commit Hash:     %s", CommitHash)

	cfg := config.LoadConfig()
	cfg.Version = Version
	cfg.BuildTime = BuildTime
	cfg.CommitHash = CommitHash

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Printf("Upload auth enabled: %v", cfg.AuthToken != "")
	log.Printf("Random names: enabled=%v type=%s", cfg.RandomNameEnabled, cfg.RandomNameType)
	if utils.IsDebugEnabled() {
		log.Printf("[DEBUG] Loaded config: %+v", cfg)
	}

	store, err := selectStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	gen := utils.NewNameGenerator(utils.NamingConfig{
		Enabled:   cfg.RandomNameEnabled,
		Type:      cfg.RandomNameType,
		Words:     cfg.RandomNameWords,
		Separator: cfg.RandomNameSeparator,
		Length:    cfg.RandomNameLength,
	})
	pasteService := services.NewPasteService(store, gen, cfg)

	router := setupRouter(pasteService, store, cfg)

	if isLambdaEnvironment() {
		log.Println("Starting in AWS Lambda mode")
		ginLambdaOnce.Do(func() {
			ginLambdaV1 = ginadapter.New(router)
			ginLambdaV2 = ginadapter.NewV2(router)
		})
		lambda.Start(lambdaHandler)
		return
	}

	if cfg.TCPPort > 0 {
		tcpServer := server.NewTCPServer(cfg, pasteService, slog.Default())
		if err := tcpServer.Start(); err != nil {
			log.Fatalf("Failed to start TCP server: %v", err)
		}
		defer func() {
			if err := tcpServer.Stop(); err != nil {
				log.Printf("Error stopping TCP server: %v", err)
			}
		}()
	}

	log.Println("Starting in HTTP server mode")
	runHTTPServer(router, cfg, store)
}

// selectStore picks the storage backend. Lambda mode always uses S3; server
// mode prefers, in order, MongoDB, DynamoDB, S3, and the local filesystem.
func selectStore(cfg *config.Config) (storage.Store, error) {
	if isLambdaEnvironment() {
		log.Println("Lambda mode: Using S3 storage")
		return storage.NewS3Store(cfg.S3Bucket, cfg.S3Prefix)
	}
	switch {
	case cfg.MongoURL != "":
		log.Println("Server mode: Using MongoDB storage")
		return storage.NewMongoStore(cfg.MongoURL, cfg.MongoDB)
	case cfg.DynamoTable != "":
		log.Println("Server mode: Using DynamoDB storage")
		return storage.NewDynamoStore(cfg.DynamoTable, cfg.DynamoRegion)
	case cfg.S3Bucket != "":
		log.Println("Server mode: Using S3 storage")
		return storage.NewS3Store(cfg.S3Bucket, cfg.S3Prefix)
	default:
		log.Println("Server mode: Using filesystem storage")
		// The naming core assumes the upload root and its url/
		// subdirectory exist; creating them is startup's job.
		if err := os.MkdirAll(filepath.Join(cfg.UploadDir, "url"), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directories: %w", err)
		}
		return storage.NewFilesystemStore(cfg.UploadDir)
	}
}

// lambdaHandler handles Lambda requests for both v1 and v2 event formats
func lambdaHandler(ctx context.Context, event json.RawMessage) (interface{}, error) {
	var reqV2 events.APIGatewayV2HTTPRequest
	if err := json.Unmarshal(event, &reqV2); err == nil && reqV2.RequestContext.HTTP.Method != "" {
		return ginLambdaV2.ProxyWithContext(ctx, reqV2)
	}

	var reqV1 events.APIGatewayProxyRequest
	if err := json.Unmarshal(event, &reqV1); err == nil && reqV1.HTTPMethod != "" {
		return ginLambdaV1.ProxyWithContext(ctx, reqV1)
	}

	log.Printf("Unable to parse event as APIGateway v1 or v2 format")
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       "Unsupported event type",
		Headers: map[string]string{
			"Content-Type": "text/plain",
		},
	}, fmt.Errorf("unsupported lambda event")
}

// setupRouter creates and configures the Gin router
func setupRouter(pasteService *services.PasteService, store storage.Store, cfg *config.Config) *gin.Engine {
	uploadHandler := upload.NewHandler(pasteService, cfg)
	retrievalHandler := retrieval.NewHandler(store, cfg)
	systemHandler := handlers.NewSystemHandler(cfg.Version)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/", systemHandler.Index)

	if cfg.AuthToken != "" {
		router.POST("/", tokenAuth(cfg), uploadHandler.Upload)
	} else {
		router.POST("/", uploadHandler.Upload)
	}
	router.GET("/:name", retrievalHandler.Serve)

	router.GET("/health", systemHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	})

	return router
}

// tokenAuth returns a middleware that validates the upload token supplied
// via Authorization: Bearer <token> or X-Auth-Token headers.
func tokenAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if auth := c.GetHeader("Authorization"); auth != "" {
			if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
				token = strings.TrimSpace(auth[7:])
			}
		}
		if token == "" {
			token = strings.TrimSpace(c.GetHeader("X-Auth-Token"))
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth token"})
			return
		}
		if token != cfg.AuthToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// runHTTPServer starts the HTTP server for container mode
func runHTTPServer(router *gin.Engine, cfg *config.Config, store storage.Store) {
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing storage: %v", err)
		}
	}()

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting pastebox server on port %d", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	} else {
		log.Println("Server shutdown complete")
	}
}
