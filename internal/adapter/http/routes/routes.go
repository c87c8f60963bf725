package routes

import (
	"context"
	"log"
	"os"
	"strconv"

	_ "firesec_estimator/docs" // generated swagger docs
	"firesec_estimator/internal/adapter/http/handlers"
	"firesec_estimator/internal/adapter/persistence/repository"
	"firesec_estimator/internal/infrastructure/cache"
	"firesec_estimator/internal/infrastructure/database"
	"firesec_estimator/internal/infrastructure/email"
	"firesec_estimator/internal/infrastructure/extract"
	genaiclient "firesec_estimator/internal/infrastructure/genai"
	"firesec_estimator/internal/infrastructure/pricing"
	"firesec_estimator/internal/infrastructure/storage"
	"firesec_estimator/internal/usecase"
	"firesec_estimator/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ctx := context.Background()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	awsCfg, err := database.NewDynamoDBConfigFromEnv(ctx)
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	ddb := database.ConnectDynamoDB()

	projectRepo := repository.NewProjectDynamoRepository(ddb)
	workflowRepo := repository.NewWorkflowDynamoRepository(ddb)
	approvalRepo := repository.NewApprovalDynamoRepository(ddb)

	gen, err := genaiclient.NewVertexClient(ctx,
		os.Getenv("GCP_PROJECT_ID"),
		getenvDefault("GCP_REGION", "us-central1"),
		os.Getenv("GENAI_MODEL"),
	)
	if err != nil {
		log.Fatalf("Failed to create generative client: %v", err)
	}

	var contentCache interfaces.IContentCache = cache.NewNoopCache()
	if url := os.Getenv("REDIS_URL"); url != "" {
		redisCache, err := cache.NewRedisCache(url, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("content cache not configured, running without")
		} else {
			contentCache = redisCache
		}
	}

	store := storage.NewS3Store(s3.NewFromConfig(awsCfg), getenvDefault("DOCUMENTS_BUCKET", "firesec-documents"))
	notifier := email.NewSESNotifier(
		sesv2.NewFromConfig(awsCfg),
		getenvDefault("EMAIL_SENDER", "noreply@firesec.example.com"),
		getenvDefault("APPROVER_EMAIL", "approvals@firesec.example.com"),
	)

	catalog := loadCatalog(logger)

	var detector interfaces.IScopeDetector = usecase.NewKeywordScopeDetector()
	if os.Getenv("SCOPE_DETECTOR") == "llm" {
		detector = usecase.NewLLMScopeDetector(gen, logger)
	}

	classifier := usecase.NewDocumentClassifier(map[string]interfaces.ITextExtractor{
		"text/plain":      extract.NewPlainTextExtractor(),
		"text/markdown":   extract.NewPlainTextExtractor(),
		"text/csv":        extract.NewPlainTextExtractor(),
		"application/pdf": extract.NewPDFExtractor(gen, logger),
		"image/png":       extract.NewImageExtractor(gen, "image/png"),
		"image/jpeg":      extract.NewImageExtractor(gen, "image/jpeg"),
		"application/dxf": extract.NewDXFExtractor(),
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": extract.NewDocxExtractor(),
	})

	projectUseCase := usecase.NewProjectUseCase(projectRepo, notifier, logger)
	estimateUseCase := usecase.NewEstimateUseCase(catalog, detector, gen, logger)
	ingestionUseCase := usecase.NewIngestionUseCase(classifier, usecase.NewChunker(), gen, contentCache, store, logger)
	workflowUseCase := usecase.NewWorkflowUseCase(workflowRepo, projectUseCase, estimateUseCase, gen, logger)
	approvalUseCase := usecase.NewApprovalUseCase(approvalRepo, projectUseCase, notifier, logger)

	projectHandler := handlers.NewProjectHandler(projectUseCase)
	documentHandler := handlers.NewDocumentHandler(ingestionUseCase, store)
	workflowHandler := handlers.NewWorkflowHandler(workflowUseCase, ingestionUseCase, estimateUseCase)
	approvalHandler := handlers.NewApprovalHandler(approvalUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addEstimatorRoutes(v1, projectHandler, documentHandler, workflowHandler, approvalHandler)
}

func loadCatalog(logger zerolog.Logger) interfaces.IPricingCatalog {
	path := os.Getenv("PRICING_CATALOG_PATH")
	if path == "" {
		return pricing.NewDefaultCatalog()
	}
	catalog, err := pricing.LoadCatalog(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("pricing catalog unusable, using built-in baseline")
		return pricing.NewDefaultCatalog()
	}
	return catalog
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
