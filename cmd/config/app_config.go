package config

import (
	"Larder-Backend/internal/api/handlers"
	"Larder-Backend/internal/api/routes"
	"Larder-Backend/internal/middleware"
	"Larder-Backend/internal/utils"
	"Larder-Backend/internal/utils/storage"
	"Larder-Backend/pkg/catalog"
	"Larder-Backend/pkg/consume"
	"Larder-Backend/pkg/container"
	"Larder-Backend/pkg/events"
	"Larder-Backend/pkg/lot"
	"Larder-Backend/pkg/stats"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	notifier := events.NewNotifier()

	// Repository
	containerRepository := container.NewContainerRepository(db)
	productRepository := catalog.NewProductRepository(db)
	lotRepository := lot.NewLotRepository(db)

	// Service
	containerService := container.NewContainerService(containerRepository, s3, notifier)
	productService := catalog.NewProductService(productRepository, notifier)
	lotService := lot.NewLotService(lotRepository, containerRepository, productRepository, notifier)
	consumeService := consume.NewConsumeService(lotRepository, notifier)
	statsService := stats.NewStatsService(containerRepository, lotRepository)

	// Handler
	containerHandler := handlers.NewContainerHandler(containerService, validator)
	productHandler := handlers.NewProductHandler(productService, validator)
	lotHandler := handlers.NewLotHandler(lotService, consumeService, validator)
	statsHandler := handlers.NewStatsHandler(statsService)

	// routes
	routesConfig := routes.Config{
		App:              app,
		ContainerHandler: containerHandler,
		LotHandler:       lotHandler,
		ProductHandler:   productHandler,
		StatsHandler:     statsHandler,
		Middleware:       middlewares,
	}
	routesConfig.Setup()
	return app, nil
}
