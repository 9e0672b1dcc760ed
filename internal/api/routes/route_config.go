package routes

import (
	"Larder-Backend/internal/api/handlers"
	"Larder-Backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	ContainerHandler handlers.ContainerHandler
	LotHandler       handlers.LotHandler
	ProductHandler   handlers.ProductHandler
	StatsHandler     handlers.StatsHandler
	Middleware       middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Containers()
	c.Lots()
	c.Products()
	c.Stats()
	c.GuestRoute()
}

func (c *Config) Containers() {
	containers := c.App.Group("/api/v1/containers")
	{
		containers.Post("", c.ContainerHandler.AddContainer)
		containers.Get("", c.ContainerHandler.ListChildren)
		containers.Patch("/:id", c.ContainerHandler.UpdateContainer)
		containers.Post("/:id/move", c.ContainerHandler.MoveContainer)
		containers.Delete("/:id", c.ContainerHandler.DeleteContainer)
		containers.Get("/:id/path", c.ContainerHandler.GetPath)
		containers.Post("/image", c.ContainerHandler.UploadContainerImage)

		containers.Get("/:id/stats", c.StatsHandler.GetContainerStats)
		containers.Get("/:id/products", c.StatsHandler.GetGroupedLots)
	}
}

func (c *Config) Lots() {
	lots := c.App.Group("/api/v1/lots")
	{
		lots.Post("", c.LotHandler.AddLot)
		lots.Get("", c.LotHandler.QueryLots)
		lots.Patch("/:id", c.LotHandler.UpdateLot)
		lots.Delete("/:id", c.LotHandler.DeleteLot)
		lots.Post("/move", c.LotHandler.MoveLots)
		lots.Post("/consume", c.LotHandler.Consume)
		lots.Post("/notify-expiring", c.LotHandler.NotifyExpiring)
	}
}

func (c *Config) Products() {
	products := c.App.Group("/api/v1/products")
	{
		products.Post("", c.ProductHandler.AddProduct)
		products.Get("", c.ProductHandler.GetProducts)
		products.Get("/:id", c.ProductHandler.GetProduct)
		products.Patch("/:id", c.ProductHandler.UpdateProduct)
		products.Delete("/:id", c.ProductHandler.DeleteProduct)
	}
}

func (c *Config) Stats() {
	c.App.Get("/api/v1/dashboard", c.StatsHandler.GetDashboardStats)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
