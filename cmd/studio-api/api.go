// Package main provides the studio API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/nirs4all/studio/pkg/library"
	"github.com/nirs4all/studio/pkg/persistence"
	"github.com/nirs4all/studio/pkg/services"
	"github.com/nirs4all/studio/pkg/web"
	"github.com/nirs4all/studio/pkg/workspace"
)

type API struct {
	logger     *slog.Logger
	workspaces *workspace.Manager
	store      persistence.PipelineStore
	index      *library.Index
	catalog    []byte
	validate   *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	workspaces *workspace.Manager,
	store persistence.PipelineStore,
	index *library.Index,
	catalog []byte,
) *API {
	return &API{
		logger:     logger,
		workspaces: workspaces,
		store:      store,
		index:      index,
		catalog:    catalog,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	pipelineService := services.NewPipeline(a.store, a.index)

	handlers := web.NewAPIHandlers(pipelineService, a.workspaces, a.catalog, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("nirs4all Studio API")
	})

	// The editor fetches the catalog from this fixed path.
	app.Get("/component-library.json", handlers.GetComponents)

	api := app.Group("/api")
	api.Get("/health", handlers.HealthCheck)
	api.Get("/components", handlers.GetComponents)

	api.Get("/workspace", handlers.GetWorkspace)
	api.Post("/workspace/select", handlers.SelectWorkspace)

	api.Post("/datasets/link", handlers.LinkDataset)
	api.Delete("/datasets/:id", handlers.UnlinkDataset)

	g := api.Group("/groups")
	g.Get("/", handlers.GetGroups)
	g.Post("/", handlers.CreateGroup)
	g.Patch("/:id", handlers.RenameGroup)
	g.Delete("/:id", handlers.DeleteGroup)
	g.Put("/:id/datasets/:datasetId", handlers.AddDatasetToGroup)
	g.Delete("/:id/datasets/:datasetId", handlers.RemoveDatasetFromGroup)

	p := api.Group("/pipelines")
	p.Get("/", handlers.GetPipelines)
	p.Post("/", handlers.SavePipeline)
	p.Get("/:id", handlers.GetPipeline)
	p.Delete("/:id", handlers.DeletePipeline)
	p.Get("/:id/export", handlers.ExportPipeline)

	api.Post("/convert/tree", handlers.ConvertToTree)
	api.Post("/convert/steps", handlers.ConvertToSteps)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
