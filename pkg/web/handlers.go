package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/nirs4all/studio/pkg/models"
	"github.com/nirs4all/studio/pkg/services"
	"github.com/nirs4all/studio/pkg/workspace"
)

// APIHandlers bundles the studio API endpoints. The catalog document is
// served verbatim; it may be nil when the server was started without one.
type APIHandlers struct {
	pipelineService *services.Pipeline
	workspaces      *workspace.Manager
	catalog         []byte
	validator       *validator.Validate
}

func NewAPIHandlers(
	pipelineService *services.Pipeline,
	workspaces *workspace.Manager,
	catalog []byte,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		pipelineService: pipelineService,
		workspaces:      workspaces,
		catalog:         catalog,
		validator:       validator,
	}
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	storeCheck, storeOk := h.pipelineService.HealthCheck(c.Context())

	_, err := h.workspaces.Current()
	workspaceSelected := err == nil

	status := "healthy"
	httpStatus := http.StatusOK

	// A missing workspace is a usable state: the store reports unhealthy
	// until one is selected.
	if workspaceSelected && !storeOk {
		status = "unhealthy"
		httpStatus = http.StatusInternalServerError
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status": status,
		"checkers": fiber.Map{
			"store":              storeCheck,
			"workspace_selected": workspaceSelected,
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) GetWorkspace(c fiber.Ctx) error {
	if err := h.workspaces.RefreshAccess(); err != nil {
		if workspace.IsNoWorkspace(err) {
			return c.JSON(fiber.Map{"workspace": nil})
		}

		return internalError(c, err)
	}

	config, err := h.workspaces.Current()
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"workspace": config})
}

func (h *APIHandlers) SelectWorkspace(c fiber.Ctx) error {
	var req SelectWorkspaceRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	config, err := h.workspaces.Select(req.Path)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(fiber.Map{"workspace": config})
}

func (h *APIHandlers) LinkDataset(c fiber.Ctx) error {
	var req LinkDatasetRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	dataset, err := h.workspaces.LinkDataset(req.Path)
	if err != nil {
		if workspace.IsNoWorkspace(err) || workspace.IsDatasetLinked(err) {
			return handleServiceError(c, err)
		}

		return badRequest(c, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(dataset)
}

func (h *APIHandlers) UnlinkDataset(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Dataset ID is required")
	}

	if err := h.workspaces.UnlinkDataset(id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetGroups(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"groups": h.workspaces.Groups()})
}

func (h *APIHandlers) CreateGroup(c fiber.Ctx) error {
	var req CreateGroupRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	group, err := h.workspaces.CreateGroup(req.Name)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(group)
}

func (h *APIHandlers) RenameGroup(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Group ID is required")
	}

	var req RenameGroupRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.workspaces.RenameGroup(id, req.Name); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) DeleteGroup(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Group ID is required")
	}

	if err := h.workspaces.DeleteGroup(id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) AddDatasetToGroup(c fiber.Ctx) error {
	groupID := c.Params("id")
	datasetID := c.Params("datasetId")

	if groupID == "" || datasetID == "" {
		return badRequest(c, "Group and dataset IDs are required")
	}

	if err := h.workspaces.AddDatasetToGroup(groupID, datasetID); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) RemoveDatasetFromGroup(c fiber.Ctx) error {
	groupID := c.Params("id")
	datasetID := c.Params("datasetId")

	if groupID == "" || datasetID == "" {
		return badRequest(c, "Group and dataset IDs are required")
	}

	if err := h.workspaces.RemoveDatasetFromGroup(groupID, datasetID); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetPipelines(c fiber.Ctx) error {
	summaries, err := h.pipelineService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"pipelines": summaries})
}

func (h *APIHandlers) GetPipeline(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Pipeline ID is required")
	}

	doc, err := h.pipelineService.Get(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(doc)
}

func (h *APIHandlers) SavePipeline(c fiber.Ctx) error {
	var req SavePipelineRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	doc := &models.PipelineDocument{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Steps:       req.Steps,
	}

	saved, err := h.pipelineService.Save(c.Context(), doc)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (h *APIHandlers) DeletePipeline(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Pipeline ID is required")
	}

	if err := h.pipelineService.Delete(c.Context(), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) ExportPipeline(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Pipeline ID is required")
	}

	data, err := h.pipelineService.Export(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)

	return c.Send(data)
}

func (h *APIHandlers) ConvertToTree(c fiber.Ctx) error {
	var req ConvertToTreeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if req.Steps == nil {
		req.Steps = []any{}
	}

	return c.JSON(ConvertToTreeResponse{Nodes: h.pipelineService.ToTree(req.Steps)})
}

func (h *APIHandlers) ConvertToSteps(c fiber.Ctx) error {
	var req ConvertToStepsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	return c.JSON(ConvertToStepsResponse{Steps: h.pipelineService.ToSteps(req.Nodes)})
}

func (h *APIHandlers) GetComponents(c fiber.Ctx) error {
	if len(h.catalog) == 0 {
		return notFound(c, "no component library loaded")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)

	return c.Send(h.catalog)
}
