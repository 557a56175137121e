package web

import (
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"

	"github.com/nirs4all/studio/pkg/persistence"
	"github.com/nirs4all/studio/pkg/services"
	"github.com/nirs4all/studio/pkg/workspace"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func conflict(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(409).
		WithInstance(c.Path()).
		WithType("conflict").
		WithDetail(detail)

	return c.Status(fiber.StatusConflict).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleServiceError maps service and storage errors onto RFC-7807 problem
// responses.
func handleServiceError(c fiber.Ctx, err error) error {
	switch {
	case services.IsValidationError(err):
		return badRequest(c, err.Error())

	case workspace.IsNoWorkspace(err):
		return conflict(c, "no workspace selected")

	case workspace.IsDatasetLinked(err):
		return conflict(c, "dataset already linked")

	case workspace.IsDatasetNotFound(err):
		return notFound(c, "dataset not found")

	case workspace.IsGroupNotFound(err):
		return notFound(c, "group not found")

	case persistence.IsPipelineNotFound(err):
		return notFound(c, "pipeline not found")

	default:
		return internalError(c, err)
	}
}
