package web

import (
	"github.com/flowforge/flowforge/pkg/services"
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
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
		WithType("automation_not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleServiceError provides typed error handling for service layer errors.
func handleServiceError(c fiber.Ctx, err error) error {
	switch {
	case services.IsValidationError(err):
		detail := err.Error()
		if field := services.InvalidDraftField(err); field != "" {
			detail = "invalid draft: missing " + field
		}

		problem := problems.NewStatusProblem(400).
			WithInstance(c.Path()).
			WithType("invalid_draft").
			WithDetail(detail)

		return c.Status(fiber.StatusBadRequest).JSON(problem)

	case services.IsNotFound(err):
		return notFound(c, "automation not found")

	case services.IsExtractorFailure(err):
		problem := problems.NewStatusProblem(502).
			WithInstance(c.Path()).
			WithType("extractor_failure").
			WithDetail("suggestion service unavailable")

		return c.Status(fiber.StatusBadGateway).JSON(problem)

	default:
		// Don't expose internal error details beyond the problem body.
		return internalError(c, err)
	}
}
