package presets

import (
	"errors"

	"blendshape-presets/core/logger"
	"blendshape-presets/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the preset library.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the preset routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/presets")
	group.Get("/", h.HandleList)
	group.Get("/:name", h.HandleGet)
	group.Put("/:name", h.HandlePut)
	group.Delete("/:name", h.HandleDelete)
	group.Post("/:name/capture", h.HandleCapture)
	group.Post("/:name/apply", h.HandleApply)
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrPresetNotFound), errors.Is(err, ErrModelNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidName),
		errors.Is(err, reconcile.ErrEmptyInput),
		errors.Is(err, reconcile.ErrNotJSON),
		errors.Is(err, reconcile.ErrInvalidJSON),
		errors.Is(err, reconcile.ErrEmptyBundle):
		return fiber.StatusBadRequest
	case errors.Is(err, reconcile.ErrNoSelection),
		errors.Is(err, reconcile.ErrNoTargets),
		errors.Is(err, reconcile.ErrNoChannels):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c *fiber.Ctx, op string, err error) error {
	status := statusFor(err)
	l := logger.WithRayID(h.service.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error(op+" failed", zap.String("preset", c.Params("name")), zap.Error(err))
	} else {
		l.Warn(op+" rejected", zap.String("preset", c.Params("name")), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func sceneRequest(c *fiber.Ctx) SceneRequest {
	return SceneRequest{
		Model:           c.Query("model"),
		Root:            c.Query("root"),
		IncludeChildren: c.QueryBool("include_children", false),
	}
}

// HandleList lists stored presets.
// @Summary List Presets
// @Tags presets
// @Produce json
// @Success 200 {array} models.Preset
// @Router /presets [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	list, err := h.service.List(c.Context())
	if err != nil {
		return h.fail(c, "List presets", err)
	}
	return c.JSON(list)
}

// HandleGet returns a preset bundle.
// @Summary Get Preset
// @Tags presets
// @Produce json
// @Param name path string true "Preset name"
// @Success 200 {object} reconcile.Bundle
// @Failure 404 {object} map[string]string "Not Found"
// @Router /presets/{name} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	bundle, err := h.service.Get(c.Context(), c.Params("name"))
	if err != nil {
		return h.fail(c, "Get preset", err)
	}
	return c.JSON(bundle)
}

// HandlePut stores the request body as a preset.
// @Summary Store Preset
// @Tags presets
// @Accept json
// @Produce json
// @Param name path string true "Preset name"
// @Success 200 {object} models.Preset
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /presets/{name} [put]
func (h *Handler) HandlePut(c *fiber.Ctx) error {
	p, err := h.service.PutRaw(c.Context(), c.Params("name"), c.Body())
	if err != nil {
		return h.fail(c, "Store preset", err)
	}
	return c.JSON(p)
}

// HandleDelete removes a preset.
// @Summary Delete Preset
// @Tags presets
// @Param name path string true "Preset name"
// @Success 204
// @Failure 404 {object} map[string]string "Not Found"
// @Router /presets/{name} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("name")); err != nil {
		return h.fail(c, "Delete preset", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCapture collects weights from a stored model into a preset.
// @Summary Capture Preset
// @Tags presets
// @Produce json
// @Param name path string true "Preset name"
// @Param model query string true "Model key"
// @Param root query string false "Root node name or path"
// @Param include_children query boolean false "Include descendants"
// @Success 200 {object} CaptureResult
// @Router /presets/{name}/capture [post]
func (h *Handler) HandleCapture(c *fiber.Ctx) error {
	result, err := h.service.Capture(c.Context(), c.Params("name"), sceneRequest(c))
	if err != nil {
		return h.fail(c, "Capture preset", err)
	}
	return c.JSON(result)
}

// HandleApply applies a preset to a stored model.
// @Summary Apply Preset
// @Tags presets
// @Produce json
// @Param name path string true "Preset name"
// @Param model query string true "Model key"
// @Param root query string false "Root node name or path"
// @Param include_children query boolean false "Include descendants"
// @Param dry_run query boolean false "Resolve without writing"
// @Success 200 {object} reconcile.ImportResult
// @Router /presets/{name}/apply [post]
func (h *Handler) HandleApply(c *fiber.Ctx) error {
	result, err := h.service.Apply(c.Context(), c.Params("name"), sceneRequest(c), c.QueryBool("dry_run", false))
	if err != nil {
		return h.fail(c, "Apply preset", err)
	}
	return c.JSON(result)
}
