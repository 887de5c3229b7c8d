package fiber

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ga-dashboard-service/internal/dashboard/adapters/xlsx"
	"ga-dashboard-service/internal/dashboard/core/domain"
	"ga-dashboard-service/internal/dashboard/core/usecase"
)

const (
	SessionHeader    = "X-Session-ID"
	sessionLocalsKey = "session_id"
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type DashboardUseCase interface {
	State(ctx context.Context, sessionID string) (*domain.Dashboard, error)
	SetFilters(ctx context.Context, sessionID string, p domain.FilterPatch) (*domain.Dashboard, error)
	LoadAll(ctx context.Context, sessionID string, opts usecase.LoadOptions) (*domain.Dashboard, error)
}

type DashboardHandler struct {
	uc     DashboardUseCase
	logger *zap.Logger
}

func NewDashboardHandler(uc DashboardUseCase, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{uc: uc, logger: logger}
}

// SessionMiddleware takes the browsing session from X-Session-ID, or starts a
// new one, and echoes it back so the client can keep using it.
func SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(SessionHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(sessionLocalsKey, id)
		c.Set(SessionHeader, id)
		return c.Next()
	}
}

// Register mounts the dashboard routes under prefix.
func (h *DashboardHandler) Register(app fiber.Router, prefix string) {
	g := app.Group(prefix, SessionMiddleware())
	g.Get("/", h.GetDashboard)
	g.Patch("/filters", h.UpdateFilters)
	g.Post("/load", h.LoadDashboard)
	g.Get("/export", h.ExportDashboard)
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionLocalsKey).(string)
	return id
}

// GetDashboard godoc
// @Summary Current dashboard state
// @Description Returns the cached panels and filters of the session without querying the database
// @Tags Dashboard
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Success 200 {object} DashboardResponse
// @Failure 500 {object} ErrorResponse
// @Router /ga/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	d, err := h.uc.State(c.UserContext(), sessionID(c))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toDashboardResponse(d))
}

// UpdateFilters godoc
// @Summary Update dashboard filters
// @Description Applies a partial filter update and reloads the panels if the cache no longer matches
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param request body UpdateFiltersRequest true "Filter patch"
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} DashboardResponse "Upstream failure, previous data kept"
// @Router /ga/dashboard/filters [patch]
func (h *DashboardHandler) UpdateFilters(c *fiber.Ctx) error {
	var req UpdateFiltersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	patch := domain.FilterPatch{
		OnlyAuto:    req.OnlyAuto,
		OnlyEnabled: req.OnlyEnabled,
	}
	if req.GeoLevel != nil {
		level := domain.GeoLevel(*req.GeoLevel)
		patch.GeoLevel = &level
	}

	sid := sessionID(c)
	if _, err := h.uc.SetFilters(c.UserContext(), sid, patch); err != nil {
		return h.writeError(c, err)
	}

	return h.load(c, sid, false)
}

// LoadDashboard godoc
// @Summary Load dashboard panels
// @Description Recomputes the panels when the cache is stale, the filters changed or force is set
// @Tags Dashboard
// @Produce json
// @Param X-Session-ID header string false "Session id"
// @Param force query bool false "Ignore the cache"
// @Success 200 {object} DashboardResponse
// @Failure 502 {object} DashboardResponse "Upstream failure, previous data kept"
// @Router /ga/dashboard/load [post]
func (h *DashboardHandler) LoadDashboard(c *fiber.Ctx) error {
	return h.load(c, sessionID(c), c.QueryBool("force", false))
}

// ExportDashboard godoc
// @Summary Export dashboard
// @Description Downloads the cached panels as an xlsx workbook
// @Tags Dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param X-Session-ID header string false "Session id"
// @Success 200 {file} file
// @Failure 500 {object} ErrorResponse
// @Router /ga/dashboard/export [get]
func (h *DashboardHandler) ExportDashboard(c *fiber.Ctx) error {
	d, err := h.uc.State(c.UserContext(), sessionID(c))
	if err != nil {
		return h.writeError(c, err)
	}

	data, err := xlsx.Export(d)
	if err != nil {
		h.logger.Error("dashboard export failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ga-dashboard.xlsx"`)
	return c.Status(http.StatusOK).Send(data)
}

func (h *DashboardHandler) load(c *fiber.Ctx, sid string, force bool) error {
	d, err := h.uc.LoadAll(c.UserContext(), sid, usecase.LoadOptions{Force: force})
	if err != nil {
		if d == nil {
			return h.writeError(c, err)
		}
		// panels carry the error message next to the last good data
		return c.Status(http.StatusBadGateway).JSON(toDashboardResponse(d))
	}
	return c.Status(http.StatusOK).JSON(toDashboardResponse(d))
}

func (h *DashboardHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidGeoLevel),
		errors.Is(err, usecase.ErrMissingSession):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_filters",
			Message: err.Error(),
		})
	default:
		h.logger.Error("dashboard request failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
