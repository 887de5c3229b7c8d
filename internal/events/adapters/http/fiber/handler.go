package fiber

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"ga-dashboard-service/internal/events/core/usecase"
)

type StoreEventUseCase interface {
	Execute(ctx context.Context, in usecase.StoreEventInput) (bool, error)
	BulkCreateEvents(ctx context.Context, in usecase.BulkCreateEventsInput) (usecase.BulkCreateEventsResult, error)
}

type EventHandler struct {
	storeUC StoreEventUseCase
}

func NewEventHandler(storeUC StoreEventUseCase) *EventHandler {
	return &EventHandler{storeUC: storeUC}
}

// CreateEvent godoc
// @Summary Store a daily event row
// @Description Inserts a daily GA event count, replacing the count of an existing row
// @Tags Events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "Daily event row"
// @Success 201 {object} CreateEventResponse
// @Success 200 {object} CreateEventResponse "Existing row updated"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /ga/events [post]
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req CreateEventRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	created, err := h.storeUC.Execute(c.UserContext(), toInput(req))
	if err != nil {
		return writeError(c, err)
	}

	if !created {
		return c.Status(http.StatusOK).JSON(CreateEventResponse{
			Status: "updated",
		})
	}

	return c.Status(http.StatusCreated).JSON(CreateEventResponse{
		Status: "created",
	})
}

// BulkCreateEvents godoc
// @Summary Bulk store daily event rows
// @Description Validates every row first, then upserts them one by one
// @Tags Events
// @Accept json
// @Produce json
// @Param request body BulkCreateEventsRequest true "Daily event rows"
// @Success 201 {object} BulkCreateEventsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /ga/events/bulk [post]
func (h *EventHandler) BulkCreateEvents(c *fiber.Ctx) error {
	var req BulkCreateEventsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	if len(req.Events) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "events_list_required",
		})
	}

	inputs := make([]usecase.StoreEventInput, len(req.Events))
	for i, e := range req.Events {
		inputs[i] = toInput(e)
	}

	result, err := h.storeUC.BulkCreateEvents(
		c.UserContext(),
		usecase.BulkCreateEventsInput{Events: inputs},
	)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(BulkCreateEventsResponse{
		Created: result.Created,
		Updated: result.Updated,
	})
}

func toInput(r CreateEventRequest) usecase.StoreEventInput {
	return usecase.StoreEventInput{
		Date:      r.Date,
		EventName: r.EventName,
		GroupID:   r.GroupID,
		GeoLevel:  r.GeoLevel,
		GeoValue:  r.GeoValue,
		Count:     r.Count,
	}
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidDailyEvent),
		errors.Is(err, usecase.ErrInvalidDate),
		errors.Is(err, usecase.ErrFutureDate),
		errors.Is(err, usecase.ErrNegativeCount),
		errors.Is(err, usecase.ErrInvalidGeoLevel):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_event",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
