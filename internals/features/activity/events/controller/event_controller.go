package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"kntista_backend/internals/features/activity/events/dto"
	"kntista_backend/internals/features/activity/events/service"
	refController "kntista_backend/internals/features/activity/references/controller"
	helper "kntista_backend/internals/helpers"
	"kntista_backend/internals/helpers/dbtime"
)

type EventController struct {
	Svc *service.EventService
}

func NewEventController(svc *service.EventService) *EventController {
	return &EventController{Svc: svc}
}

// GET /?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (ctl *EventController) List(c *fiber.Ctx) error {
	start, err := optionalQueryDate(c, "start_date")
	if err != nil {
		return helper.WriteError(c, err)
	}
	end, err := optionalQueryDate(c, "end_date")
	if err != nil {
		return helper.WriteError(c, err)
	}

	rows, err := ctl.Svc.ListAll(c.UserContext(), start, end)
	if err != nil {
		return helper.WriteError(c, err)
	}
	return helper.JsonList(c, "ok", rows)
}

func (ctl *EventController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.WriteError(c, err)
	}
	row, err := ctl.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.WriteError(c, err)
	}
	return helper.JsonOK(c, "ok", row)
}

// POST /
func (ctl *EventController) Create(c *fiber.Ctx) error {
	var body dto.CreateEventRequest
	if ok, err := refController.Bind(c, &body); !ok {
		return err
	}
	in, err := body.ToInput()
	if err != nil {
		return helper.WriteError(c, err)
	}

	row, err := ctl.Svc.Create(c.UserContext(), in)
	if err != nil {
		return helper.WriteError(c, err)
	}
	return helper.JsonCreated(c, "", row)
}

// PATCH /:id
func (ctl *EventController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.WriteError(c, err)
	}
	var body dto.UpdateEventRequest
	if ok, err := refController.Bind(c, &body); !ok {
		return err
	}
	in, err := body.ToInput()
	if err != nil {
		return helper.WriteError(c, err)
	}

	row, err := ctl.Svc.Update(c.UserContext(), id, in)
	if err != nil {
		return helper.WriteError(c, err)
	}
	return helper.JsonUpdated(c, "", row)
}

// DELETE / {ids}
func (ctl *EventController) DeleteMany(c *fiber.Ctx) error {
	var body dto.DeleteEventsRequest
	if ok, err := refController.Bind(c, &body); !ok {
		return err
	}

	n, err := ctl.Svc.DeleteMany(c.UserContext(), body.IDs)
	if err != nil {
		return helper.WriteError(c, err)
	}
	return helper.JsonDeleted(c, "", dto.DeleteEventsResponse{DeletedRowCount: n})
}

func optionalQueryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := dbtime.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
