package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"kntista_backend/internals/features/activity/locations/dto"
	"kntista_backend/internals/features/activity/locations/model"
	"kntista_backend/internals/features/activity/locations/service"
	refController "kntista_backend/internals/features/activity/references/controller"
	refDTO "kntista_backend/internals/features/activity/references/dto"
	helper "kntista_backend/internals/helpers"
)

type LocationController struct {
	Svc *service.LocationService
}

func NewLocationController(svc *service.LocationService) *LocationController {
	return &LocationController{Svc: svc}
}

// GET /search?name=&is_offline=&address=&address_null=true
func (ctl *LocationController) Search(c *fiber.Ctx) error {
	isOffline, err := helper.ParseBoolQuery(c, "is_offline")
	if err != nil {
		return helper.WriteError(c, err)
	}
	addressNull, err := helper.ParseBoolQuery(c, "address_null")
	if err != nil {
		return helper.WriteError(c, err)
	}

	rows, err := ctl.Svc.Search(c.UserContext(), service.SearchFilter{
		Name:          strings.TrimSpace(c.Query("name")),
		IsOffline:     isOffline,
		Address:       strings.TrimSpace(c.Query("address")),
		AddressIsNull: addressNull != nil && *addressNull,
	})
	if err != nil {
		return helper.WriteError(c, err)
	}
	return helper.JsonList(c, "ok", rows)
}

// POST / {name, is_offline, address}
func (ctl *LocationController) Create(c *fiber.Ctx) error {
	var body dto.CreateLocationRequest
	if ok, err := refController.Bind(c, &body); !ok {
		return err
	}

	row, err := ctl.Svc.Insert(c.UserContext(), body.ToNewLocation())
	if err != nil {
		return helper.WriteError(c, err)
	}
	if row == nil {
		return helper.JsonOK(c, "already exists", refDTO.InsertResponse[model.LocationModel]{})
	}
	return helper.JsonCreated(c, "", refDTO.InsertResponse[model.LocationModel]{InsertedOrRestored: row})
}

// PATCH /:id
func (ctl *LocationController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.WriteError(c, err)
	}
	var body dto.UpdateLocationRequest
	if ok, err := refController.Bind(c, &body); !ok {
		return err
	}

	row, err := ctl.Svc.Update(c.UserContext(), id, body.ToPatch())
	if err != nil {
		return helper.WriteError(c, err)
	}
	return helper.JsonUpdated(c, "", row)
}
