// Package controller exposes reference services over HTTP. The handler
// builders are shared by every reference resource; ReferenceController wires
// them for name-only resources.
package controller

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kntista_backend/internals/features/activity/references/dto"
	refService "kntista_backend/internals/features/activity/references/service"
	helper "kntista_backend/internals/helpers"
)

var validate = validator.New()

type Lister[T any] interface {
	ListAll(ctx context.Context) ([]refService.Counted[T], error)
}

type Getter[T any] interface {
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
}

type Deleter interface {
	DeleteOne(ctx context.Context, id uuid.UUID) (refService.DeleteResult, error)
	DeleteUnused(ctx context.Context) (int64, error)
}

// NameService is a reference service whose rows are created from a name alone.
type NameService[T any] interface {
	Lister[T]
	Getter[T]
	Deleter
	Search(ctx context.Context, name string) ([]T, error)
	Insert(ctx context.Context, name string) (*T, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*T, error)
}

/* =========================
   Shared handlers
   ========================= */

func ListHandler[T any](svc Lister[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListAll(c.UserContext())
		if err != nil {
			return helper.WriteError(c, err)
		}
		return helper.JsonList(c, "ok", items)
	}
}

func GetHandler[T any](svc Getter[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := helper.ParseUUIDParam(c, "id")
		if err != nil {
			return helper.WriteError(c, err)
		}
		row, err := svc.GetByID(c.UserContext(), id)
		if err != nil {
			return helper.WriteError(c, err)
		}
		return helper.JsonOK(c, "ok", row)
	}
}

func DeleteHandler(svc Deleter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := helper.ParseUUIDParam(c, "id")
		if err != nil {
			return helper.WriteError(c, err)
		}
		res, err := svc.DeleteOne(c.UserContext(), id)
		if err != nil {
			return helper.WriteError(c, err)
		}
		return helper.JsonDeleted(c, "", res)
	}
}

func DeleteUnusedHandler(svc Deleter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := svc.DeleteUnused(c.UserContext())
		if err != nil {
			return helper.WriteError(c, err)
		}
		return helper.JsonDeleted(c, "", dto.DeletedCountResponse{DeletedRowCount: n})
	}
}

// Bind parses and validates a JSON body. It writes the error response itself
// and returns false when the request was rejected.
func Bind(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if n, ok := out.(interface{ Normalize() }); ok {
		n.Normalize()
	}
	if err := validate.Struct(out); err != nil {
		return false, helper.ValidationError(c, err)
	}
	return true, nil
}

/* =========================
   Name-only resources
   ========================= */

type ReferenceController[T any] struct {
	Svc NameService[T]
}

func New[T any](svc NameService[T]) *ReferenceController[T] {
	return &ReferenceController[T]{Svc: svc}
}

func (ctl *ReferenceController[T]) List(c *fiber.Ctx) error {
	return ListHandler[T](ctl.Svc)(c)
}

func (ctl *ReferenceController[T]) Get(c *fiber.Ctx) error {
	return GetHandler[T](ctl.Svc)(c)
}

func (ctl *ReferenceController[T]) Delete(c *fiber.Ctx) error {
	return DeleteHandler(ctl.Svc)(c)
}

func (ctl *ReferenceController[T]) DeleteUnused(c *fiber.Ctx) error {
	return DeleteUnusedHandler(ctl.Svc)(c)
}

// GET /search?name=
func (ctl *ReferenceController[T]) Search(c *fiber.Ctx) error {
	rows, err := ctl.Svc.Search(c.UserContext(), c.Query("name"))
	if err != nil {
		return helper.WriteError(c, err)
	}
	return helper.JsonList(c, "ok", rows)
}

// POST / {name}: creates, restores, or reports the existing active row.
func (ctl *ReferenceController[T]) Create(c *fiber.Ctx) error {
	var body dto.NameRequest
	if ok, err := Bind(c, &body); !ok {
		return err
	}

	row, err := ctl.Svc.Insert(c.UserContext(), body.Name)
	if err != nil {
		return helper.WriteError(c, err)
	}
	if row == nil {
		return helper.JsonOK(c, "already exists", dto.InsertResponse[T]{})
	}
	return helper.JsonCreated(c, "", dto.InsertResponse[T]{InsertedOrRestored: row})
}

// PATCH /:id {name}
func (ctl *ReferenceController[T]) Rename(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.WriteError(c, err)
	}
	var body dto.NameRequest
	if ok, err := Bind(c, &body); !ok {
		return err
	}

	row, err := ctl.Svc.Rename(c.UserContext(), id, body.Name)
	if err != nil {
		return helper.WriteError(c, err)
	}
	return helper.JsonUpdated(c, "", row)
}

// Mount registers the name-only routes on g. Static paths go before /:id.
func (ctl *ReferenceController[T]) Mount(g fiber.Router) {
	g.Get("/", ctl.List)
	g.Get("/search", ctl.Search)
	g.Delete("/unused", ctl.DeleteUnused)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Rename)
	g.Delete("/:id", ctl.Delete)
}
