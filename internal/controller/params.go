package controller

import (
	"photostudio-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func paramID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.ValidationError{Field: name, Msg: "must be a valid UUID", Err: err}
	}
	return id, nil
}

func queryID(ctx *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.ValidationError{Field: name, Msg: "must be a valid UUID", Err: err}
	}
	return &id, nil
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return apperror.ValidationError{Msg: "Invalid request body", Err: err}
	}
	return nil
}
