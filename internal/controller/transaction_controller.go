package controller

import (
	"photostudio-be/internal/dto"
	"photostudio-be/internal/pkg/serverutils"
	"photostudio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITransactionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Approve(ctx *fiber.Ctx) error
	Reject(ctx *fiber.Ctx) error
	Refund(ctx *fiber.Ctx) error
	BookingSummary(ctx *fiber.Ctx) error
}

type transactionController struct {
	service service.ITransactionService
	auth    fiber.Handler
}

func NewTransactionController(service service.ITransactionService, auth fiber.Handler) ITransactionController {
	return &transactionController{service: service, auth: auth}
}

func (c *transactionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/transactions")
	h.Use(c.auth)
	admin := serverutils.RequireRole("admin")

	h.Post("", c.Create)
	h.Get("", c.GetAll)
	h.Get("/booking/:bookingId/summary", c.BookingSummary)
	h.Get("/:id", c.Show)
	h.Patch("/:id", c.Update)
	h.Delete("/:id", admin, c.Delete)
	h.Patch("/:id/approve", admin, c.Approve)
	h.Patch("/:id/reject", admin, c.Reject)
	h.Post("/:id/refund", admin, c.Refund)
}

func (c *transactionController) Create(ctx *fiber.Ctx) error {
	actorId, err := serverutils.ActorID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateTransactionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), actorId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Transaction created", res))
}

func (c *transactionController) GetAll(ctx *fiber.Ctx) error {
	filter := dto.TransactionFilter{
		Status:          ctx.Query("status"),
		TransactionType: ctx.Query("transaction_type"),
		Page:            ctx.QueryInt("page", 0),
		Limit:           ctx.QueryInt("limit", 0),
	}
	var err error
	if filter.BookingId, err = queryID(ctx, "booking_id"); err != nil {
		return err
	}
	if filter.CustomerId, err = queryID(ctx, "customer_id"); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(filter); err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get transactions", res))
}

func (c *transactionController) Show(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get transaction", res))
}

func (c *transactionController) Update(ctx *fiber.Ctx) error {
	actorId, err := serverutils.ActorID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateTransactionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), actorId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Transaction updated", res))
}

func (c *transactionController) Delete(ctx *fiber.Ctx) error {
	actorId, err := serverutils.ActorID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), actorId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Transaction deleted", nil))
}

func (c *transactionController) Approve(ctx *fiber.Ctx) error {
	actorId, err := serverutils.ActorID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Approve(ctx.UserContext(), actorId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Transaction approved", res))
}

func (c *transactionController) Reject(ctx *fiber.Ctx) error {
	actorId, err := serverutils.ActorID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.RejectTransactionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Reject(ctx.UserContext(), actorId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Transaction rejected", res))
}

func (c *transactionController) Refund(ctx *fiber.Ctx) error {
	actorId, err := serverutils.ActorID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.CreateRefundRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Refund(ctx.UserContext(), actorId, id, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Refund issued", res))
}

func (c *transactionController) BookingSummary(ctx *fiber.Ctx) error {
	bookingId, err := paramID(ctx, "bookingId")
	if err != nil {
		return err
	}

	res, err := c.service.BookingSummary(ctx.UserContext(), bookingId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get booking financial summary", res))
}
