package controller

import (
	"photostudio-be/internal/dto"
	"photostudio-be/internal/pkg/serverutils"
	"photostudio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITransactionRequestController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	ApproveRefund(ctx *fiber.Ctx) error
	RejectRefund(ctx *fiber.Ctx) error
}

type transactionRequestController struct {
	service service.ITransactionRequestService
	auth    fiber.Handler
}

func NewTransactionRequestController(service service.ITransactionRequestService, auth fiber.Handler) ITransactionRequestController {
	return &transactionRequestController{service: service, auth: auth}
}

func (c *transactionRequestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/transaction-requests")
	h.Use(c.auth)
	admin := serverutils.RequireRole("admin")

	h.Post("", c.Create)
	h.Get("", admin, c.GetAll)
	h.Get("/:id", admin, c.Show)
	h.Patch("/:id/approve-refund", admin, c.ApproveRefund)
	h.Patch("/:id/reject", admin, c.RejectRefund)
}

func (c *transactionRequestController) GetAll(ctx *fiber.Ctx) error {
	filter := dto.TransactionRequestFilter{
		Status:      ctx.Query("status"),
		RequestType: ctx.Query("request_type"),
	}
	var err error
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
	return ctx.JSON(serverutils.SuccessResponse("Transaction requests", res))
}

func (c *transactionRequestController) Show(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Transaction request", res))
}

func (c *transactionRequestController) Create(ctx *fiber.Ctx) error {
	actorId, err := serverutils.ActorID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateTransactionRequestRequest
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
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Refund request submitted", res))
}

func (c *transactionRequestController) ApproveRefund(ctx *fiber.Ctx) error {
	actorId, err := serverutils.ActorID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	// Body is optional
	var req dto.ApproveRefundRequest
	if len(ctx.Body()) > 0 {
		if err := parseBody(ctx, &req); err != nil {
			return err
		}
	}

	res, err := c.service.ApproveRefund(ctx.UserContext(), actorId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Refund approved", res))
}

func (c *transactionRequestController) RejectRefund(ctx *fiber.Ctx) error {
	actorId, err := serverutils.ActorID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.RejectRefundRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RejectRefund(ctx.UserContext(), actorId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Refund rejected", res))
}
