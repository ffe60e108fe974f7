package controller

import (
	"photostudio-be/internal/dto"
	"photostudio-be/internal/pkg/serverutils"
	"photostudio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	Checkout(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
	auth    fiber.Handler
}

func NewPaymentController(service service.IPaymentService, auth fiber.Handler) IPaymentController {
	return &paymentController{service: service, auth: auth}
}

// RegisterRoutes must run before the transaction routes so the public
// webhook is matched ahead of the /transactions auth middleware.
func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/transactions")
	h.Post("/midtrans/notification", c.Webhook)
	h.Post("/:id/checkout", c.auth, c.Checkout)
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	actorId, err := serverutils.ActorID(ctx)
	if err != nil {
		return err
	}
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Checkout(ctx.UserContext(), actorId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout created", res))
}

func (c *paymentController) Webhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	if err := c.service.HandleNotification(ctx.UserContext(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Notification processed", nil))
}
