package controller

import (
	"time"

	"photostudio-be/internal/dto"
	"photostudio-be/internal/pkg/serverutils"
	"photostudio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
	auth    fiber.Handler
}

func NewAuthController(service service.IAuthService, auth fiber.Handler) IAuthController {
	return &authController{service: service, auth: auth}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Post("/logout", c.auth, c.Logout)
	h.Get("/me", c.auth, c.Me)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Login success", res))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	tokenId, _ := ctx.Locals(serverutils.LocalTokenID).(string)

	if err := c.service.Logout(ctx.UserContext(), tokenId, serverutils.TokenRemaining(ctx, time.Now())); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Logout success", nil))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userId, err := serverutils.ActorID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Me(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}
