package exts

import (
	"git.solsynth.dev/hypernet/scribe/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ErrorOf turns a service error into the matching HTTP error.
func ErrorOf(err error) error {
	switch services.Kind(err) {
	case services.KindNotFound:
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case services.KindAlreadyExists:
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case services.KindInvalidInput:
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

// ActorOf returns the account the request is made on behalf of.
func ActorOf(c *fiber.Ctx) string {
	return c.Get("X-User-Id")
}
