package api

import (
	"git.solsynth.dev/hypernet/scribe/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
)

func (v *controllers) createTopic(c *fiber.Ctx) error {
	var data struct {
		Name string `json:"name" validate:"required,max=150"`
		Slug string `json:"slug" validate:"omitempty,max=150"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	id, err := v.topics.CreateTopic(c.UserContext(), data.Name, data.Slug, exts.ActorOf(c))
	if err != nil {
		return exts.ErrorOf(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (v *controllers) updateTopic(c *fiber.Ctx) error {
	var data struct {
		Name string `json:"name" validate:"required,max=150"`
		Slug string `json:"slug" validate:"omitempty,max=150"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := v.topics.UpdateTopic(c.UserContext(), c.Params("topicId"), data.Name, data.Slug, exts.ActorOf(c)); err != nil {
		return exts.ErrorOf(err)
	}

	return c.SendStatus(fiber.StatusOK)
}
