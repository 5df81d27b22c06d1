package admin

import (
	"git.solsynth.dev/hypernet/scribe/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
)

type batchRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

func (v *controllers) listTopics(c *fiber.Ctx) error {
	topics, err := v.topics.ListTopicsForAdmin(c.UserContext())
	if err != nil {
		return exts.ErrorOf(err)
	}

	return c.JSON(topics)
}

func (v *controllers) deleteTopic(c *fiber.Ctx) error {
	if err := v.topics.DeleteTopic(c.UserContext(), c.Params("topicId"), exts.ActorOf(c)); err != nil {
		return exts.ErrorOf(err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (v *controllers) deleteTopics(c *fiber.Ctx) error {
	var data batchRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := v.topics.DeleteTopics(c.UserContext(), data.IDs, exts.ActorOf(c)); err != nil {
		return exts.ErrorOf(err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (v *controllers) restoreTopic(c *fiber.Ctx) error {
	if err := v.topics.RestoreTopic(c.UserContext(), c.Params("topicId"), exts.ActorOf(c)); err != nil {
		return exts.ErrorOf(err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (v *controllers) restoreTopics(c *fiber.Ctx) error {
	var data batchRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := v.topics.RestoreTopics(c.UserContext(), data.IDs, exts.ActorOf(c)); err != nil {
		return exts.ErrorOf(err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (v *controllers) permanentlyDeleteTopic(c *fiber.Ctx) error {
	if err := v.topics.PermanentlyDeleteTopic(c.UserContext(), c.Params("topicId")); err != nil {
		return exts.ErrorOf(err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (v *controllers) permanentlyDeleteTopics(c *fiber.Ctx) error {
	var data batchRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := v.topics.PermanentlyDeleteTopics(c.UserContext(), data.IDs); err != nil {
		return exts.ErrorOf(err)
	}
	return c.SendStatus(fiber.StatusOK)
}
