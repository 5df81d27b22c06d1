package api

import (
	"git.solsynth.dev/hypernet/scribe/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (v *controllers) getPost(c *fiber.Ctx) error {
	post, err := v.posts.GetPost(c.UserContext(), c.Params("postId"))
	if err != nil {
		return exts.ErrorOf(err)
	}

	return c.JSON(post)
}

func (v *controllers) createPost(c *fiber.Ctx) error {
	var data struct {
		TopicID     string                `json:"topic_id" validate:"required"`
		Title       string                `json:"title" validate:"required,max=255"`
		Content     string                `json:"content"`
		IsPublished bool                  `json:"is_published"`
		Images      []services.ImageInput `json:"images" validate:"dive"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	id, err := v.posts.CreatePost(c.UserContext(), services.CreatePostInput{
		TopicID:     data.TopicID,
		Title:       data.Title,
		Content:     data.Content,
		IsPublished: data.IsPublished,
		Images:      data.Images,
		ActorID:     exts.ActorOf(c),
	})
	if err != nil {
		return exts.ErrorOf(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (v *controllers) getImage(c *fiber.Ctx) error {
	image, err := v.posts.GetImage(c.UserContext(), c.Params("imageId"))
	if err != nil {
		return exts.ErrorOf(err)
	}

	return c.JSON(fiber.Map{
		"image": image,
		"state": image.State(),
	})
}
