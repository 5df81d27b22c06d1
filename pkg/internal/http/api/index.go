package api

import (
	"git.solsynth.dev/hypernet/scribe/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

type controllers struct {
	topics *services.TopicService
	posts  *services.PostService
}

func MapControllers(app *fiber.App, baseURL string, topics *services.TopicService, posts *services.PostService) {
	ctrl := &controllers{topics: topics, posts: posts}

	api := app.Group(baseURL)
	{
		topics := api.Group("/topics")
		{
			topics.Post("/", ctrl.createTopic)
			topics.Put("/:topicId", ctrl.updateTopic)
		}

		posts := api.Group("/posts")
		{
			posts.Get("/:postId", ctrl.getPost)
			posts.Post("/", ctrl.createPost)
		}

		api.Get("/images/:imageId", ctrl.getImage)
	}
}
