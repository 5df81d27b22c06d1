package admin

import (
	"git.solsynth.dev/hypernet/scribe/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

type controllers struct {
	topics *services.TopicService
}

func MapControllers(app *fiber.App, baseURL string, topics *services.TopicService) {
	ctrl := &controllers{topics: topics}

	admin := app.Group(baseURL)
	{
		admin.Get("/topics", ctrl.listTopics)
		admin.Delete("/topics", ctrl.deleteTopics)
		admin.Post("/topics/restore", ctrl.restoreTopics)
		admin.Delete("/topics/permanent", ctrl.permanentlyDeleteTopics)
		admin.Delete("/topics/:topicId", ctrl.deleteTopic)
		admin.Post("/topics/:topicId/restore", ctrl.restoreTopic)
		admin.Delete("/topics/:topicId/permanent", ctrl.permanentlyDeleteTopic)
	}
}
