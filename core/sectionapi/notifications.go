package sectionapi

import (
	"experience-manager/core/notify"

	"github.com/gofiber/fiber/v2"
)

// RegisterNotifications serves the pending save messages of each experience.
//
// @Summary Drain Notifications
// @Description Return and clear the save messages of an experience, oldest first.
// @Tags sections
// @Produce json
// @Param experienceId path string true "Experience ID"
// @Success 200 {array} notify.Message "Messages"
// @Router /experiences/{experienceId}/notifications [get]
func RegisterNotifications(app fiber.Router, feed *notify.Feed) {
	app.Get("/experiences/:experienceId/notifications", func(c *fiber.Ctx) error {
		return c.JSON(feed.Drain(c.Params("experienceId")))
	})
}
