package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rakesh3649/Fitness/repository"
)

const pingTimeout = 2 * time.Second

type Controller struct {
	pinger      repository.Pinger
	environment string
	now         func() time.Time
}

func New(pinger repository.Pinger, environment string) *Controller {
	return &Controller{pinger: pinger, environment: environment, now: time.Now}
}

// Check always answers 200; the database field says whether the store
// answered a ping.
func (ctl *Controller) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), pingTimeout)
	defer cancel()

	database := "connected"
	if ctl.pinger == nil || ctl.pinger.Ping(ctx) != nil {
		database = "disconnected"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"message":     "FitnessGym Backend is running",
		"environment": ctl.environment,
		"database":    database,
		"timestamp":   ctl.now().UTC().Format(time.RFC3339Nano),
	})
}
