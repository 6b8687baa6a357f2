package callbacks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rakesh3649/Fitness/models"
	"github.com/rakesh3649/Fitness/repository"
	"github.com/rakesh3649/Fitness/responses"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notifier interface {
	CallbackRequested(models.Callback)
}

type Controller struct {
	callbacks repository.Callbacks
	notifier  Notifier
}

func New(callbacks repository.Callbacks, notifier Notifier) *Controller {
	return &Controller{callbacks: callbacks, notifier: notifier}
}

func (ctl *Controller) RequestCallback(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	var reqBody struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if strings.TrimSpace(reqBody.Name) == "" || strings.TrimSpace(reqBody.Phone) == "" {
		return responses.Fail(c, fiber.StatusBadRequest, "Please provide both name and phone number")
	}

	callback := models.Callback{Name: reqBody.Name, Phone: reqBody.Phone}
	callback.Normalize()
	if err := models.Validate(callback); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.callbacks.Create(ctx, &callback); err != nil {
		return err
	}

	if ctl.notifier != nil {
		ctl.notifier.CallbackRequested(callback)
	}

	return responses.OK(c, fiber.StatusCreated,
		"Callback request submitted successfully! We will contact you within 30 minutes.", callback)
}

func (ctl *Controller) GetCallbacks(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	callbacks, err := ctl.callbacks.List(ctx)
	if err != nil {
		return err
	}
	if callbacks == nil {
		callbacks = []models.Callback{}
	}
	return responses.List(c, callbacks, len(callbacks))
}

// UpdateCallback applies status and/or notes. Fields left out of the body
// are not touched.
func (ctl *Controller) UpdateCallback(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	callbackID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid callback ID")
	}

	var reqBody struct {
		Status *models.CallbackStatus `json:"status"`
		Notes  *string                `json:"notes"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request format")
	}

	var upd repository.CallbackUpdate
	if reqBody.Status != nil && *reqBody.Status != "" {
		if !reqBody.Status.Valid() {
			return responses.Fail(c, fiber.StatusBadRequest,
				fmt.Sprintf("Invalid status. Must be one of: %s", models.CallbackStatusList()))
		}
		upd.Status = reqBody.Status
	}
	if reqBody.Notes != nil {
		notes := strings.TrimSpace(*reqBody.Notes)
		if models.NotesTooLong(notes) {
			return responses.Fail(c, fiber.StatusBadRequest,
				fmt.Sprintf("Notes cannot be more than %d characters", models.MaxCallbackNotes))
		}
		upd.Notes = &notes
	}

	callback, err := ctl.callbacks.Update(ctx, callbackID, upd)
	if errors.Is(err, repository.ErrNotFound) {
		return responses.Fail(c, fiber.StatusNotFound, "Callback request not found")
	} else if err != nil {
		return err
	}
	return responses.OK(c, fiber.StatusOK, "Callback request updated", callback)
}
