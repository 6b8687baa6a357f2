package controllers

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/rakesh3649/Fitness/middlewares"
	"github.com/rakesh3649/Fitness/repository"
	"github.com/rakesh3649/Fitness/responses"
)

// Controller serves the signed-in account's own profile.
type Controller struct {
	accounts repository.Accounts
}

func New(accounts repository.Accounts) *Controller {
	return &Controller{accounts: accounts}
}

func (ctl *Controller) GetUserProfile(c *fiber.Ctx) error {
	account := middlewares.CurrentAccount(c)
	if account == nil {
		return responses.Fail(c, fiber.StatusUnauthorized, "User not authenticated")
	}
	return responses.OK(c, fiber.StatusOK, "", account)
}

func (ctl *Controller) UpdateUserProfile(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	account := middlewares.CurrentAccount(c)
	if account == nil {
		return responses.Fail(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	//Parse request body
	var reqBody struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request format")
	}

	var upd repository.ProfileUpdate
	if reqBody.Name != nil {
		name := strings.TrimSpace(*reqBody.Name)
		if name == "" {
			return responses.Fail(c, fiber.StatusBadRequest, "Name cannot be empty")
		}
		if utf8.RuneCountInString(name) > 100 {
			return responses.Fail(c, fiber.StatusBadRequest, "Name cannot be more than 100 characters")
		}
		upd.Name = &name
	}
	if reqBody.Phone != nil {
		phone := strings.TrimSpace(*reqBody.Phone)
		upd.Phone = &phone
	}

	updated, err := ctl.accounts.UpdateProfile(ctx, account.Id, upd)
	if err != nil {
		return err
	}
	return responses.OK(c, fiber.StatusOK, "Profile updated successfully", updated)
}
