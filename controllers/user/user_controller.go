package controllers

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/rakesh3649/Fitness/middlewares"
	"github.com/rakesh3649/Fitness/models"
	"github.com/rakesh3649/Fitness/repository"
	"github.com/rakesh3649/Fitness/responses"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	// bcrypt refuses longer input.
	maxPasswordBytes = 72
)

// Controller handles registration and sign-in.
type Controller struct {
	accounts repository.Accounts
	secret   []byte
	tokenTTL time.Duration
}

func New(accounts repository.Accounts, secret []byte, tokenTTL time.Duration) *Controller {
	return &Controller{accounts: accounts, secret: secret, tokenTTL: tokenTTL}
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string          `json:"token"`
	User  *models.Account `json:"user"`
}

func (ctl *Controller) Register(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	var reqBody struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
		Phone           string `json:"phone"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request format")
	}

	if strings.TrimSpace(reqBody.Name) == "" || strings.TrimSpace(reqBody.Email) == "" || reqBody.Password == "" {
		return responses.Fail(c, fiber.StatusBadRequest, "Please provide name, email and password")
	}

	//Password validations
	if utf8.RuneCountInString(reqBody.Password) < minPasswordLength {
		return responses.Fail(c, fiber.StatusBadRequest, "Password must be at least 6 characters")
	}
	if len(reqBody.Password) > maxPasswordBytes {
		return responses.Fail(c, fiber.StatusBadRequest, "Password cannot be more than 72 bytes")
	}
	if reqBody.ConfirmPassword != "" && reqBody.ConfirmPassword != reqBody.Password {
		return responses.Fail(c, fiber.StatusBadRequest, "Passwords do not match")
	}

	account := models.Account{
		Name:     reqBody.Name,
		Email:    reqBody.Email,
		Password: reqBody.Password,
		Phone:    reqBody.Phone,
		Role:     models.RoleUser,
	}
	account.Normalize()
	if err := models.Validate(account); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	//Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqBody.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account.Password = string(hashedPassword)

	err = ctl.accounts.Create(ctx, &account)
	if errors.Is(err, repository.ErrDuplicate) {
		return responses.Fail(c, fiber.StatusBadRequest, "User with same email already exists")
	} else if err != nil {
		return err
	}

	token, err := middlewares.IssueToken(ctl.secret, account.Id.Hex(), ctl.tokenTTL)
	if err != nil {
		return err
	}
	return responses.OK(c, fiber.StatusCreated, "User registered successfully", AuthResult{Token: token, User: &account})
}

func (ctl *Controller) Login(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	var reqBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if strings.TrimSpace(reqBody.Email) == "" || reqBody.Password == "" {
		return responses.Fail(c, fiber.StatusBadRequest, "Please provide email and password")
	}

	existingUser, err := ctl.accounts.FindByEmail(ctx, reqBody.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return responses.Fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	} else if err != nil {
		return err
	}

	//Compare the password
	if err := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(reqBody.Password)); err != nil {
		return responses.Fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := middlewares.IssueToken(ctl.secret, existingUser.Id.Hex(), ctl.tokenTTL)
	if err != nil {
		return err
	}
	return responses.OK(c, fiber.StatusOK, "Login successful", AuthResult{Token: token, User: existingUser})
}

// Logout exists for the client's sake; tokens are stateless and simply
// dropped on the device.
func (ctl *Controller) Logout(c *fiber.Ctx) error {
	return responses.OK(c, fiber.StatusOK, "User signed out successfully", nil)
}
