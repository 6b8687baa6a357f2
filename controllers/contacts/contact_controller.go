package contacts

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

// Notifier is told about every stored submission. It must not block.
type Notifier interface {
	ContactSubmitted(models.Contact)
}

type Controller struct {
	contacts repository.Contacts
	notifier Notifier
}

func New(contacts repository.Contacts, notifier Notifier) *Controller {
	return &Controller{contacts: contacts, notifier: notifier}
}

// Receipt is what the submitter gets back; the message body is not echoed.
type Receipt struct {
	ID        primitive.ObjectID   `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Subject   string               `json:"subject"`
	Status    models.ContactStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
}

func (ctl *Controller) SubmitContact(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	var reqBody struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request format")
	}

	if blank(reqBody.Name) || blank(reqBody.Email) || blank(reqBody.Subject) || blank(reqBody.Message) {
		return responses.Fail(c, fiber.StatusBadRequest, "Please provide all required fields: name, email, subject, message")
	}

	contact := models.Contact{
		Name:    reqBody.Name,
		Email:   reqBody.Email,
		Subject: reqBody.Subject,
		Message: reqBody.Message,
	}
	contact.Normalize()
	if err := models.Validate(contact); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.contacts.Create(ctx, &contact); err != nil {
		return err
	}

	if ctl.notifier != nil {
		ctl.notifier.ContactSubmitted(contact)
	}

	return responses.OK(c, fiber.StatusCreated, "Your message has been sent successfully!", Receipt{
		ID:        contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Subject:   contact.Subject,
		Status:    contact.Status,
		CreatedAt: contact.CreatedAt,
	})
}

func (ctl *Controller) GetContacts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	contacts, err := ctl.contacts.List(ctx)
	if err != nil {
		return err
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return responses.List(c, contacts, len(contacts))
}

func (ctl *Controller) UpdateContactStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	contactID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid contact ID")
	}

	var reqBody struct {
		Status models.ContactStatus `json:"status"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request format")
	}

	// An empty status leaves the record as it is.
	if reqBody.Status == "" {
		contact, err := ctl.contacts.FindByID(ctx, contactID)
		if errors.Is(err, repository.ErrNotFound) {
			return responses.Fail(c, fiber.StatusNotFound, "Contact not found")
		} else if err != nil {
			return err
		}
		return responses.OK(c, fiber.StatusOK, "Contact status updated", contact)
	}

	if !reqBody.Status.Valid() {
		return responses.Fail(c, fiber.StatusBadRequest,
			fmt.Sprintf("Invalid status. Must be one of: %s", models.ContactStatusList()))
	}

	contact, err := ctl.contacts.SetStatus(ctx, contactID, reqBody.Status)
	if errors.Is(err, repository.ErrNotFound) {
		return responses.Fail(c, fiber.StatusNotFound, "Contact not found")
	} else if err != nil {
		return err
	}
	return responses.OK(c, fiber.StatusOK, "Contact status updated", contact)
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
