package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rakesh3649/Fitness/models"
	"github.com/rakesh3649/Fitness/repository"
	"github.com/rakesh3649/Fitness/responses"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (ctl *Controller) FetchProductDetails(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	product, status, msg, err := ctl.loadProduct(ctx, c.Params("id"))
	if err != nil {
		return err
	}
	if product == nil {
		return responses.Fail(c, status, msg)
	}

	// If product is found, return the product details
	return responses.OK(c, fiber.StatusOK, "Product fetched successfully", product)
}

func (ctl *Controller) loadProduct(ctx context.Context, rawID string) (*models.Product, int, string, error) {
	// Convert the productId string to an ObjectID
	objectId, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, fiber.StatusBadRequest, "Invalid product ID format", nil
	}

	product, err := ctl.products.FindByID(ctx, objectId)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fiber.StatusNotFound, "Product not found", nil
	} else if err != nil {
		return nil, 0, "", err
	}
	return product, 0, "", nil
}
