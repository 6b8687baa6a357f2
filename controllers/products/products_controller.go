package controllers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rakesh3649/Fitness/models"
	"github.com/rakesh3649/Fitness/repository"
	"github.com/rakesh3649/Fitness/responses"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Controller struct {
	products repository.Products
}

func New(products repository.Products) *Controller {
	return &Controller{products: products}
}

// GetAllProducts lists the catalog newest first. ?q= (or ?name=) filters by
// a case-insensitive name fragment; ?page= and ?limit= paginate.
func (ctl *Controller) GetAllProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.ParseInt(c.Query("limit", strconv.Itoa(defaultPageSize)), 10, 64)
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	search := c.Query("q", c.Query("name"))

	products, total, err := ctl.products.List(ctx, repository.ProductQuery{
		Search: search,
		Skip:   (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	if products == nil {
		products = []models.Product{}
	}

	count := len(products)
	return c.Status(fiber.StatusOK).JSON(responses.Envelope{
		Success: true,
		Data:    products,
		Count:   &count,
		Pagination: &responses.Pagination{
			Page:       page,
			Limit:      limit,
			TotalPages: (total + limit - 1) / limit,
			Total:      total,
		},
	})
}

// Only for admin
func (ctl *Controller) AddProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Error parsing product data")
	}
	product.ID = primitive.NilObjectID
	product.CreatedAt = time.Time{}
	product.Normalize()
	if err := models.Validate(product); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.products.Create(ctx, &product); err != nil {
		return err
	}
	return responses.OK(c, fiber.StatusCreated, "Product added successfully", product)
}

// Only for admin
func (ctl *Controller) UpdateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	product, status, msg, err := ctl.loadProduct(ctx, c.Params("id"))
	if err != nil {
		return err
	}
	if product == nil {
		return responses.Fail(c, status, msg)
	}

	var reqBody struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Category    *string  `json:"category"`
		Image       *string  `json:"image"`
		Stock       *int     `json:"stock"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Error parsing product data")
	}

	if reqBody.Name != nil {
		product.Name = *reqBody.Name
	}
	if reqBody.Description != nil {
		product.Description = *reqBody.Description
	}
	if reqBody.Price != nil {
		product.Price = *reqBody.Price
	}
	if reqBody.Category != nil {
		product.Category = *reqBody.Category
	}
	if reqBody.Image != nil {
		product.Image = *reqBody.Image
	}
	if reqBody.Stock != nil {
		product.Stock = *reqBody.Stock
	}
	product.Normalize()
	if err := models.Validate(product); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	err = ctl.products.Save(ctx, product)
	if errors.Is(err, repository.ErrNotFound) {
		return responses.Fail(c, fiber.StatusNotFound, "Product not found")
	} else if err != nil {
		return err
	}
	return responses.OK(c, fiber.StatusOK, "Product updated successfully", product)
}

// Only for admin
func (ctl *Controller) DeleteProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid product ID format")
	}

	err = ctl.products.Delete(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return responses.Fail(c, fiber.StatusNotFound, "Product not found")
	} else if err != nil {
		return err
	}
	return responses.OK(c, fiber.StatusOK, "Product deleted successfully", nil)
}
