package inventory

import (
	"errors"
	"strings"

	"backoffice-backend/internal/database"
	"backoffice-backend/internal/models"
	"backoffice-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	CategoryID    *uint           `json:"category_id"`
	Name          string          `json:"name" validate:"required,max=150"`
	Unit          string          `json:"unit" validate:"max=20"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	MinStock      decimal.Decimal `json:"min_stock"`
}

type UpdateProductRequest struct {
	CategoryID    *uint            `json:"category_id"`
	Name          *string          `json:"name" validate:"omitempty,max=150"`
	Unit          *string          `json:"unit" validate:"omitempty,max=20"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *decimal.Decimal `json:"stock_quantity"`
	MinStock      *decimal.Decimal `json:"min_stock"`
	Active        *bool            `json:"active"`
}

type ProductResponse struct {
	ID            uint            `json:"id"`
	CategoryID    *uint           `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	MinStock      decimal.Decimal `json:"min_stock"`
	Active        bool            `json:"active"`
	Highlight     string          `json:"highlight,omitempty"` // color from the first matching rule
}

func toProductResponse(p *models.Product, rules []models.HighlightRule) ProductResponse {
	resp := ProductResponse{
		ID:            p.ID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Unit:          p.Unit,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		MinStock:      p.MinStock,
		Active:        p.Active,
		Highlight:     ApplyRules(p, rules),
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}

func activeRules() []models.HighlightRule {
	var rules []models.HighlightRule
	database.DB.Where("active = ?", true).Order("priority asc, id asc").Find(&rules)
	return rules
}

// POST /api/admin/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if err := validation.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if body.CategoryID != nil {
			var cat models.ProductCategory
			if err := database.DB.First(&cat, "id = ?", *body.CategoryID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "category not found")
			}
		}

		product := models.Product{
			CategoryID:    body.CategoryID,
			Name:          body.Name,
			Unit:          body.Unit,
			Price:         body.Price,
			StockQuantity: body.StockQuantity,
			MinStock:      body.MinStock,
			Active:        true,
		}
		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "product could not be created")
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(&product, nil))
	}
}

// PUT /api/admin/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "product not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "product could not be loaded")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validation.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if body.CategoryID != nil {
			var cat models.ProductCategory
			if err := database.DB.First(&cat, "id = ?", *body.CategoryID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "category not found")
			}
			product.CategoryID = body.CategoryID
		}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name must not be empty")
			}
			product.Name = name
		}
		if body.Unit != nil {
			product.Unit = *body.Unit
		}
		if body.Price != nil {
			product.Price = *body.Price
		}
		if body.StockQuantity != nil {
			product.StockQuantity = *body.StockQuantity
		}
		if body.MinStock != nil {
			product.MinStock = *body.MinStock
		}
		if body.Active != nil {
			product.Active = *body.Active
		}

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "product could not be updated")
		}

		return c.JSON(toProductResponse(&product, activeRules()))
	}
}

// DELETE /api/admin/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var count int64
		database.DB.Model(&models.RecipeItem{}).Where("product_id = ?", id).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "product is used by a recipe")
		}

		if err := database.DB.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "product could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/products?category_id=&active=
// Listings carry the highlight color so the stock screen can color rows.
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{}).Preload("Category")

		if catStr := c.Query("category_id"); catStr != "" {
			dbq = dbq.Where("category_id = ?", catStr)
		}
		if activeStr := c.Query("active"); activeStr != "" {
			dbq = dbq.Where("active = ?", activeStr == "true")
		}

		var products []models.Product
		if err := dbq.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "products could not be listed")
		}

		rules := activeRules()
		resp := make([]ProductResponse, 0, len(products))
		for i := range products {
			resp = append(resp, toProductResponse(&products[i], rules))
		}
		return c.JSON(resp)
	}
}
