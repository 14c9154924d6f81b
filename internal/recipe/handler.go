package recipe

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

type RecipeItemRequest struct {
	ProductID uint            `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	Unit      string          `json:"unit" validate:"max=20"`
}

type RecipeRequest struct {
	Name        string              `json:"name" validate:"required,max=150"`
	Description string              `json:"description" validate:"max=500"`
	Items       []RecipeItemRequest `json:"items" validate:"dive"`
}

type RecipeItemResponse struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
}

type RecipeResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Items       []RecipeItemResponse `json:"items"`
}

func toResponse(r *models.Recipe) RecipeResponse {
	items := make([]RecipeItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, RecipeItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.Product.Name,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
		})
	}
	return RecipeResponse{ID: r.ID, Name: r.Name, Description: r.Description, Items: items}
}

func checkProducts(items []RecipeItemRequest) error {
	for _, it := range items {
		var product models.Product
		if err := database.DB.First(&product, "id = ?", it.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "recipe item product not found")
		}
	}
	return nil
}

// POST /api/recipes
func CreateRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RecipeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if err := validation.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := checkProducts(body.Items); err != nil {
			return err
		}

		rec := models.Recipe{Name: body.Name, Description: body.Description}
		for _, it := range body.Items {
			rec.Items = append(rec.Items, models.RecipeItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Unit:      it.Unit,
			})
		}

		if err := database.DB.Create(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "recipe could not be created")
		}

		database.DB.Preload("Items.Product").First(&rec, rec.ID)
		return c.Status(fiber.StatusCreated).JSON(toResponse(&rec))
	}
}

// PUT /api/recipes/:id
// Items are replaced wholesale.
func UpdateRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var rec models.Recipe
		if err := database.DB.First(&rec, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "recipe not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "recipe could not be loaded")
		}

		var body RecipeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if err := validation.Struct(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := checkProducts(body.Items); err != nil {
			return err
		}

		tx := database.DB.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "transaction could not be started")
		}

		rec.Name = body.Name
		rec.Description = body.Description
		if err := tx.Save(&rec).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "recipe could not be updated")
		}

		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&models.RecipeItem{}).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "recipe items could not be replaced")
		}
		for _, it := range body.Items {
			item := models.RecipeItem{
				RecipeID:  rec.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Unit:      it.Unit,
			}
			if err := tx.Create(&item).Error; err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusInternalServerError, "recipe items could not be replaced")
			}
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "recipe could not be updated")
		}

		database.DB.Preload("Items.Product").First(&rec, rec.ID)
		return c.JSON(toResponse(&rec))
	}
}

// DELETE /api/recipes/:id
func DeleteRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var rec models.Recipe
		if err := database.DB.First(&rec, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "recipe not found")
		}

		if err := database.DB.Select("Items").Delete(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "recipe could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/recipes
func ListRecipesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var recs []models.Recipe
		if err := database.DB.Preload("Items.Product").Order("name asc").Find(&recs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "recipes could not be listed")
		}

		resp := make([]RecipeResponse, 0, len(recs))
		for i := range recs {
			resp = append(resp, toResponse(&recs[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/recipes/:id
func GetRecipeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rec models.Recipe
		if err := database.DB.Preload("Items.Product").First(&rec, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "recipe not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "recipe could not be loaded")
		}
		return c.JSON(toResponse(&rec))
	}
}
