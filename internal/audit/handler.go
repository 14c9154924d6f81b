package audit

import (
	"fmt"

	"backoffice-backend/internal/database"
	"backoffice-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	UserName    string `json:"user_name"`
	EntityType  string `json:"entity_type"`
	EntityID    uint   `json:"entity_id"`
	Action      string `json:"action"`
	Description string `json:"description"`
	BeforeData  string `json:"before_data"`
	AfterData   string `json:"after_data"`
	CreatedAt   string `json:"created_at"`
}

// GET /api/audit-logs?entity_type=...&limit=50&offset=0
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if entityType := c.Query("entity_type"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}

		limit := 50
		if limStr := c.Query("limit"); limStr != "" {
			if _, err := fmt.Sscan(limStr, &limit); err != nil || limit < 1 || limit > 500 {
				return fiber.NewError(fiber.StatusBadRequest, "limit is invalid (1-500)")
			}
		}
		offset := 0
		if offStr := c.Query("offset"); offStr != "" {
			if _, err := fmt.Sscan(offStr, &offset); err != nil || offset < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "offset is invalid")
			}
		}

		var rows []models.AuditLog
		if err := dbq.Order("created_at desc, id desc").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "audit logs could not be listed")
		}

		resp := make([]AuditLogResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, AuditLogResponse{
				ID:          r.ID,
				UserID:      r.UserID,
				UserName:    r.UserName,
				EntityType:  r.EntityType,
				EntityID:    r.EntityID,
				Action:      string(r.Action),
				Description: r.Description,
				BeforeData:  r.BeforeData,
				AfterData:   r.AfterData,
				CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(resp)
	}
}
