package audit

import (
	"encoding/json"

	"backoffice-backend/internal/auth"
	"backoffice-backend/internal/config"
	"backoffice-backend/internal/database"
	"backoffice-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type Entry struct {
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// Write records a financial mutation in the audit trail. Best effort and
// outside the mutation's transaction: a failed audit write is logged but
// never fails the request.
func Write(c *fiber.Ctx, e Entry) {
	var userID uint
	var userName string
	if v, ok := c.Locals(auth.CtxUserIDKey).(uint); ok {
		userID = v
	}
	if v, ok := c.Locals(auth.CtxUserNameKey).(string); ok {
		userName = v
	}

	// jsonb columns want "null", not an empty string
	beforeStr := "null"
	afterStr := "null"
	if e.Before != nil {
		if b, err := json.Marshal(e.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if e.After != nil {
		if b, err := json.Marshal(e.After); err == nil {
			afterStr = string(b)
		}
	}

	row := models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Action:      e.Action,
		Description: e.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&row).Error; err != nil {
		config.LogError(config.GetLogger(), "audit", "Write", e.EntityType, err)
	}
}
