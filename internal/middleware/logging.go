// internal/middleware/logging.go
package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hardwarehub/storefront-backend/internal/models"
)

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		logrus.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": duration.Milliseconds(),
			"ip":       c.ClientIP(),
		}).Info("Request processed")
	}
}

// AuditLogMiddleware persists a trail row for every mutating request. Reads
// and health checks are skipped; multipart bodies are recorded by their form
// fields, not their file contents.
func AuditLogMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		c.Next()

		subject := ""
		if sub, exists := c.Get("subject"); exists {
			if subStr, ok := sub.(string); ok {
				subject = subStr
			}
		}

		values := models.JSONB{}
		if c.Request.PostForm != nil {
			for key, vals := range c.Request.PostForm {
				if len(vals) > 0 {
					values[key] = vals[0]
				}
			}
		}

		auditLog := &models.AuditLog{
			Subject:      subject,
			Action:       c.Request.Method + " " + c.Request.URL.Path,
			ResourceType: extractResourceType(c.Request.URL.Path),
			IPAddress:    c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
			NewValues:    values,
		}

		if resourceID := extractResourceID(c.Request.URL.Path); resourceID != "" {
			if parsed, err := uuid.Parse(resourceID); err == nil {
				auditLog.ResourceID = &parsed
			}
		}

		// Persist asynchronously; a failed audit write never fails the request.
		go func() {
			if err := db.Create(auditLog).Error; err != nil {
				logrus.WithError(err).Error("Failed to create audit log")
			}
		}()
	}
}

func extractResourceType(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 {
		return "unknown"
	}
	if parts[0] == "products" && len(parts) > 1 && parts[1] == "categories" {
		return "category"
	}
	switch parts[0] {
	case "products":
		return "product"
	case "users":
		return "user"
	case "admins":
		return "admin"
	default:
		return parts[0]
	}
}

func extractResourceID(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-1]
}
