package handlers

import (
	"net/http"

	"agrotrust/internal/auth"

	"github.com/gin-gonic/gin"
)

// subjectKey is the gin context key holding the authenticated subject id
const subjectKey = "subject_id"

// RequireAuth resolves the bearer credential to a subject id and aborts
// with 401 when it is missing or invalid
func RequireAuth(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: "Missing auth header",
			})
			return
		}

		subject, ok := verifier.ValidateToken(authHeader)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid token",
			})
			return
		}

		c.Set(subjectKey, subject)
		c.Next()
	}
}

// CORS allows browser clients from any origin
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
