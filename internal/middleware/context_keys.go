package middleware

import "github.com/gin-gonic/gin"

// userNikKey is the key used to store the authenticated user's NIK in the
// request context.
const userNikKey = contextKey("userNik")

// userRoleKey is the key used to store the authenticated user's role.
const userRoleKey = contextKey("userRole")

// GetUserNikFromContext retrieves the authenticated user's NIK from the Gin
// context. It returns the NIK and a boolean indicating if it was found.
func GetUserNikFromContext(c *gin.Context) (string, bool) {
	nikVal := c.Request.Context().Value(userNikKey)
	if nikVal == nil {
		return "", false
	}
	nik, ok := nikVal.(string)
	return nik, ok
}

// GetUserRoleFromContext retrieves the authenticated user's role from the Gin
// context.
func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	roleVal := c.Request.Context().Value(userRoleKey)
	if roleVal == nil {
		return "", false
	}
	role, ok := roleVal.(string)
	return role, ok
}
