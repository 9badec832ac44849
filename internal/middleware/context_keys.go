package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDCtxVal := c.Request.Context().Value(userIDKey)
		if userIDCtxVal != nil {
			return userIDCtxVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
