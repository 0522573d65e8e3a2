package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the
// request context.
const userIDKey = contextKey("userID")

// sessionKeyKey is the key used to store the lock session identifier.
const sessionKeyKey = contextKey("sessionKey")

// usernameKey is the key used to store the authenticated username.
const usernameKey = contextKey("username")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetUsernameFromContext retrieves the authenticated username.
func GetUsernameFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(usernameKey)
	if val == nil {
		return "", false
	}
	username, ok := val.(string)
	return username, ok
}

// GetSessionKeyFromContext retrieves the lock session identifier. The auth
// middleware derives it from the authenticated token so every device gets
// its own lock session.
func GetSessionKeyFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(sessionKeyKey)
	if val == nil {
		return "", false
	}
	key, ok := val.(string)
	return key, ok
}
