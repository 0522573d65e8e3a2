package middleware

import (
	"net/http"

	portssvc "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// SessionLockGate rejects requests to the data surfaces while the lock
// session is not Unlocked. Requests that pass the gate count as activity and
// reset the idle clock.
func SessionLockGate(lock portssvc.SessionLockSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionKey, ok := GetSessionKeyFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No session"})
			return
		}

		if !lock.IsUnlocked(sessionKey) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Request blocked by session lock")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Session is locked"})
			return
		}

		lock.Touch(sessionKey)
		c.Next()
	}
}
