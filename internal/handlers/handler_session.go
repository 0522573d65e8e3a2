package handlers

import (
	"net/http"

	portssvc "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/services"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/dto"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// sessionHandler exposes the PIN lock screen: status polling, verify, set,
// reset and the change-PIN flow. These routes sit outside the lock gate so a
// locked session can still reach them.
type sessionHandler struct {
	lockService portssvc.SessionLockSvcFacade
	userService portssvc.UserSvcFacade
}

func newSessionHandler(ls portssvc.SessionLockSvcFacade, us portssvc.UserSvcFacade) *sessionHandler {
	return &sessionHandler{lockService: ls, userService: us}
}

// registerSessionRoutes registers the session lock routes.
func registerSessionRoutes(rg *gin.RouterGroup, lockService portssvc.SessionLockSvcFacade, userService portssvc.UserSvcFacade) {
	h := newSessionHandler(lockService, userService)

	session := rg.Group("/session/lock")
	{
		session.GET("", h.getLockStatus)
		session.POST("/verify", h.verifyPin)
		session.POST("/pin", h.setPin)
		session.POST("/reset", h.resetPin)
		session.POST("/change", h.beginChangePin)
	}
}

// sessionIdentity resolves the lock session key and the username backing it.
// Lock sessions are keyed per access token, while PINs are stored per
// username, so both are needed on every lock operation.
func (h *sessionHandler) sessionIdentity(c *gin.Context) (sessionKey, username string, ok bool) {
	sessionKey, ok = middleware.GetSessionKeyFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", "", false
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", "", false
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return "", "", false
	}
	return sessionKey, user.Username, true
}

// getLockStatus godoc
// @Summary Get lock status
// @Description Returns the session's lock state. Clients poll this to detect idle lockouts.
// @Tags session
// @Produce json
// @Success 200 {object} dto.LockStatusResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /session/lock [get]
func (h *sessionHandler) getLockStatus(c *gin.Context) {
	sessionKey, username, ok := h.sessionIdentity(c)
	if !ok {
		return
	}

	status, err := h.lockService.Status(c.Request.Context(), sessionKey, username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLockStatusResponse(status))
}

// verifyPin godoc
// @Summary Verify the PIN
// @Description Attempts to unlock the session with the stored PIN.
// @Tags session
// @Accept json
// @Produce json
// @Param pin body dto.VerifyPinRequest true "PIN attempt"
// @Success 200 {object} dto.LockStatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Incorrect PIN"
// @Failure 409 {object} ErrorResponse "Session is not awaiting verification"
// @Security BearerAuth
// @Router /session/lock/verify [post]
func (h *sessionHandler) verifyPin(c *gin.Context) {
	sessionKey, username, ok := h.sessionIdentity(c)
	if !ok {
		return
	}

	var req dto.VerifyPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	status, err := h.lockService.VerifyPin(c.Request.Context(), sessionKey, username, req.Pin)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLockStatusResponse(status))
}

// setPin godoc
// @Summary Set a new PIN
// @Description Registers a six-digit PIN. Only valid while the session awaits PIN setup.
// @Tags session
// @Accept json
// @Produce json
// @Param pin body dto.SetPinRequest true "New PIN with confirmation"
// @Success 200 {object} dto.LockStatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Session is not awaiting PIN setup"
// @Security BearerAuth
// @Router /session/lock/pin [post]
func (h *sessionHandler) setPin(c *gin.Context) {
	sessionKey, username, ok := h.sessionIdentity(c)
	if !ok {
		return
	}

	var req dto.SetPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	status, err := h.lockService.SetPin(c.Request.Context(), sessionKey, username, req.Pin, req.Confirm)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLockStatusResponse(status))
}

// resetPin godoc
// @Summary Reset the PIN
// @Description Deletes the stored PIN after explicit confirmation and revokes refresh tokens.
// @Tags session
// @Accept json
// @Produce json
// @Param confirm body dto.ResetPinRequest true "Confirmation flag"
// @Success 200 {object} dto.LockStatusResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /session/lock/reset [post]
func (h *sessionHandler) resetPin(c *gin.Context) {
	sessionKey, username, ok := h.sessionIdentity(c)
	if !ok {
		return
	}

	var req dto.ResetPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	status, err := h.lockService.ResetPin(c.Request.Context(), sessionKey, username, req.Confirm)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLockStatusResponse(status))
}

// beginChangePin godoc
// @Summary Begin a PIN change
// @Description Relocks an unlocked session so the old PIN must verify before a new one is set.
// @Tags session
// @Produce json
// @Success 200 {object} dto.LockStatusResponse
// @Failure 409 {object} ErrorResponse "Session is not unlocked"
// @Security BearerAuth
// @Router /session/lock/change [post]
func (h *sessionHandler) beginChangePin(c *gin.Context) {
	sessionKey, username, ok := h.sessionIdentity(c)
	if !ok {
		return
	}

	status, err := h.lockService.BeginChangePin(c.Request.Context(), sessionKey, username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLockStatusResponse(status))
}
