package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moolah/internal/errors"
	"moolah/internal/middleware"
	"moolah/internal/services"
)

// UserHandler handles user-profile requests, both the self-service /user/me
// endpoints and the admin-only /users/{uid} ones.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe returns the caller's own profile.
// @Summary     Get own profile
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.User "Profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /user/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	uid, err := getUID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetSelf(uid)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpsertMe creates the caller's profile if it does not exist yet and applies
// the supplied self-service fields either way. The profile email always
// follows the verified credential, never the request body.
// @Summary     Create or update own profile
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.SelfPatch true "Profile fields"
// @Success     200 {object} models.User "Profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /user/me [post]
func (h *UserHandler) UpsertMe(c *gin.Context) {
	uid, err := getUID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var p services.SelfPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	email, _ := c.Get(middleware.ContextEmail)
	emailStr, _ := email.(string)

	user, err := h.userService.UpsertSelf(uid, emailStr, p)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateMe applies a partial update to the caller's own profile.
// @Summary     Update own profile
// @Description Update the whitelisted profile fields; roles and status require admin
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.SelfPatch true "Fields to update"
// @Success     200 {object} models.User "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /user/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	uid, err := getUID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var p services.SelfPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.UpdateSelf(uid, p)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// AdminGetUser returns any user's profile.
// @Summary     Get user (admin)
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       uid path string true "User ID"
// @Success     200 {object} models.User "Profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{uid} [get]
func (h *UserHandler) AdminGetUser(c *gin.Context) {
	user, err := h.userService.AdminGet(c.Param("uid"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// AdminUpdateUser applies a partial update to any user, including roles and
// status.
// @Summary     Update user (admin)
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       uid     path string                  true "User ID"
// @Param       request body services.AdminUserPatch true "Fields to update"
// @Success     200 {object} models.User "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{uid} [put]
func (h *UserHandler) AdminUpdateUser(c *gin.Context) {
	var p services.AdminUserPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.AdminUpdate(c.Param("uid"), p)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// AdminDeleteUser removes a user. The default is a soft delete; pass
// hard=true to remove the row entirely.
// @Summary     Delete user (admin)
// @Tags        admin
// @Security    BearerAuth
// @Param       uid  path  string true  "User ID"
// @Param       hard query bool   false "Hard delete the row"
// @Success     204 "User deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{uid} [delete]
func (h *UserHandler) AdminDeleteUser(c *gin.Context) {
	hard := c.Query("hard") == "true"
	if err := h.userService.AdminDelete(c.Param("uid"), hard); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
