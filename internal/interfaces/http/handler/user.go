package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bizledger/backend/internal/application/identity"
)

// UserHandler serves admin user management
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create godoc
// @Summary      Create a user
// @Description  Admin only; the role is set explicitly.
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        request body identity.CreateUserRequest true "User"
// @Success      201 {object} dto.Response{data=identity.UserResponse}
// @Failure      400 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /identity/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req identity.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// GetByID godoc
// @Summary      Get a user
// @Tags         identity
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} dto.Response{data=identity.UserResponse}
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /identity/users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// List godoc
// @Summary      List users
// @Tags         identity
// @Produce      json
// @Success      200 {object} dto.Response{data=[]identity.UserResponse}
// @Failure      403 {object} dto.Response
// @Router       /identity/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, users)
}
