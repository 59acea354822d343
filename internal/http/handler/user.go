package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bugdesk.app/tracker/internal/http/dto"
	"bugdesk.app/tracker/internal/model"
	"bugdesk.app/tracker/internal/service"
	"bugdesk.app/tracker/internal/store"
)

type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) GetByID(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) List(c *gin.Context) {
	var filter store.UserFilter

	if role := c.Query("role"); role != "" {
		r := model.Role(role)
		if !model.ValidRole(r) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}
		filter.Role = r
	}
	if active := c.Query("active"); active != "" {
		v, err := strconv.ParseBool(active)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid active flag"})
			return
		}
		filter.Active = &v
	}

	users, err := h.users.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, *dto.ToUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, items)
}
