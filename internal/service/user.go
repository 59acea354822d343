package service

import (
	"context"

	"bugdesk.app/tracker/internal/model"
	"bugdesk.app/tracker/internal/store"
)

type UserService interface {
	Get(ctx context.Context, userID int64) (*model.User, error)
	List(ctx context.Context, filter store.UserFilter) ([]model.User, error)
}

type userService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) UserService {
	return &userService{users: users}
}

func (s *userService) Get(ctx context.Context, userID int64) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *userService) List(ctx context.Context, filter store.UserFilter) ([]model.User, error) {
	return s.users.List(ctx, filter)
}
