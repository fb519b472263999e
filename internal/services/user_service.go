package services

import (
	"context"
	"fmt"

	"github.com/Dias221467/tagwish/internal/models"
	"github.com/Dias221467/tagwish/internal/repository"
	"github.com/sirupsen/logrus"
)

// ErrInvalidRole is returned when switching to a role that does not exist.
var ErrInvalidRole = fmt.Errorf("invalid role")

// UserService exposes the simulated current user.
type UserService struct {
	store *repository.WishStore
}

// NewUserService creates a new instance of UserService.
func NewUserService(store *repository.WishStore) *UserService {
	return &UserService{store: store}
}

// CurrentUser returns the acting user.
func (s *UserService) CurrentUser(ctx context.Context) models.User {
	return s.store.CurrentUser()
}

// SwitchRole toggles the user between the buyer and traveler views.
func (s *UserService) SwitchRole(ctx context.Context, role models.UserRole) (models.User, error) {
	if !role.Valid() {
		logrus.WithField("role", role).Warn("Rejected unknown role")
		return models.User{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	user := s.store.SetRole(role)
	logrus.WithFields(logrus.Fields{
		"userID": user.ID,
		"role":   user.Role,
	}).Info("User role switched")
	return user, nil
}
