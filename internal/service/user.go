package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"gamehub-backend/internal/domain"
	"gamehub-backend/internal/logger"
	"gamehub-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func validateUser(u *domain.User) error {
	if u.FirstName == "" || u.LastName == "" {
		return domain.ValidationError("first and last name are required")
	}
	if !strings.Contains(u.Email, "@") {
		return domain.ValidationError("a valid email is required")
	}
	if u.Role != domain.UserRoleEmployee && u.Role != domain.UserRoleManager {
		return domain.ValidationError(fmt.Sprintf("unknown role %q", u.Role))
	}
	return nil
}

func (s *userService) CreateUser(ctx context.Context, actorID int32, user *domain.User, password string) error {
	if err := validateUser(user); err != nil {
		return err
	}
	if len(password) < 8 {
		return domain.ValidationError("password must be at least 8 characters")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, user.Email); err == nil && existing != nil {
		return domain.ValidationError(fmt.Sprintf("email %s is already registered", user.Email))
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.PersistenceError("checking email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.Active = true
	user.CreatedBy = &actorID

	if err := s.userRepo.Create(ctx, user); err != nil {
		return domain.PersistenceError("creating user", err)
	}
	logger.Info("User created", "user_id", user.ID, "role", user.Role, "created_by", actorID)
	return nil
}

func (s *userService) GetUser(ctx context.Context, id int32) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(fmt.Sprintf("user %d not found", id))
		}
		return nil, domain.PersistenceError("loading user", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, domain.PersistenceError("listing users", err)
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, user *domain.User, newPassword string) error {
	if err := validateUser(user); err != nil {
		return err
	}
	current, err := s.GetUser(ctx, user.ID)
	if err != nil {
		return err
	}
	user.PasswordHash = current.PasswordHash
	if newPassword != "" {
		if len(newPassword) < 8 {
			return domain.ValidationError("password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return domain.PersistenceError("updating user", err)
	}
	return nil
}

// DeleteUser deactivates the account. Rows are kept because rentals and price
// schedules reference their author.
func (s *userService) DeleteUser(ctx context.Context, id int32) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if !user.Active {
		return domain.InvalidState(fmt.Sprintf("user %d is already deactivated", id))
	}
	user.Active = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return domain.PersistenceError("deactivating user", err)
	}
	logger.Info("User deactivated", "user_id", id)
	return nil
}
