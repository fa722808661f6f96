package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gamehub-backend/internal/domain"
)

func TestUserService_CreateUser(t *testing.T) {
	newUser := func() *domain.User {
		return &domain.User{
			FirstName: "Ana",
			LastName:  "Reyes",
			Email:     "ana@example.com",
			Role:      domain.UserRoleEmployee,
		}
	}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewUserService(userRepo)

		userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, sql.ErrNoRows)
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Active && u.PasswordHash != "" && u.CreatedBy != nil && *u.CreatedBy == 9
		})).Return(nil)

		user := newUser()
		err := svc.CreateUser(context.Background(), 9, user, "hunter2hunter2")
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewUserService(userRepo)

		userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(&domain.User{ID: 4}, nil)

		err := svc.CreateUser(context.Background(), 9, newUser(), "hunter2hunter2")
		assert.Equal(t, domain.ErrKindValidation, domain.KindOf(err))
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Short password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewUserService(userRepo)

		err := svc.CreateUser(context.Background(), 9, newUser(), "short")
		assert.Equal(t, domain.ErrKindValidation, domain.KindOf(err))
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unknown role", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewUserService(userRepo)

		user := newUser()
		user.Role = "janitor"
		err := svc.CreateUser(context.Background(), 9, user, "hunter2hunter2")
		assert.Equal(t, domain.ErrKindValidation, domain.KindOf(err))
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("Deactivates instead of removing", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewUserService(userRepo)

		userRepo.On("GetByID", mock.Anything, int32(4)).Return(&domain.User{ID: 4, Active: true}, nil)
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == 4 && !u.Active
		})).Return(nil)

		err := svc.DeleteUser(context.Background(), 4)
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Already deactivated", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewUserService(userRepo)

		userRepo.On("GetByID", mock.Anything, int32(4)).Return(&domain.User{ID: 4, Active: false}, nil)

		err := svc.DeleteUser(context.Background(), 4)
		assert.Equal(t, domain.ErrKindInvalidState, domain.KindOf(err))
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
