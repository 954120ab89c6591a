package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/app/models/dto"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
)

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("mentor cannot set phones", func(t *testing.T) {
		users := new(mockUserStore)
		users.On("FindByID", ctx, int64(5)).Return(&models.User{ID: 5, Roles: models.NewRoleSet(models.RoleMentor)}, nil)
		svc := NewUserService(users, zerolog.Nop())

		_, err := svc.UpdateProfile(ctx, 5, &dto.UpdateProfileRequest{Phones: []string{"+905551112233"}})

		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("founder updates name and phones", func(t *testing.T) {
		name := "Grace"
		phones := []string{"+905551112233"}
		users := new(mockUserStore)
		users.On("FindByID", ctx, int64(5)).Return(&models.User{ID: 5, Roles: models.NewRoleSet(models.RoleFounder)}, nil)
		users.On("UpdateProfile", ctx, int64(5), &name, (*string)(nil), (*string)(nil)).Return(nil)
		users.On("ReplaceFounderPhones", ctx, int64(5), phones).Return(nil)
		users.On("GetProfile", ctx, int64(5)).Return(&models.UserProfile{
			User:   models.User{ID: 5, Name: name, Roles: models.NewRoleSet(models.RoleFounder)},
			Phones: phones,
		}, nil)
		svc := NewUserService(users, zerolog.Nop())

		resp, err := svc.UpdateProfile(ctx, 5, &dto.UpdateProfileRequest{Name: &name, Phones: phones})

		require.NoError(t, err)
		assert.Equal(t, "Grace", resp.Name)
		assert.Equal(t, phones, resp.Phones)
		assert.Equal(t, []string{"founder"}, resp.Roles)
		users.AssertExpectations(t)
	})
}

func TestAddRole(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown role", func(t *testing.T) {
		svc := NewUserService(new(mockUserStore), zerolog.Nop())
		_, err := svc.AddRole(ctx, 5, &dto.AddRoleRequest{Role: "admin"})
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("adds investor with details", func(t *testing.T) {
		kind := "angel"
		users := new(mockUserStore)
		users.On("AddRole", ctx, int64(5), models.RoleInvestor, &models.InvestorProfile{Type: &kind}).Return(nil)
		users.On("GetProfile", ctx, int64(5)).Return(&models.UserProfile{
			User:     models.User{ID: 5, Roles: models.NewRoleSet(models.RoleFounder, models.RoleInvestor)},
			Investor: &models.InvestorProfile{Type: &kind},
		}, nil)
		svc := NewUserService(users, zerolog.Nop())

		resp, err := svc.AddRole(ctx, 5, &dto.AddRoleRequest{Role: "investor", Investor: &dto.InvestorDetails{Type: &kind}})

		require.NoError(t, err)
		assert.Equal(t, []string{"founder", "investor"}, resp.Roles)
		require.NotNil(t, resp.Investor)
		assert.Equal(t, "angel", *resp.Investor.Type)
	})
}
