package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tisbroker/insurance-api/models"
	"github.com/tisbroker/insurance-api/testutil"
)

func TestUser_OrgEmailRequiredForInternalRoles(t *testing.T) {
	db := testutil.NewDB(t)

	internalRoles := []models.Role{models.RoleAdmin, models.RoleStaff, models.RoleSuperAdmin}
	for _, role := range internalRoles {
		t.Run(string(role), func(t *testing.T) {
			user := models.User{
				Username:     "u_" + string(role),
				Email:        string(role) + "@gmail.com",
				PasswordHash: "x",
				Role:         role,
				IsActive:     true,
			}
			err := db.Create(&user).Error
			assert.ErrorIs(t, err, models.ErrNotOrgEmail)

			var count int64
			db.Model(&models.User{}).Where("username = ?", user.Username).Count(&count)
			assert.Zero(t, count, "rejected user must not be persisted")
		})
	}
}

func TestUser_OrgEmailAcceptedForInternalRoles(t *testing.T) {
	db := testutil.NewDB(t)

	user := models.User{
		Username:     "staff1",
		Email:        "staff1@tisbroker.com",
		PasswordHash: "x",
		Role:         models.RoleStaff,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
}

func TestUser_CustomerEmailNeverChecked(t *testing.T) {
	db := testutil.NewDB(t)

	user := models.User{
		Username:     "cust1",
		Email:        "cust1@gmail.com",
		PasswordHash: "x",
		Role:         models.RoleCustomer,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
}

func TestUser_OrgEmailCheckedOnUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "cust2", models.RoleCustomer)

	// Promoting a customer with an outside email must fail.
	user.Role = models.RoleAdmin
	err := db.Save(user).Error
	assert.ErrorIs(t, err, models.ErrNotOrgEmail)
}

func TestUser_OrgEmailCheckedOnColumnUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "cust3", models.RoleCustomer)

	// A column update through a struct that never loaded the email must
	// still see the stored address.
	partial := models.User{ID: user.ID, Role: models.RoleAdmin}
	err := db.Model(&partial).Update("role", models.RoleAdmin).Error
	assert.ErrorIs(t, err, models.ErrNotOrgEmail)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, models.RoleCustomer, stored.Role)
}

func TestRole_Predicates(t *testing.T) {
	assert.True(t, models.RoleAdmin.IsAdmin())
	assert.True(t, models.RoleSuperAdmin.IsAdmin())
	assert.False(t, models.RoleStaff.IsAdmin())
	assert.False(t, models.RoleCustomer.IsAdmin())

	assert.True(t, models.RoleStaff.IsInternal())
	assert.False(t, models.RoleCustomer.IsInternal())

	assert.Greater(t, models.RoleSuperAdmin.Level(), models.RoleAdmin.Level())
	assert.Greater(t, models.RoleAdmin.Level(), models.RoleStaff.Level())
	assert.Greater(t, models.RoleStaff.Level(), models.RoleCustomer.Level())
	assert.False(t, models.Role("manager").IsValid())
}
