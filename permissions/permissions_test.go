package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tisbroker/insurance-api/models"
)

func TestEnforcer_CapabilityTable(t *testing.T) {
	enf, err := NewEnforcer()
	require.NoError(t, err)

	cases := []struct {
		role     models.Role
		resource string
		action   string
		want     bool
	}{
		{models.RoleAdmin, ResProducts, ActWrite, true},
		{models.RoleAdmin, ResCategories, ActWrite, true},
		{models.RoleAdmin, ResNews, ActWrite, true},
		{models.RoleAdmin, ResUsers, ActManage, true},
		{models.RoleAdmin, ResOrders, ActManage, true},
		{models.RoleAdmin, ResConsultations, ActManage, true},
		{models.RoleAdmin, ResDashboard, ActRead, true},

		{models.RoleStaff, ResProducts, ActWrite, false},
		{models.RoleStaff, ResUsers, ActManage, false},
		{models.RoleStaff, ResDashboard, ActRead, false},

		{models.RoleCustomer, ResProducts, ActWrite, false},
		{models.RoleCustomer, ResOrders, ActManage, false},
		{models.RoleCustomer, ResDashboard, ActRead, false},
	}
	for _, tc := range cases {
		got := enf.Allowed(tc.role, tc.resource, tc.action)
		assert.Equal(t, tc.want, got, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}

func TestEnforcer_SuperAdminInheritsAdmin(t *testing.T) {
	enf, err := NewEnforcer()
	require.NoError(t, err)

	resources := []string{ResProducts, ResCategories, ResNews, ResUsers, ResOrders, ResConsultations, ResDashboard}
	for _, res := range resources {
		for _, act := range []string{ActRead, ActWrite, ActManage} {
			assert.Equal(t,
				enf.Allowed(models.RoleAdmin, res, act),
				enf.Allowed(models.RoleSuperAdmin, res, act),
				"%s:%s", res, act)
		}
	}
}

func TestCanAccessOwned(t *testing.T) {
	customer := &models.User{ID: 4, Role: models.RoleCustomer}
	staff := &models.User{ID: 5, Role: models.RoleStaff}
	admin := &models.User{ID: 6, Role: models.RoleAdmin}

	assert.False(t, CanAccessOwned(nil, 4))
	assert.True(t, CanAccessOwned(customer, 4))
	assert.False(t, CanAccessOwned(customer, 9))
	assert.False(t, CanAccessOwned(staff, 9), "staff gets no blanket ownership bypass")
	assert.True(t, CanAccessOwned(admin, 9))
}

func TestCanAccessConsultation(t *testing.T) {
	ownerID := uint(4)
	healthProduct := &models.Product{
		Category: models.Category{SpecializationCode: models.SpecializationHealth},
	}

	withProduct := &models.ConsultationRequest{UserID: &ownerID, Product: healthProduct}
	withoutProduct := &models.ConsultationRequest{UserID: &ownerID}
	anonymous := &models.ConsultationRequest{Product: healthProduct}

	owner := &models.User{ID: ownerID, Role: models.RoleCustomer}
	other := &models.User{ID: 99, Role: models.RoleCustomer}
	healthStaff := &models.User{ID: 7, Role: models.RoleStaff, Specialization: models.SpecializationHealth}
	vehicleStaff := &models.User{ID: 8, Role: models.RoleStaff, Specialization: models.SpecializationVehicle}
	admin := &models.User{ID: 9, Role: models.RoleSuperAdmin}

	assert.False(t, CanAccessConsultation(nil, withProduct))

	assert.True(t, CanAccessConsultation(owner, withProduct))
	assert.False(t, CanAccessConsultation(other, withProduct))
	assert.False(t, CanAccessConsultation(other, anonymous), "no owner on record means no customer access")

	assert.True(t, CanAccessConsultation(healthStaff, withProduct))
	assert.False(t, CanAccessConsultation(vehicleStaff, withProduct))
	assert.True(t, CanAccessConsultation(vehicleStaff, withoutProduct), "no product means open to all staff")

	assert.True(t, CanAccessConsultation(admin, withProduct))
	assert.True(t, CanAccessConsultation(admin, anonymous))
}
