package consultationControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tisbroker/insurance-api/models"
	"github.com/tisbroker/insurance-api/testutil"
)

func newRequest(t *testing.T, db *gorm.DB, productID *uint) *models.ConsultationRequest {
	t.Helper()
	cr := &models.ConsultationRequest{
		CustomerName:    "Nguyen Van A",
		CustomerContact: "0901234567",
		ProductID:       productID,
		Status:          models.ConsultationStatusNew,
	}
	require.NoError(t, db.Create(cr).Error)
	return cr
}

func TestAssignStaff_MatchesSpecialization(t *testing.T) {
	db := testutil.NewDB(t)
	pkg := testutil.CreatePackage(t, db, "Health Shield", models.SpecializationHealth, 500000)
	health := testutil.CreateStaff(t, db, "staff_health", models.SpecializationHealth)
	testutil.CreateStaff(t, db, "staff_vehicle", models.SpecializationVehicle)

	var product models.ProductPackage
	require.NoError(t, db.First(&product, pkg.ID).Error)

	cr := newRequest(t, db, &product.ProductID)
	require.NoError(t, AssignStaff(db, cr))

	require.NoError(t, db.First(cr, cr.ID).Error)
	require.NotNil(t, cr.AssignedStaffID)
	assert.Equal(t, health.ID, *cr.AssignedStaffID)
	assert.Equal(t, models.ConsultationStatusAssigned, cr.Status)
}

func TestAssignStaff_PicksLeastLoaded(t *testing.T) {
	db := testutil.NewDB(t)
	pkg := testutil.CreatePackage(t, db, "Health Shield", models.SpecializationHealth, 500000)
	busy := testutil.CreateStaff(t, db, "staff_busy", models.SpecializationHealth)
	idle := testutil.CreateStaff(t, db, "staff_idle", models.SpecializationHealth)

	var p models.ProductPackage
	require.NoError(t, db.First(&p, pkg.ID).Error)

	// Two open requests already sit with the first specialist.
	for i := 0; i < 2; i++ {
		cr := newRequest(t, db, &p.ProductID)
		require.NoError(t, db.Model(cr).Updates(map[string]interface{}{
			"assigned_staff_id": busy.ID,
			"status":            models.ConsultationStatusAssigned,
		}).Error)
	}

	cr := newRequest(t, db, &p.ProductID)
	require.NoError(t, AssignStaff(db, cr))

	require.NoError(t, db.First(cr, cr.ID).Error)
	require.NotNil(t, cr.AssignedStaffID)
	assert.Equal(t, idle.ID, *cr.AssignedStaffID)
}

func TestAssignStaff_ClosedRequestsDoNotCount(t *testing.T) {
	db := testutil.NewDB(t)
	pkg := testutil.CreatePackage(t, db, "Health Shield", models.SpecializationHealth, 500000)
	first := testutil.CreateStaff(t, db, "staff_first", models.SpecializationHealth)
	second := testutil.CreateStaff(t, db, "staff_second", models.SpecializationHealth)

	var p models.ProductPackage
	require.NoError(t, db.First(&p, pkg.ID).Error)

	// A pile of closed work must not make the first specialist look busy.
	for i := 0; i < 3; i++ {
		cr := newRequest(t, db, &p.ProductID)
		require.NoError(t, db.Model(cr).Updates(map[string]interface{}{
			"assigned_staff_id": first.ID,
			"status":            models.ConsultationStatusClosed,
		}).Error)
	}
	open := newRequest(t, db, &p.ProductID)
	require.NoError(t, db.Model(open).Updates(map[string]interface{}{
		"assigned_staff_id": second.ID,
		"status":            models.ConsultationStatusAssigned,
	}).Error)

	cr := newRequest(t, db, &p.ProductID)
	require.NoError(t, AssignStaff(db, cr))

	require.NoError(t, db.First(cr, cr.ID).Error)
	require.NotNil(t, cr.AssignedStaffID)
	assert.Equal(t, first.ID, *cr.AssignedStaffID)
}

func TestAssignStaff_TieBreaksOnLowestID(t *testing.T) {
	db := testutil.NewDB(t)
	pkg := testutil.CreatePackage(t, db, "Health Shield", models.SpecializationHealth, 500000)
	a := testutil.CreateStaff(t, db, "staff_a", models.SpecializationHealth)
	testutil.CreateStaff(t, db, "staff_b", models.SpecializationHealth)

	var p models.ProductPackage
	require.NoError(t, db.First(&p, pkg.ID).Error)

	cr := newRequest(t, db, &p.ProductID)
	require.NoError(t, AssignStaff(db, cr))

	require.NoError(t, db.First(cr, cr.ID).Error)
	require.NotNil(t, cr.AssignedStaffID)
	assert.Equal(t, a.ID, *cr.AssignedStaffID)
}

func TestAssignStaff_NoProductStaysNew(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateStaff(t, db, "staff_health", models.SpecializationHealth)

	cr := newRequest(t, db, nil)
	require.NoError(t, AssignStaff(db, cr))

	require.NoError(t, db.First(cr, cr.ID).Error)
	assert.Nil(t, cr.AssignedStaffID)
	assert.Equal(t, models.ConsultationStatusNew, cr.Status)
}

func TestAssignStaff_NoMatchingStaffStaysNew(t *testing.T) {
	db := testutil.NewDB(t)
	pkg := testutil.CreatePackage(t, db, "Health Shield", models.SpecializationHealth, 500000)
	testutil.CreateStaff(t, db, "staff_vehicle", models.SpecializationVehicle)

	var p models.ProductPackage
	require.NoError(t, db.First(&p, pkg.ID).Error)

	cr := newRequest(t, db, &p.ProductID)
	require.NoError(t, AssignStaff(db, cr))

	require.NoError(t, db.First(cr, cr.ID).Error)
	assert.Nil(t, cr.AssignedStaffID)
	assert.Equal(t, models.ConsultationStatusNew, cr.Status)
}

func TestAssignStaff_SkipsInactiveStaff(t *testing.T) {
	db := testutil.NewDB(t)
	pkg := testutil.CreatePackage(t, db, "Health Shield", models.SpecializationHealth, 500000)
	inactive := testutil.CreateStaff(t, db, "staff_gone", models.SpecializationHealth)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)
	active := testutil.CreateStaff(t, db, "staff_here", models.SpecializationHealth)

	var p models.ProductPackage
	require.NoError(t, db.First(&p, pkg.ID).Error)

	cr := newRequest(t, db, &p.ProductID)
	require.NoError(t, AssignStaff(db, cr))

	require.NoError(t, db.First(cr, cr.ID).Error)
	require.NotNil(t, cr.AssignedStaffID)
	assert.Equal(t, active.ID, *cr.AssignedStaffID)
}
