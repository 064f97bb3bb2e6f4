package cartControllers

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tisbroker/insurance-api/models"
	"github.com/tisbroker/insurance-api/testutil"
)

func TestGetOrCreateCart_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "buyer", models.RoleCustomer)

	first, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)
	second, err := GetOrCreateCart(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAddItem_MissingPackage(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "buyer", models.RoleCustomer)

	_, err := AddItem(db, user.ID, 9999, 1)
	assert.ErrorIs(t, err, models.ErrPackageNotFound)
}

func TestAddItem_AccumulatesQuantity(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "buyer", models.RoleCustomer)
	pkg := testutil.CreatePackage(t, db, "Health Shield", models.SpecializationHealth, 500000)

	_, err := AddItem(db, user.ID, pkg.ID, 2)
	require.NoError(t, err)
	item, err := AddItem(db, user.ID, pkg.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, 5, item.Quantity)

	var count int64
	db.Model(&models.CartItem{}).Where("package_id = ?", pkg.ID).Count(&count)
	assert.EqualValues(t, 1, count, "repeated adds must not duplicate rows")
}

func TestAddItem_ConcurrentAddsSingleRow(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "buyer", models.RoleCustomer)
	pkg := testutil.CreatePackage(t, db, "Vehicle Plus", models.SpecializationVehicle, 300000)

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := AddItem(db, user.ID, pkg.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var items []models.CartItem
	require.NoError(t, db.Where("package_id = ?", pkg.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, workers, items[0].Quantity)
}

func TestUpdateItem_OverwritesQuantity(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "buyer", models.RoleCustomer)
	pkg := testutil.CreatePackage(t, db, "Marine Cargo", models.SpecializationMarine, 900000)

	item, err := AddItem(db, user.ID, pkg.ID, 2)
	require.NoError(t, err)

	require.NoError(t, UpdateItem(db, user.ID, item.ID, 7))

	var stored models.CartItem
	require.NoError(t, db.First(&stored, item.ID).Error)
	assert.Equal(t, 7, stored.Quantity, "update is an overwrite, not an increment")
}

func TestUpdateItem_ZeroQuantityDeletes(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "buyer", models.RoleCustomer)
	pkg := testutil.CreatePackage(t, db, "Property Basic", models.SpecializationProperty, 200000)

	item, err := AddItem(db, user.ID, pkg.ID, 2)
	require.NoError(t, err)

	require.NoError(t, UpdateItem(db, user.ID, item.ID, 0))

	var count int64
	db.Model(&models.CartItem{}).Where("id = ?", item.ID).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateItem_ForeignItemLooksMissing(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner", models.RoleCustomer)
	intruder := testutil.CreateUser(t, db, "intruder", models.RoleCustomer)
	pkg := testutil.CreatePackage(t, db, "Health Shield", models.SpecializationHealth, 500000)

	item, err := AddItem(db, owner.ID, pkg.ID, 1)
	require.NoError(t, err)

	err = UpdateItem(db, intruder.ID, item.ID, 5)
	assert.ErrorIs(t, err, models.ErrCartItemNotFound)

	var stored models.CartItem
	require.NoError(t, db.First(&stored, item.ID).Error)
	assert.Equal(t, 1, stored.Quantity, "foreign update must not touch the row")
}

func TestUpdateItem_MissingItem(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "buyer", models.RoleCustomer)

	err := UpdateItem(db, user.ID, 424242, 3)
	assert.ErrorIs(t, err, models.ErrCartItemNotFound)
}

func TestListCart_TotalRecomputedFromCurrentPrices(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "buyer", models.RoleCustomer)
	pkg := testutil.CreatePackage(t, db, "Health Shield", models.SpecializationHealth, 500000)

	_, err := AddItem(db, user.ID, pkg.ID, 2)
	require.NoError(t, err)

	_, total, err := ListCart(db, user.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000000).Equal(total), "got %s", total)

	// Price change after the add must show up on the next read.
	require.NoError(t, db.Model(&models.ProductPackage{}).
		Where("id = ?", pkg.ID).
		Update("price", decimal.NewFromInt(700000)).Error)

	items, total, err := ListCart(db, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, decimal.NewFromInt(1400000).Equal(total), "got %s", total)
}
