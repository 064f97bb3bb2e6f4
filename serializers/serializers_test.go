package serializers

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tisbroker/insurance-api/models"
)

func sampleProduct() models.Product {
	return models.Product{
		ID:           1,
		CategoryID:   2,
		Name:         "Health Shield",
		ProviderName: "PVI Insurance",
		Description:  "Comprehensive health coverage",
		Images: []models.ProductImage{
			{ImageURL: "/uploads/products/a.jpg", Position: 0},
			{ImageURL: "/uploads/products/b.jpg", Position: 1},
		},
		Packages: []models.ProductPackage{
			{ID: 10, DurationLabel: "6 Tháng", Price: decimal.NewFromInt(500000), DurationDays: 180},
		},
	}
}

func TestProduct_ProviderNameAdminOnly(t *testing.T) {
	p := sampleProduct()

	cases := []struct {
		name      string
		requester *models.User
		visible   bool
	}{
		{"anonymous", nil, false},
		{"customer", &models.User{Role: models.RoleCustomer}, false},
		{"staff", &models.User{Role: models.RoleStaff}, false},
		{"admin", &models.User{Role: models.RoleAdmin}, true},
		{"super_admin", &models.User{Role: models.RoleSuperAdmin}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view := Product(p, tc.requester)
			if tc.visible {
				require.NotNil(t, view.ProviderName)
				assert.Equal(t, "PVI Insurance", *view.ProviderName)
			} else {
				assert.Nil(t, view.ProviderName)
			}
		})
	}
}

func TestProduct_ProviderNameOmittedFromJSON(t *testing.T) {
	view := Product(sampleProduct(), &models.User{Role: models.RoleCustomer})

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "provider_name")
	assert.NotContains(t, string(raw), "PVI Insurance")
}

func TestProduct_FlattensImagesAndPackages(t *testing.T) {
	view := Product(sampleProduct(), nil)

	assert.Equal(t, []string{"/uploads/products/a.jpg", "/uploads/products/b.jpg"}, view.Images)
	require.Len(t, view.Packages, 1)
	assert.Equal(t, "6 Tháng", view.Packages[0].DurationLabel)
	assert.Equal(t, 180, view.Packages[0].DurationDays)
}

func TestCartItem_UsesLivePackagePrice(t *testing.T) {
	item := models.CartItem{
		ID:        3,
		PackageID: 10,
		Quantity:  2,
		Package: models.ProductPackage{
			ID:            10,
			DurationLabel: "1 Năm",
			Price:         decimal.NewFromInt(700000),
			Product:       models.Product{Name: "Health Shield"},
		},
	}

	view := CartItem(item)
	assert.Equal(t, "Health Shield", view.ProductName)
	assert.True(t, decimal.NewFromInt(700000).Equal(view.Price))
	assert.Equal(t, 2, view.Quantity)
}

func TestOrder_ItemPriceComesFromSnapshot(t *testing.T) {
	staffID := uint(7)
	o := models.Order{
		ID:            5,
		Code:          "ORD-ABCDEF123456",
		UserID:        4,
		Status:        models.OrderStatusConfirmed,
		TotalAmount:   decimal.NewFromInt(1000000),
		ProcessedByID: &staffID,
		Items: []models.OrderItem{
			{
				Quantity:  2,
				UnitPrice: decimal.NewFromInt(500000),
				Package: models.ProductPackage{
					DurationLabel: "6 Tháng",
					Price:         decimal.NewFromInt(999999), // current price has moved
					Product:       models.Product{Name: "Health Shield"},
				},
			},
		},
	}

	view := Order(o)
	assert.Equal(t, "ORD-ABCDEF123456", view.Code)
	require.NotNil(t, view.ProcessedBy)
	assert.Equal(t, staffID, *view.ProcessedBy)
	require.Len(t, view.Items, 1)
	assert.True(t, decimal.NewFromInt(500000).Equal(view.Items[0].Price),
		"serialized price must be the snapshot, not the live package price")
}

func TestChatMessage_CarriesSenderName(t *testing.T) {
	m := models.ChatMessage{
		ID:       1,
		SenderID: 9,
		Sender:   models.User{Username: "staff_health"},
		Message:  "Chào anh, em hỗ trợ gói nào ạ?",
	}

	view := ChatMessage(m)
	assert.Equal(t, uint(9), view.SenderID)
	assert.Equal(t, "staff_health", view.SenderName)
}
