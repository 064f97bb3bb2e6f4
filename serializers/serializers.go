// Package serializers is the single response-shaping layer. Sensitive
// fields are dropped here based on the requesting identity, so every read
// path (list, detail, search, featured) goes through the same projection.
package serializers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tisbroker/insurance-api/models"
)

type ProductView struct {
	ID             uint                  `json:"id"`
	CategoryID     uint                  `json:"category_id"`
	Name           string                `json:"name"`
	ProviderName   *string               `json:"provider_name,omitempty"`
	Description    string                `json:"description"`
	IsFeatured     bool                  `json:"is_featured"`
	IsPriceHidden  bool                  `json:"is_price_hidden"`
	TargetAudience models.TargetAudience `json:"target_audience"`
	Images         []string              `json:"images"`
	Packages       []PackageView         `json:"packages"`
	CreatedAt      time.Time             `json:"created_at"`
}

type PackageView struct {
	ID            uint            `json:"id"`
	DurationLabel string          `json:"duration_label"`
	Price         decimal.Decimal `json:"price"`
	DurationDays  int             `json:"duration_days"`
}

// Product projects a product for the given requester. provider_name is
// admin-only: absent, unauthenticated or non-admin requesters never see it.
func Product(p models.Product, requester *models.User) ProductView {
	view := ProductView{
		ID:             p.ID,
		CategoryID:     p.CategoryID,
		Name:           p.Name,
		Description:    p.Description,
		IsFeatured:     p.IsFeatured,
		IsPriceHidden:  p.IsPriceHidden,
		TargetAudience: p.TargetAudience,
		Images:         make([]string, 0, len(p.Images)),
		Packages:       make([]PackageView, 0, len(p.Packages)),
		CreatedAt:      p.CreatedAt,
	}
	for _, img := range p.Images {
		view.Images = append(view.Images, img.ImageURL)
	}
	for _, pkg := range p.Packages {
		view.Packages = append(view.Packages, Package(pkg))
	}
	if requester != nil && requester.Role.IsAdmin() {
		provider := p.ProviderName
		view.ProviderName = &provider
	}
	return view
}

func Products(ps []models.Product, requester *models.User) []ProductView {
	views := make([]ProductView, 0, len(ps))
	for _, p := range ps {
		views = append(views, Product(p, requester))
	}
	return views
}

func Package(pkg models.ProductPackage) PackageView {
	return PackageView{
		ID:            pkg.ID,
		DurationLabel: pkg.DurationLabel,
		Price:         pkg.Price,
		DurationDays:  pkg.DurationDays,
	}
}

type CartItemView struct {
	ID          uint            `json:"id"`
	PackageID   uint            `json:"package"`
	ProductName string          `json:"product_name"`
	Duration    string          `json:"duration"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// CartItem flattens package and product info the way clients expect.
// Price is the package's current price, read live.
func CartItem(item models.CartItem) CartItemView {
	return CartItemView{
		ID:          item.ID,
		PackageID:   item.PackageID,
		ProductName: item.Package.Product.Name,
		Duration:    item.Package.DurationLabel,
		Price:       item.Package.Price,
		Quantity:    item.Quantity,
	}
}

type OrderItemView struct {
	ProductName string          `json:"product_name"`
	Duration    string          `json:"duration"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type OrderView struct {
	ID              uint               `json:"id"`
	Code            string             `json:"code"`
	UserID          uint               `json:"user"`
	Status          models.OrderStatus `json:"status"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	ProcessedBy     *uint              `json:"processed_by"`
	BeneficiaryNote string             `json:"beneficiary_note"`
	Items           []OrderItemView    `json:"items"`
	CreatedAt       time.Time          `json:"created_at"`
}

// Order serializes an order with its items. Item prices come from the
// snapshot captured at order time, not the package's current price.
func Order(o models.Order) OrderView {
	view := OrderView{
		ID:              o.ID,
		Code:            o.Code,
		UserID:          o.UserID,
		Status:          o.Status,
		TotalAmount:     o.TotalAmount,
		ProcessedBy:     o.ProcessedByID,
		BeneficiaryNote: o.BeneficiaryNote,
		Items:           make([]OrderItemView, 0, len(o.Items)),
		CreatedAt:       o.CreatedAt,
	}
	for _, item := range o.Items {
		view.Items = append(view.Items, OrderItemView{
			ProductName: item.Package.Product.Name,
			Duration:    item.Package.DurationLabel,
			Quantity:    item.Quantity,
			Price:       item.UnitPrice,
		})
	}
	return view
}

func Orders(os []models.Order) []OrderView {
	views := make([]OrderView, 0, len(os))
	for _, o := range os {
		views = append(views, Order(o))
	}
	return views
}

type ChatMessageView struct {
	ID         uint      `json:"id"`
	SenderID   uint      `json:"sender"`
	SenderName string    `json:"sender_name"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"timestamp"`
}

func ChatMessage(m models.ChatMessage) ChatMessageView {
	return ChatMessageView{
		ID:         m.ID,
		SenderID:   m.SenderID,
		SenderName: m.Sender.Username,
		Message:    m.Message,
		CreatedAt:  m.CreatedAt,
	}
}

func ChatMessages(ms []models.ChatMessage) []ChatMessageView {
	views := make([]ChatMessageView, 0, len(ms))
	for _, m := range ms {
		views = append(views, ChatMessage(m))
	}
	return views
}
