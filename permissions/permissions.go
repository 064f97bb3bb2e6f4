package permissions

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/tisbroker/insurance-api/models"
)

// Resources and actions used in the capability table.
const (
	ResProducts      = "products"
	ResCategories    = "categories"
	ResNews          = "news"
	ResUsers         = "users"
	ResOrders        = "orders"
	ResConsultations = "consultations"
	ResDashboard     = "dashboard"

	ActRead   = "read"
	ActWrite  = "write"
	ActManage = "manage"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Enforcer wraps a casbin enforcer carrying the role capability table.
// The table is seeded once at startup; there is no runtime policy storage.
type Enforcer struct {
	e *casbin.Enforcer
}

func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{string(models.RoleAdmin), ResProducts, ActWrite},
		{string(models.RoleAdmin), ResCategories, ActWrite},
		{string(models.RoleAdmin), ResNews, ActWrite},
		{string(models.RoleAdmin), ResUsers, ActManage},
		{string(models.RoleAdmin), ResOrders, ActManage},
		{string(models.RoleAdmin), ResConsultations, ActManage},
		{string(models.RoleAdmin), ResDashboard, ActRead},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	// super_admin inherits everything admin can do; the two roles are
	// interchangeable for permission checks.
	if _, err := e.AddGroupingPolicy(string(models.RoleSuperAdmin), string(models.RoleAdmin)); err != nil {
		return nil, err
	}

	return &Enforcer{e: e}, nil
}

// Allowed reports whether the role may perform action on resource.
func (f *Enforcer) Allowed(role models.Role, resource, action string) bool {
	ok, err := f.e.Enforce(string(role), resource, action)
	if err != nil {
		return false
	}
	return ok
}

// CanAccessOwned is the ownership predicate: admin-class roles see
// everything, everyone else only records whose user FK is their own.
func CanAccessOwned(u *models.User, ownerID uint) bool {
	if u == nil {
		return false
	}
	if u.Role.IsAdmin() {
		return true
	}
	return u.ID == ownerID
}

// CanAccessConsultation is the object-level predicate for consultation
// detail, update and message access. Staff may only act on requests whose
// linked product's category specialization matches their own; a request
// with no linked product is open to all staff. Customers only reach their
// own requests. The consultation must have Product.Category preloaded.
func CanAccessConsultation(u *models.User, cr *models.ConsultationRequest) bool {
	if u == nil {
		return false
	}
	if u.Role.IsAdmin() {
		return true
	}
	if u.Role == models.RoleStaff {
		if cr.Product == nil {
			return true
		}
		return cr.Product.Category.SpecializationCode == u.Specialization
	}
	return cr.UserID != nil && *cr.UserID == u.ID
}
