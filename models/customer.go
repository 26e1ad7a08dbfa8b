// models/customer.go
package models

// Customer is the caller of a request as resolved by the identity layer.
// It is not persisted; bookings keep UserID and AgencyID instead.
type Customer struct {
	UserID   uint   `json:"user_id"`
	AgencyID *uint  `json:"agency_id,omitempty"`
	Role     string `json:"role,omitempty"`
}

const RoleOperator = "operator"

// IsAgent reports whether prices and credit rules of an agency apply.
func (c Customer) IsAgent() bool {
	return c.AgencyID != nil && *c.AgencyID != 0
}

func (c Customer) IsAnonymous() bool {
	return c.UserID == 0
}

func (c Customer) IsOperator() bool {
	return c.Role == RoleOperator
}
