package models

type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
)

func (s SupplierStatus) Valid() bool {
	return s == SupplierStatusActive || s == SupplierStatusInactive
}

type Supplier struct {
	ID            string         `json:"id"`
	UserID        int            `json:"user_id"`
	Name          string         `json:"name"`
	ContactPerson string         `json:"contact_person,omitempty"`
	Email         string         `json:"email,omitempty"`
	Phone         string         `json:"phone,omitempty"`
	Address       string         `json:"address,omitempty"`
	City          string         `json:"city,omitempty"`
	Country       string         `json:"country,omitempty"`
	PaymentTerms  string         `json:"payment_terms,omitempty"`
	Status        SupplierStatus `json:"status"`
	CreatedAt     string         `json:"created_at,omitempty"`
	UpdatedAt     string         `json:"updated_at,omitempty"`
}
