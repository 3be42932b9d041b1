// Package models defines the database entities for tenants and webinars.
package models

import "time"

// Tenant status values
const (
	TenantStatusActive    = "active"
	TenantStatusSuspended = "suspended"
)

// Tenant represents a customer account that owns webinars.
// The UID is an opaque identity issued by the external auth provider,
// not generated by this service.
type Tenant struct {
	UID         string    `json:"uid" gorm:"type:text;primaryKey;column:uid"`
	Email       string    `json:"email" gorm:"type:text;not null;column:email" validate:"required,email"`
	CompanyName string    `json:"company_name" gorm:"type:text;not null;column:company_name" validate:"required"`
	Status      string    `json:"status" gorm:"type:text;not null;default:'active';column:status"`
	IsAdmin     bool      `json:"is_admin" gorm:"type:integer;not null;default:0;column:is_admin"`
	CreatedAt   time.Time `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
}

// NewTenant creates a new active Tenant
func NewTenant(uid, email, companyName string) *Tenant {
	return &Tenant{
		UID:         uid,
		Email:       email,
		CompanyName: companyName,
		Status:      TenantStatusActive,
		CreatedAt:   time.Now().UTC(),
	}
}

// IsValidTenantStatus reports whether s is an allowed tenant status value
func IsValidTenantStatus(s string) bool {
	return s == TenantStatusActive || s == TenantStatusSuspended
}
