package db

// Repositories provides access to all database repositories
type Repositories struct {
	Tenants  *TenantRepository
	Webinars *WebinarRepository
}

// NewRepositories creates a new repository collection
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Tenants:  NewTenantRepository(db),
		Webinars: NewWebinarRepository(db),
	}
}
