// internal/domain/models/access.go
package models

// User is a console account. Accounts are mock data; nothing authenticates
// against them beyond the simulated sign-in looking up a display name.
type User struct {
	Meta       `yaml:",inline"`
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Role       string `yaml:"role"`
	Status     string `yaml:"status"`
	LastActive string `yaml:"last_active"`
}

// Role is a named permission bundle. Permissions is a summary string only.
type Role struct {
	Meta        `yaml:",inline"`
	Name        string `yaml:"name"`
	Users       int    `yaml:"users"`
	Permissions string `yaml:"permissions"`
}
