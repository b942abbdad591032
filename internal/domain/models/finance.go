// internal/domain/models/finance.go
package models

import "time"

// Collection is money received from an organizational unit
// (remittances, special offerings, donations).
type Collection struct {
	Meta   `yaml:",inline"`
	Type   string    `yaml:"type"`
	Source string    `yaml:"source"`
	Amount float64   `yaml:"amount"`
	Date   time.Time `yaml:"date"`
	Status string    `yaml:"status"`
}

// Payment is a recorded payment from a payer (usually a society).
type Payment struct {
	Meta      `yaml:",inline"`
	Reference string    `yaml:"reference"`
	Payer     string    `yaml:"payer"`
	Amount    float64   `yaml:"amount"`
	Method    string    `yaml:"method"`
	Date      time.Time `yaml:"date"`
	Status    string    `yaml:"status"`
	Notes     string    `yaml:"notes"`
}

// Report is an entry in the generated-reports list. Nothing is rendered
// to a file; the record only describes what was requested.
type Report struct {
	Meta      `yaml:",inline"`
	Name      string    `yaml:"name"`
	Type      string    `yaml:"type"`
	Period    string    `yaml:"period"`
	Generated time.Time `yaml:"generated"`
	Size      string    `yaml:"size"`
}

// MonthlyCollection is one point of the collections trend chart.
type MonthlyCollection struct {
	Year   int     `yaml:"year"`
	Month  string  `yaml:"month"`
	Amount float64 `yaml:"amount"`
}

// MembershipShare is one slice of the membership distribution chart.
type MembershipShare struct {
	Name  string `yaml:"name"`
	Value int    `yaml:"value"`
}
