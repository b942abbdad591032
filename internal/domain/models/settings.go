// internal/domain/models/settings.go
package models

// Settings holds the console-wide configuration edited on the Settings page.
type Settings struct {
	Meta `yaml:",inline"`

	OrgName    string `yaml:"org_name"`
	OrgEmail   string `yaml:"org_email"`
	OrgPhone   string `yaml:"org_phone"`
	OrgAddress string `yaml:"org_address"`
	OrgWebsite string `yaml:"org_website"`
	RegNumber  string `yaml:"reg_number"`

	MobileMoney MobileMoney `yaml:"mobile_money"`
	Bank        BankAccount `yaml:"bank"`

	PasswordHash []byte `yaml:"-"`
}

// MobileMoney is the mobile money payout account.
type MobileMoney struct {
	Provider    string `yaml:"provider"`
	AccountName string `yaml:"account_name"`
	PhoneNumber string `yaml:"phone_number"`
}

// BankAccount is the bank payout account.
type BankAccount struct {
	BankName      string `yaml:"bank_name"`
	AccountName   string `yaml:"account_name"`
	AccountNumber string `yaml:"account_number"`
	BranchName    string `yaml:"branch_name"`
	SwiftCode     string `yaml:"swift_code"`
}

// Preferences is per-browser UI state kept only in process memory.
type Preferences struct {
	Meta             `yaml:",inline"`
	BrowserID        string
	SidebarCollapsed bool
}
