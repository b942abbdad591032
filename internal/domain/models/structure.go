// internal/domain/models/structure.go
package models

// Conference is the top-level regional grouping of districts, led by a bishop.
type Conference struct {
	Meta        `yaml:",inline"`
	Name        string `yaml:"name"`
	Bishop      string `yaml:"bishop"`
	Region      string `yaml:"region"`
	Address     string `yaml:"address"`
	Email       string `yaml:"email"`
	Phone       string `yaml:"phone"`
	Established string `yaml:"established"`
	Districts   int    `yaml:"districts"`
	Societies   int    `yaml:"societies"`
	Members     int    `yaml:"members"`
	Status      string `yaml:"status"`
}

// District groups societies under a superintendent (presiding elder).
// Conference holds the conference name as displayed; it is not a foreign key.
type District struct {
	Meta           `yaml:",inline"`
	Name           string `yaml:"name"`
	Conference     string `yaml:"conference"`
	Superintendent string `yaml:"superintendent"`
	Email          string `yaml:"email"`
	Phone          string `yaml:"phone"`
	Societies      int    `yaml:"societies"`
	Members        int    `yaml:"members"`
	Status         string `yaml:"status"`
}

// Society is a local congregation, the smallest unit in the hierarchy.
type Society struct {
	Meta     `yaml:",inline"`
	Name     string `yaml:"name"`
	District string `yaml:"district"`
	Pastor   string `yaml:"pastor"`
	Address  string `yaml:"address"`
	Phone    string `yaml:"phone"`
	Members  int    `yaml:"members"`
	Status   string `yaml:"status"`
}
