// internal/domain/models/people.go
package models

import "time"

// Clergy assignment levels.
const (
	LevelConference = "conference"
	LevelDistrict   = "district"
	LevelSociety    = "society"
)

// Clergy is an ordained minister assigned to exactly one conference,
// district or society.
type Clergy struct {
	Meta            `yaml:",inline"`
	Name            string `yaml:"name"`
	Title           string `yaml:"title"`
	Ordained        string `yaml:"ordained"`
	AssignmentLevel string `yaml:"assignment_level"`
	Assignment      string `yaml:"assignment"`
	Email           string `yaml:"email"`
	Phone           string `yaml:"phone"`
	Status          string `yaml:"status"`
}

// LayOfficer is a non-ordained member holding an administrative role.
type LayOfficer struct {
	Meta     `yaml:",inline"`
	Name     string `yaml:"name"`
	Position string `yaml:"position"`
	Society  string `yaml:"society"`
	Since    string `yaml:"since"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Status   string `yaml:"status"`
}

// Staff is a head-office employee as listed under Members.
type Staff struct {
	Meta       `yaml:",inline"`
	Name       string    `yaml:"name"`
	Department string    `yaml:"department"`
	Position   string    `yaml:"position"`
	HireDate   time.Time `yaml:"hire_date"`
	Email      string    `yaml:"email"`
	Phone      string    `yaml:"phone"`
	Status     string    `yaml:"status"`
}

// Employee is the HR view of a staff member.
type Employee struct {
	Meta         `yaml:",inline"`
	Name         string    `yaml:"name"`
	Department   string    `yaml:"department"`
	Position     string    `yaml:"position"`
	JoinDate     time.Time `yaml:"join_date"`
	Status       string    `yaml:"status"`
	LeaveBalance int       `yaml:"leave_balance"`
}

// LeaveRequest is an HR leave application awaiting a decision.
type LeaveRequest struct {
	Meta     `yaml:",inline"`
	Employee string    `yaml:"employee"`
	Type     string    `yaml:"type"`
	From     time.Time `yaml:"from"`
	To       time.Time `yaml:"to"`
	Status   string    `yaml:"status"`
}

// Days returns the inclusive number of calendar days requested.
func (l LeaveRequest) Days() int {
	if l.To.Before(l.From) {
		return 0
	}
	return int(l.To.Sub(l.From).Hours()/24) + 1
}
