// Package roster defines the employee record and the collaborator contracts
// used by the roster CLI.
//
// Records are owned by the remote employee service. Everything in this module
// treats them as immutable values: the view layer derives ordered, filtered and
// paginated slices from them, and only the Mutator collaborator changes them.
package roster

import (
	"strconv"
	"time"
)

// JobTitle is one of the fixed job titles offered by the employee service.
type JobTitle string

// Known job titles.
const (
	JobTitleCustomerSupport  JobTitle = "Customer Support"
	JobTitleITSupport        JobTitle = "IT Support Specialist"
	JobTitleSoftwareEngineer JobTitle = "Software Engineer"
)

// JobTitles returns the known job titles in display order.
func JobTitles() []JobTitle {
	return []JobTitle{JobTitleCustomerSupport, JobTitleITSupport, JobTitleSoftwareEngineer}
}

// IsValid reports whether t is one of the known job titles.
func (t JobTitle) IsValid() bool {
	for _, known := range JobTitles() {
		if t == known {
			return true
		}
	}
	return false
}

// Status is the optional presence status of an employee.
type Status string

// Known statuses. The zero value means the status is unset.
const (
	StatusUnset       Status = ""
	StatusActive      Status = "Active"
	StatusSick        Status = "Sick"
	StatusOutOfOffice Status = "Out of Office"
)

// Statuses returns the known non-empty statuses.
func Statuses() []Status {
	return []Status{StatusActive, StatusSick, StatusOutOfOffice}
}

// HireDateLayout is the wire layout of a hire date.
const HireDateLayout = "2006-01-02"

// hireDateLayouts are the layouts HireDate.Time accepts, most specific last.
//
//nolint:gochecknoglobals // Read-only parse table.
var hireDateLayouts = []string{
	HireDateLayout,
	time.RFC3339,
	time.RFC3339Nano,
	// Zone-less timestamps, read as UTC. Services built on .NET send these.
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// HireDate is a calendar date as sent by the employee service.
// It is kept as the raw string so that malformed values survive a round trip
// and can still be displayed.
type HireDate string

// NewHireDate formats t as a HireDate, dropping the time of day.
func NewHireDate(t time.Time) HireDate {
	return HireDate(t.Format(HireDateLayout))
}

// Time parses the hire date. The second return value is false when the date
// cannot be parsed; the returned time is then the zero time.
func (d HireDate) Time() (time.Time, bool) {
	for _, layout := range hireDateLayouts {
		if t, err := time.Parse(layout, string(d)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// String returns the raw date.
func (d HireDate) String() string {
	return string(d)
}

// Record is a single employee.
type Record struct {
	ID       int      `json:"id"                yaml:"id"`
	Name     string   `json:"name"              yaml:"name"              validate:"required"`
	JobTitle JobTitle `json:"jobTitle"          yaml:"job_title"         validate:"required,jobtitle"`
	HireDate HireDate `json:"hireDate"          yaml:"hire_date"         validate:"required,hiredate"`
	Details  string   `json:"details,omitempty" yaml:"details,omitempty"`
	Status   Status   `json:"status,omitempty"  yaml:"status,omitempty"  validate:"omitempty,status"`
}

// Key returns the record identifier as a string, used for logging and cache keys.
func (r Record) Key() string {
	return strconv.Itoa(r.ID)
}
