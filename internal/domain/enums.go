package domain

// Status is the lifecycle state shared by products and staff
type Status string

const (
	StatusActive       Status = "ACTIVE"
	StatusInactive     Status = "INACTIVE"
	StatusDiscontinued Status = "DISCONTINUED"
)

// OrDefault returns ACTIVE for an unset status
func (s Status) OrDefault() Status {
	if s == "" {
		return StatusActive
	}
	return s
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDiscontinued:
		return true
	}
	return false
}

// Rights is the access level granted to a staff member
type Rights string

const (
	RightsAdmin    Rights = "ADMIN"
	RightsManager  Rights = "MANAGER"
	RightsStaff    Rights = "STAFF"
	RightsReadOnly Rights = "READ_ONLY"
)

func (r Rights) Valid() bool {
	switch r {
	case RightsAdmin, RightsManager, RightsStaff, RightsReadOnly:
		return true
	}
	return false
}
