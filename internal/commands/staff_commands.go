package commands

import (
	"net/mail"
	"strings"

	"inventory-service/internal/domain"
	"inventory-service/pkg/errors"
)

// CreateStaffCommand represents a command to register a staff member
type CreateStaffCommand struct {
	Name        string
	Email       string
	Designation string
	Department  string
	Rights      domain.Rights
	PhoneNumber string
	Status      domain.Status
}

// UpdateStaffCommand replaces every field of a staff member; an empty Status keeps the stored one
type UpdateStaffCommand struct {
	ID uint
	CreateStaffCommand
}

// DeleteStaffCommand represents a command to remove a staff member
type DeleteStaffCommand struct {
	ID uint
}

func (c CreateStaffCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.NewInvalidRequest("Name is required", "Field: name")
	}
	if strings.TrimSpace(c.Email) == "" {
		return errors.NewInvalidRequest("Email is required", "Field: email")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return errors.NewInvalidRequest("Email should be valid", "Field: email")
	}
	if c.Rights == "" {
		return errors.NewInvalidRequest("Rights are required", "Field: rights")
	}
	if !c.Rights.Valid() {
		return errors.NewInvalidRequest("Invalid rights: "+string(c.Rights), "Allowed: ADMIN, MANAGER, STAFF, READ_ONLY")
	}
	if c.Status != "" && !c.Status.Valid() {
		return errors.NewInvalidRequest("Invalid status: "+string(c.Status), "Allowed: ACTIVE, INACTIVE, DISCONTINUED")
	}
	return nil
}
