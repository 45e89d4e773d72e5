package entity

import "github.com/google/uuid"

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsPatient() bool {
	return a.Role == RolePatient
}

func (a Actor) IsDoctor() bool {
	return a.Role == RoleDoctor
}
