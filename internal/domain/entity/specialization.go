package entity

import "github.com/google/uuid"

// Specialization is reference data maintained outside this service.
type Specialization struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
}

func (Specialization) TableName() string {
	return "specializations"
}
