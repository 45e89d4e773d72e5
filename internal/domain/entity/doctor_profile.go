package entity

import "github.com/google/uuid"

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	SpecializationID uuid.UUID `gorm:"type:uuid;not null;index" json:"specialization_id"`
	Biography        string    `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User           User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Specialization Specialization `gorm:"foreignKey:SpecializationID" json:"specialization,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// Practices reports whether the doctor is active and belongs to the specialization.
func (p *DoctorProfile) Practices(specializationID uuid.UUID) bool {
	return p.User.Active() && p.User.RoleID == RoleIDDoctor && p.SpecializationID == specializationID
}
