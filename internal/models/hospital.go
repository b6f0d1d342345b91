package models

// Hospital is a care site. Names are unique across the installation.
type Hospital struct {
	BaseModel
	Name string `gorm:"uniqueIndex;size:255;not null" json:"name"`

	// Relations (not always preloaded)
	Wards    []Ward    `gorm:"foreignKey:HospitalID" json:"wards,omitempty"`
	Patients []Patient `gorm:"foreignKey:HospitalID" json:"-"`
}

// Ward is a named unit within a hospital; (hospital, name) is unique.
type Ward struct {
	BaseModel
	HospitalID string `gorm:"size:36;not null;uniqueIndex:idx_hospital_ward" json:"hospitalId"`
	Name       string `gorm:"size:255;not null;uniqueIndex:idx_hospital_ward" json:"name"`

	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"-"`
}
