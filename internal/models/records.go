package models

import "time"

// RoundsLog is one clinical rounds note. Append-only; writing one stamps
// the patient's LastRoundedAt.
type RoundsLog struct {
	BaseModel
	PatientID string `gorm:"size:36;index;not null" json:"patientId"`
	Author    string `gorm:"size:255" json:"author,omitempty"`
	Note      string `gorm:"type:text;not null" json:"note"`

	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
}

// Transfer is the audit record of a ward/hospital move.
type Transfer struct {
	BaseModel
	PatientID      string    `gorm:"size:36;index;not null" json:"patientId"`
	FromHospitalID *string   `gorm:"size:36" json:"fromHospitalId,omitempty"`
	FromWardID     *string   `gorm:"size:36" json:"fromWardId,omitempty"`
	ToHospitalID   string    `gorm:"size:36;not null" json:"toHospitalId"`
	ToWardID       *string   `gorm:"size:36" json:"toWardId,omitempty"`
	MovedAt        time.Time `json:"movedAt"`
	Reason         string    `gorm:"size:255" json:"reason,omitempty"`

	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
}

// PatientPhoto stores an uploaded image as binary data in the database.
type PatientPhoto struct {
	BaseModel
	PatientID string `gorm:"size:36;index;not null" json:"patientId"`
	FileName  string `gorm:"not null" json:"fileName"`
	FileType  string `gorm:"not null" json:"fileType"`         // MIME type of the file
	Caption   string `gorm:"size:255" json:"caption,omitempty"`
	FileData  []byte `gorm:"type:longblob;not null" json:"-"` // File content as binary data (longblob for MySQL)

	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
}

// Setting is one key-value configuration row.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}
