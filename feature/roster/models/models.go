package models

import "time"

// Club is a registered swim club.
type Club struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(120);uniqueIndex" json:"name"`
	Code string `gorm:"type:varchar(16)" json:"code"`
}

// TableName overrides the default pluralized name.
func (Club) TableName() string {
	return "clubs"
}

// Athlete is a roster entry. The ingestion engine only ever reads athletes;
// identity fields are never mutated during ingestion — mismatches are
// reported as issues instead.
type Athlete struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	FullName  string     `gorm:"type:varchar(120);index" json:"full_name"`
	Birthdate *time.Time `gorm:"type:date" json:"birthdate"`
	Gender    string     `gorm:"type:varchar(1)" json:"gender"`
	ClubID    *uint      `json:"club_id"`
	Club      *Club      `gorm:"foreignKey:ClubID" json:"club,omitempty"`
	Nation    string     `gorm:"type:varchar(3)" json:"nation"`
	State     string     `gorm:"type:varchar(32)" json:"state"`
}

// TableName overrides the default pluralized name.
func (Athlete) TableName() string {
	return "athletes"
}
