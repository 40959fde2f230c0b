package models

import "time"

// ExperienceModel is a position. A nil EndDate means the position is ongoing.
type ExperienceModel struct {
	Base
	ProfileOwned
	Title        string      `json:"title"        gorm:"not null"`
	Company      string      `json:"company"      gorm:"not null"`
	Location     string      `json:"location"`
	StartDate    time.Time   `json:"start_date"   gorm:"index;not null"`
	EndDate      *time.Time  `json:"end_date"`
	Description  string      `json:"description"  gorm:"type:text"`
	Achievements StringArray `json:"achievements" gorm:"type:text"`
}

func (ExperienceModel) TableName() string { return "experiences" }

// Ongoing reports whether the position has no end date.
func (e ExperienceModel) Ongoing() bool { return e.EndDate == nil }

// EducationModel is a degree or course of study. A nil EndDate means ongoing.
type EducationModel struct {
	Base
	ProfileOwned
	School       string     `json:"school"         gorm:"not null"`
	Degree       string     `json:"degree"         gorm:"not null"`
	FieldOfStudy string     `json:"field_of_study" gorm:"not null"`
	StartDate    time.Time  `json:"start_date"     gorm:"index;not null"`
	EndDate      *time.Time `json:"end_date"`
	Grade        string     `json:"grade"`
	Description  string     `json:"description"    gorm:"type:text"`
}

func (EducationModel) TableName() string { return "educations" }

// Ongoing reports whether the study has no end date.
func (e EducationModel) Ongoing() bool { return e.EndDate == nil }
