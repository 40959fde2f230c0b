package models

// ProfileModel is the "about me" record. Exactly one row per Key; the site reads the configured key.
type ProfileModel struct {
	Base
	Key               string      `json:"key"                gorm:"type:varchar(64);uniqueIndex;not null"`
	Name              string      `json:"name"               gorm:"not null"`
	Title             string      `json:"title"              gorm:"not null"`
	Bio               string      `json:"bio"                gorm:"type:text"`
	Email             string      `json:"email"`
	Phone             string      `json:"phone"`
	Address           string      `json:"address"`
	ProfileImage      string      `json:"profile_image"`
	TechStack         StringArray `json:"tech_stack"         gorm:"type:text"`
	CurrentActivities StringArray `json:"current_activities" gorm:"type:text"`

	Skills         []SkillModel         `json:"skills,omitempty"         gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Experiences    []ExperienceModel    `json:"experiences,omitempty"    gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Educations     []EducationModel     `json:"educations,omitempty"     gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	SocialLinks    []SocialLinkModel    `json:"social_links,omitempty"   gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	Retrospectives []RetrospectiveModel `json:"retrospectives,omitempty" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}

func (ProfileModel) TableName() string { return "profiles" }

// SkillModel is a named proficiency (0-100).
type SkillModel struct {
	Base
	ProfileOwned
	Name  string `json:"name"  gorm:"not null"`
	Level int    `json:"level" gorm:"not null;default:0"`
	Icon  string `json:"icon"`
}

func (SkillModel) TableName() string { return "skills" }

// SocialLinkModel links to an external profile. Platform is not unique.
type SocialLinkModel struct {
	Base
	ProfileOwned
	Platform string `json:"platform" gorm:"not null"`
	URL      string `json:"url"      gorm:"type:text;not null"`
	Icon     string `json:"icon"`
}

func (SocialLinkModel) TableName() string { return "social_links" }

// RetrospectiveModel is a yearly write-up. Year is not unique.
type RetrospectiveModel struct {
	Base
	ProfileOwned
	Year        int    `json:"year"        gorm:"index;not null"`
	Title       string `json:"title"       gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Views       int64  `json:"views"       gorm:"not null;default:0"`
}

func (RetrospectiveModel) TableName() string { return "retrospectives" }
