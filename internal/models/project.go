package models

// ProjectModel is a portfolio entry. Featured only affects display order.
type ProjectModel struct {
	Base
	Name        string    `json:"name"        gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Thumbnail   string    `json:"thumbnail"`
	NotionLink  string    `json:"notion_link"`
	GithubLink  string    `json:"github_link"`
	LiveLink    string    `json:"live_link"`
	Featured    bool      `json:"featured"    gorm:"not null;default:false;index"`
	TagID       *string   `json:"tag_id"      gorm:"type:char(36);index"`
	Tag         *TagModel `json:"tag,omitempty" gorm:"foreignKey:TagID;constraint:OnDelete:SET NULL"`
}

func (ProjectModel) TableName() string { return "projects" }

// TagModel groups projects.
type TagModel struct {
	Base
	Name string `json:"name" gorm:"type:varchar(191);uniqueIndex;not null"`
}

func (TagModel) TableName() string { return "tags" }
