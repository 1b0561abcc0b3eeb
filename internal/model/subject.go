package model

import (
	"time"

	"gorm.io/gorm"
)

type Subject struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `json:"name" gorm:"not null"`
	OwnerID     uint           `json:"owner_id" gorm:"not null;index"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	PosterURL   *string        `json:"poster_url,omitempty"`
	Views       uint           `json:"views" gorm:"default:0"`
	Chapters    []Chapter      `json:"chapters,omitempty" gorm:"foreignKey:SubjectID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Chapter struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	SubjectID uint           `json:"subject_id" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"not null"`
	Order     int            `json:"order" gorm:"not null;default:0"`
	Lessons   []Lesson       `json:"lessons,omitempty" gorm:"foreignKey:ChapterID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Lesson struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	SubjectID   uint           `json:"subject_id" gorm:"not null;index"`
	ChapterID   uint           `json:"chapter_id" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	LabLink     *string        `json:"lab_link,omitempty"`
	Order       int            `json:"order" gorm:"not null;default:0"`
	Tasks       []Task         `json:"tasks,omitempty" gorm:"foreignKey:LessonID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
