package model

import (
	"time"

	"gorm.io/gorm"
)

type LessonStatus string

const (
	LessonNotStarted LessonStatus = "not-started"
	LessonInProgress LessonStatus = "in-progress"
	LessonFinished   LessonStatus = "finished"
)

type UserSubject struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      uint           `json:"user_id" gorm:"not null;index:idx_user_subject,unique"`
	SubjectID   uint           `json:"subject_id" gorm:"not null;index:idx_user_subject,unique"`
	Subject     Subject        `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Rating      uint           `json:"rating" gorm:"not null;default:0"`
	Percentage  float64        `json:"percentage" gorm:"type:decimal(5,2);not null;default:0"`
	IsCompleted bool           `json:"is_completed" gorm:"not null;default:false"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	UserChapters []UserChapter `json:"user_chapters,omitempty" gorm:"foreignKey:UserSubjectID"`
	UserLessons  []UserLesson  `json:"user_lessons,omitempty" gorm:"foreignKey:UserSubjectID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type UserChapter struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	UserID        uint    `json:"user_id" gorm:"not null;index"`
	UserSubjectID uint    `json:"user_subject_id" gorm:"not null;index:idx_user_chapter,unique"`
	ChapterID     uint    `json:"chapter_id" gorm:"not null;index:idx_user_chapter,unique"`
	Chapter       Chapter `json:"chapter,omitempty" gorm:"foreignKey:ChapterID"`
	Rating        uint    `json:"rating" gorm:"not null;default:0"`
	Percentage    float64 `json:"percentage" gorm:"type:decimal(5,2);not null;default:0"`
	IsCompleted   bool    `json:"is_completed" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type UserLesson struct {
	ID            uint         `gorm:"primarykey" json:"id"`
	UserID        uint         `json:"user_id" gorm:"not null;index"`
	UserSubjectID uint         `json:"user_subject_id" gorm:"not null;index:idx_user_lesson,unique"`
	LessonID      uint         `json:"lesson_id" gorm:"not null;index:idx_user_lesson,unique"`
	Lesson        Lesson       `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`
	Rating        float64      `json:"rating" gorm:"not null;default:0"`
	Percentage    float64      `json:"percentage" gorm:"type:decimal(5,2);not null;default:0"`
	Status        LessonStatus `json:"status" gorm:"not null;default:'not-started'"`
	StartedAt     *time.Time   `json:"started_at,omitempty"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
	IsCompleted   bool         `json:"is_completed" gorm:"not null;default:false"`
	UserTasks     []UserTask   `json:"user_tasks,omitempty" gorm:"foreignKey:UserLessonID"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TimeSpent reports how long the student has been in the lesson; zero until started.
func (l *UserLesson) TimeSpent(now time.Time) time.Duration {
	if l.StartedAt == nil {
		return 0
	}
	end := now
	if l.CompletedAt != nil {
		end = *l.CompletedAt
	}
	return end.Sub(*l.StartedAt)
}

type Feedback struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserLessonID uint      `json:"user_lesson_id" gorm:"not null;uniqueIndex"`
	Rating       int       `json:"rating" gorm:"not null"` // 1..5
	Comment      string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
