package dto

import "time"

type UserTaskDTO struct {
	ID          uint      `json:"id"`
	TaskID      uint      `json:"task_id"`
	TaskType    string    `json:"task_type"`
	Rating      float64   `json:"rating"`
	MaxRating   uint      `json:"max_rating"`
	Duration    uint      `json:"duration"`
	Order       int       `json:"order"`
	IsCompleted bool      `json:"is_completed"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type UserLessonDTO struct {
	ID          uint       `json:"id"`
	LessonID    uint       `json:"lesson_id"`
	Title       string     `json:"title"`
	Rating      float64    `json:"rating"`
	Percentage  float64    `json:"percentage"`
	Status      string     `json:"status"`
	IsCompleted bool       `json:"is_completed"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type UserChapterDTO struct {
	ID          uint    `json:"id"`
	ChapterID   uint    `json:"chapter_id"`
	Name        string  `json:"name"`
	Rating      uint    `json:"rating"`
	Percentage  float64 `json:"percentage"`
	IsCompleted bool    `json:"is_completed"`
}

type UserSubjectDTO struct {
	ID          uint       `json:"id"`
	SubjectID   uint       `json:"subject_id"`
	Name        string     `json:"name"`
	Rating      uint       `json:"rating"`
	Percentage  float64    `json:"percentage"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// RollupResultDTO carries the post-rollup state of every affected level.
type RollupResultDTO struct {
	Lesson     UserLessonDTO  `json:"lesson"`
	Chapter    UserChapterDTO `json:"chapter"`
	Subject    UserSubjectDTO `json:"subject"`
	MessageKey string         `json:"message_key"`
}

// StartLessonResultDTO reports the materialized attempt rows after a start.
type StartLessonResultDTO struct {
	Lesson          UserLessonDTO `json:"lesson"`
	FirstUserTaskID *uint         `json:"first_user_task_id,omitempty"`
	TaskCount       int           `json:"task_count"`
	MessageKey      string        `json:"message_key"`
}

type FeedbackDTO struct {
	UserLessonID uint   `json:"user_lesson_id"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment,omitempty"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
