package model

import (
	"time"

	"gorm.io/gorm"
)

// TaskType identifies the grading strategy for a task. The set is closed:
// scoring.NewRuleSet refuses to build if any of these lacks a rule.
type TaskType string

const (
	TaskVideo    TaskType = "video"
	TaskWritten  TaskType = "written"
	TaskTextGap  TaskType = "text_gap"
	TaskTest     TaskType = "test"
	TaskMatching TaskType = "matching"
	TaskTable    TaskType = "table"
)

// AllTaskTypes lists every task type; used for rule-table exhaustiveness checks.
func AllTaskTypes() []TaskType {
	return []TaskType{TaskVideo, TaskWritten, TaskTextGap, TaskTest, TaskMatching, TaskTable}
}

type QuestionType string

const (
	QuestionSimple   QuestionType = "simple"
	QuestionMultiple QuestionType = "multiple"
)

type Task struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	LessonID    uint           `json:"lesson_id" gorm:"not null;index"`
	TaskType    TaskType       `json:"task_type" gorm:"not null"`
	Rating      uint           `json:"rating" gorm:"not null;default:0"` // max achievable score
	Duration    uint           `json:"duration" gorm:"default:0"`        // minutes, informational
	Description string         `json:"description,omitempty" gorm:"type:text"`
	Order       int            `json:"order" gorm:"not null;default:0"`

	Videos       []Video          `json:"videos,omitempty" gorm:"foreignKey:TaskID"`
	Written      []Written        `json:"written,omitempty" gorm:"foreignKey:TaskID"`
	TextGaps     []TextGap        `json:"text_gaps,omitempty" gorm:"foreignKey:TaskID"`
	Questions    []Question       `json:"questions,omitempty" gorm:"foreignKey:TaskID"`
	Columns      []MatchingColumn `json:"columns,omitempty" gorm:"foreignKey:TaskID"`
	TableRows    []TableRow       `json:"table_rows,omitempty" gorm:"foreignKey:TaskID"`
	TableColumns []TableColumn    `json:"table_columns,omitempty" gorm:"foreignKey:TaskID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Video struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	TaskID uint   `json:"task_id" gorm:"not null;index"`
	URL    string `json:"url" gorm:"not null"`
	Order  int    `json:"order" gorm:"not null;default:0"`
}

type Written struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	TaskID      uint   `json:"task_id" gorm:"not null;index"`
	Instruction string `json:"instruction,omitempty" gorm:"type:text"`
}

type TextGap struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	TaskID        uint   `json:"task_id" gorm:"not null;index"`
	Prompt        string `json:"prompt" gorm:"type:text;not null"`
	CorrectAnswer string `json:"correct_answer" gorm:"not null"`
}

type Question struct {
	ID           uint         `gorm:"primarykey" json:"id"`
	TaskID       uint         `json:"task_id" gorm:"not null;index"`
	Text         string       `json:"text" gorm:"type:text;not null"`
	QuestionType QuestionType `json:"question_type" gorm:"not null;default:'simple'"`
	Order        int          `json:"order" gorm:"not null;default:0"`
	Options      []Option     `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
}

type Option struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	Text       string `json:"text,omitempty" gorm:"type:text"`
	IsCorrect  bool   `json:"is_correct" gorm:"not null;default:false"`
}

type MatchingColumn struct {
	ID     uint           `gorm:"primarykey" json:"id"`
	TaskID uint           `json:"task_id" gorm:"not null;index"`
	Label  string         `json:"label" gorm:"type:text;not null"`
	Order  int            `json:"order" gorm:"not null;default:0"`
	Items  []MatchingItem `json:"items,omitempty" gorm:"foreignKey:CorrectColumnID"`
}

// MatchingItem belongs to the column that is its correct answer.
type MatchingItem struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	CorrectColumnID uint   `json:"correct_column_id" gorm:"not null;index"`
	Text            string `json:"text,omitempty" gorm:"type:text"`
}

type TableRow struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	TaskID uint   `json:"task_id" gorm:"not null;index"`
	Label  string `json:"label" gorm:"type:text;not null"`
	Order  int    `json:"order" gorm:"not null;default:0"`
}

type TableColumn struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	TaskID uint   `json:"task_id" gorm:"not null;index"`
	Label  string `json:"label" gorm:"type:text;not null"`
	Order  int    `json:"order" gorm:"not null;default:0"`
}

// TableCell holds the expected checked state for one (row, column) pair.
type TableCell struct {
	ID       uint `gorm:"primarykey" json:"id"`
	RowID    uint `json:"row_id" gorm:"not null;index"`
	ColumnID uint `json:"column_id" gorm:"not null;index"`
	Correct  bool `json:"correct" gorm:"not null;default:false"`
}
