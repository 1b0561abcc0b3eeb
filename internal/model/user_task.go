package model

import "time"

// UserTask is a student's attempt record for one task. Rating never exceeds
// the task's max score and IsCompleted is monotonic: the engine never resets it.
type UserTask struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserLessonID uint      `json:"user_lesson_id" gorm:"not null;index:idx_user_task,unique"`
	TaskID       uint      `json:"task_id" gorm:"not null;index:idx_user_task,unique"`
	Task         Task      `json:"task,omitempty" gorm:"foreignKey:TaskID"`
	Rating       float64   `json:"rating" gorm:"not null;default:0"`
	IsCompleted  bool      `json:"is_completed" gorm:"not null;default:false"`
	SubmittedAt  time.Time `json:"submitted_at" gorm:"autoCreateTime"`

	UserVideos      []UserVideo          `json:"user_videos,omitempty" gorm:"foreignKey:UserTaskID"`
	UserWritten     []UserWritten        `json:"user_written,omitempty" gorm:"foreignKey:UserTaskID"`
	UserTextGaps    []UserTextGap        `json:"user_text_gaps,omitempty" gorm:"foreignKey:UserTaskID"`
	UserAnswers     []UserAnswer         `json:"user_answers,omitempty" gorm:"foreignKey:UserTaskID"`
	MatchingAnswers []UserMatchingAnswer `json:"matching_answers,omitempty" gorm:"foreignKey:UserTaskID"`
	TableAnswers    []UserTableAnswer    `json:"table_answers,omitempty" gorm:"foreignKey:UserTaskID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserVideo struct {
	ID             uint  `gorm:"primarykey" json:"id"`
	UserTaskID     uint  `json:"user_task_id" gorm:"not null;index:idx_user_video,unique"`
	VideoID        uint  `json:"video_id" gorm:"not null;index:idx_user_video,unique"`
	Video          Video `json:"video,omitempty" gorm:"foreignKey:VideoID"`
	WatchedSeconds uint  `json:"watched_seconds" gorm:"not null;default:0"`
	IsCompleted    bool  `json:"is_completed" gorm:"not null;default:false"`
}

type UserWritten struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	UserTaskID  uint    `json:"user_task_id" gorm:"not null;index:idx_user_written,unique"`
	WrittenID   uint    `json:"written_id" gorm:"not null;index:idx_user_written,unique"`
	Written     Written `json:"written,omitempty" gorm:"foreignKey:WrittenID"`
	Answer      string  `json:"answer,omitempty" gorm:"type:text"`
	FileRef     string  `json:"file_ref,omitempty"` // caller-supplied reference, storage is out of scope
	IsSubmitted bool    `json:"is_submitted" gorm:"not null;default:false"`
}

type UserTextGap struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	UserTaskID uint    `json:"user_task_id" gorm:"not null;index:idx_user_text_gap,unique"`
	TextGapID  uint    `json:"text_gap_id" gorm:"not null;index:idx_user_text_gap,unique"`
	TextGap    TextGap `json:"text_gap,omitempty" gorm:"foreignKey:TextGapID"`
	Answer     string  `json:"answer,omitempty"`
	IsCorrect  bool    `json:"is_correct" gorm:"not null;default:false"`
}

// UserAnswer keeps the selected options for one test question. Selections are
// replaced wholesale on every submit.
type UserAnswer struct {
	ID         uint     `gorm:"primarykey" json:"id"`
	UserTaskID uint     `json:"user_task_id" gorm:"not null;index:idx_user_answer,unique"`
	QuestionID uint     `json:"question_id" gorm:"not null;index:idx_user_answer,unique"`
	Question   Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Options    []Option `json:"options,omitempty" gorm:"many2many:user_answer_options"`
}

type UserMatchingAnswer struct {
	ID               uint         `gorm:"primarykey" json:"id"`
	UserTaskID       uint         `json:"user_task_id" gorm:"not null;index:idx_user_matching,unique"`
	ItemID           uint         `json:"item_id" gorm:"not null;index:idx_user_matching,unique"`
	Item             MatchingItem `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	SelectedColumnID *uint        `json:"selected_column_id,omitempty"`
	IsCorrect        bool         `json:"is_correct" gorm:"not null;default:false"`
}

type UserTableAnswer struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	UserTaskID  uint        `json:"user_task_id" gorm:"not null;index:idx_user_table,unique"`
	RowID       uint        `json:"row_id" gorm:"not null;index:idx_user_table,unique"`
	ColumnID    uint        `json:"column_id" gorm:"not null;index:idx_user_table,unique"`
	Row         TableRow    `json:"row,omitempty" gorm:"foreignKey:RowID"`
	Column      TableColumn `json:"column,omitempty" gorm:"foreignKey:ColumnID"`
	Checked     bool        `json:"checked" gorm:"not null;default:false"`
	IsSubmitted bool        `json:"is_submitted" gorm:"not null;default:false"`
}
