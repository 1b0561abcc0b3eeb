package dto

import "time"

type SubjectSummaryDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PosterURL   *string   `json:"poster_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubjectCardDTO is one entry of the student dashboard: the subject plus the
// student's enrollment state, when enrolled.
type SubjectCardDTO struct {
	Subject               SubjectSummaryDTO `json:"subject"`
	UserSubject           *UserSubjectDTO   `json:"user_subject,omitempty"`
	FirstChapterID        *uint             `json:"first_chapter_id,omitempty"`
	FirstLessonID         *uint             `json:"first_lesson_id,omitempty"`
	CompletedChapterCount int               `json:"completed_chapter_count"`
	CompletedLessonCount  int               `json:"completed_lesson_count"`
}

type DashboardStatisticsDTO struct {
	InProcess         int     `json:"in_process"`
	Completed         int     `json:"completed"`
	AveragePercentage float64 `json:"average_percentage"`
}

type StudentDashboardDTO struct {
	Statistics DashboardStatisticsDTO `json:"statistics"`
	Subjects   []SubjectCardDTO       `json:"subjects"`
}

type LessonSummaryDTO struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Order    int    `json:"order"`
	Duration uint   `json:"duration"` // sum of task durations, minutes
}

type ChapterDetailDTO struct {
	ID      uint               `json:"id"`
	Name    string             `json:"name"`
	Order   int                `json:"order"`
	Lessons []LessonSummaryDTO `json:"lessons"`
}

type SubjectDetailDTO struct {
	Subject        SubjectSummaryDTO  `json:"subject"`
	UserSubject    *UserSubjectDTO    `json:"user_subject,omitempty"`
	FirstChapterID *uint              `json:"first_chapter_id,omitempty"`
	FirstLessonID  *uint              `json:"first_lesson_id,omitempty"`
	Chapters       []ChapterDetailDTO `json:"chapters"`
}

// LessonViewDTO backs the lesson page: the student's lesson state, its tasks
// (video tasks are rendered inline, not listed), and navigation links.
type LessonViewDTO struct {
	UserSubject    UserSubjectDTO  `json:"user_subject"`
	UserChapter    UserChapterDTO  `json:"user_chapter"`
	UserLesson     UserLessonDTO   `json:"user_lesson"`
	Tasks          []UserTaskDTO   `json:"tasks"`
	FirstTaskID    *uint           `json:"first_task_id,omitempty"`
	PrevLessonID   *uint           `json:"prev_lesson_id,omitempty"`
	NextLessonID   *uint           `json:"next_lesson_id,omitempty"`
	TotalDuration  uint            `json:"total_duration"`
	ChapterLessons []UserLessonDTO `json:"chapter_lessons"`
}

// Task view: per-type related data for rendering the submission form.

type UserVideoDTO struct {
	ID             uint   `json:"id"`
	VideoID        uint   `json:"video_id"`
	URL            string `json:"url"`
	WatchedSeconds uint   `json:"watched_seconds"`
	IsCompleted    bool   `json:"is_completed"`
}

type UserWrittenDTO struct {
	ID          uint   `json:"id"`
	WrittenID   uint   `json:"written_id"`
	Instruction string `json:"instruction,omitempty"`
	Answer      string `json:"answer,omitempty"`
	FileRef     string `json:"file_ref,omitempty"`
	IsSubmitted bool   `json:"is_submitted"`
}

type UserTextGapDTO struct {
	ID        uint   `json:"id"`
	TextGapID uint   `json:"text_gap_id"`
	Prompt    string `json:"prompt"`
	Answer    string `json:"answer,omitempty"`
	IsCorrect bool   `json:"is_correct"`
}

type OptionDTO struct {
	ID   uint   `json:"id"`
	Text string `json:"text,omitempty"`
}

type UserAnswerDTO struct {
	ID           uint        `json:"id"`
	QuestionID   uint        `json:"question_id"`
	Text         string      `json:"text"`
	QuestionType string      `json:"question_type"`
	Options      []OptionDTO `json:"options"`
	SelectedIDs  []uint      `json:"selected_ids"`
}

type MatchingColumnDTO struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

type UserMatchingDTO struct {
	ID               uint   `json:"id"`
	ItemID           uint   `json:"item_id"`
	Text             string `json:"text,omitempty"`
	SelectedColumnID *uint  `json:"selected_column_id,omitempty"`
	IsCorrect        bool   `json:"is_correct"`
}

type TableHeaderDTO struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

type TableCellStateDTO struct {
	RowID    uint `json:"row_id"`
	ColumnID uint `json:"column_id"`
	Checked  bool `json:"checked"`
	Correct  bool `json:"correct"`
}

type TaskViewDTO struct {
	UserTask          UserTaskDTO         `json:"user_task"`
	TaskType          string              `json:"task_type"`
	Description       string              `json:"description,omitempty"`
	AllTasksCompleted bool                `json:"all_tasks_completed"`
	PrevUserTaskID    *uint               `json:"prev_user_task_id,omitempty"`
	NextUserTaskID    *uint               `json:"next_user_task_id,omitempty"`
	Videos            []UserVideoDTO      `json:"videos,omitempty"`
	Written           []UserWrittenDTO    `json:"written,omitempty"`
	TextGaps          []UserTextGapDTO    `json:"text_gaps,omitempty"`
	Answers           []UserAnswerDTO     `json:"answers,omitempty"`
	MatchingColumns   []MatchingColumnDTO `json:"matching_columns,omitempty"`
	Matchings         []UserMatchingDTO   `json:"matchings,omitempty"`
	TableRows         []TableHeaderDTO    `json:"table_rows,omitempty"`
	TableColumns      []TableHeaderDTO    `json:"table_columns,omitempty"`
	TableCells        []TableCellStateDTO `json:"table_cells,omitempty"`
}
