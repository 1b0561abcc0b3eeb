package dto

// Admin content-authoring DTOs. Tasks are created with their full content in
// one request; indexes in table cells refer to positions in the row/column
// slices of the same request.

type SubjectCreateDTO struct {
	Name        string `json:"name" binding:"required"`
	OwnerID     uint   `json:"owner_id" binding:"required"`
	Description string `json:"description,omitempty"`
}

type ChapterCreateDTO struct {
	Name  string `json:"name" binding:"required"`
	Order int    `json:"order"`
}

type LessonCreateDTO struct {
	ChapterID   uint   `json:"chapter_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

type OptionCreateDTO struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionCreateDTO struct {
	Text         string            `json:"text" binding:"required"`
	QuestionType string            `json:"question_type" binding:"required,oneof=simple multiple"`
	Order        int               `json:"order"`
	Options      []OptionCreateDTO `json:"options" binding:"required,min=2,dive"`
}

type VideoCreateDTO struct {
	URL   string `json:"url" binding:"required"`
	Order int    `json:"order"`
}

type WrittenCreateDTO struct {
	Instruction string `json:"instruction"`
}

type TextGapCreateDTO struct {
	Prompt        string `json:"prompt" binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required"`
}

type MatchingColumnCreateDTO struct {
	Label string   `json:"label" binding:"required"`
	Order int      `json:"order"`
	Items []string `json:"items"` // item texts whose correct answer is this column
}

type TableCellCreateDTO struct {
	RowIndex    int  `json:"row_index" binding:"min=0"`
	ColumnIndex int  `json:"column_index" binding:"min=0"`
	Correct     bool `json:"correct"`
}

type TaskCreateDTO struct {
	LessonID    uint   `json:"lesson_id" binding:"required"`
	TaskType    string `json:"task_type" binding:"required,oneof=video written text_gap test matching table"`
	Rating      uint   `json:"rating"`
	Duration    uint   `json:"duration"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`

	Videos       []VideoCreateDTO          `json:"videos,omitempty" binding:"omitempty,dive"`
	Written      []WrittenCreateDTO        `json:"written,omitempty" binding:"omitempty,dive"`
	TextGaps     []TextGapCreateDTO        `json:"text_gaps,omitempty" binding:"omitempty,dive"`
	Questions    []QuestionCreateDTO       `json:"questions,omitempty" binding:"omitempty,dive"`
	Columns      []MatchingColumnCreateDTO `json:"columns,omitempty" binding:"omitempty,dive"`
	TableRows    []string                  `json:"table_rows,omitempty"`
	TableColumns []string                  `json:"table_columns,omitempty"`
	TableCells   []TableCellCreateDTO      `json:"table_cells,omitempty" binding:"omitempty,dive"`
}

type TaskResponseDTO struct {
	ID       uint   `json:"id"`
	LessonID uint   `json:"lesson_id"`
	TaskType string `json:"task_type"`
	Rating   uint   `json:"rating"`
	Duration uint   `json:"duration"`
	Order    int    `json:"order"`
}

type MaterializeResultDTO struct {
	LessonID        uint `json:"lesson_id"`
	EnrolledCount   int  `json:"enrolled_count"`
	ChaptersCreated int  `json:"chapters_created"`
	LessonsCreated  int  `json:"lessons_created"`
}
