package dto

import (
	"fmt"
	"strconv"
)

// SubmissionPayload is the parsed form payload the request layer hands to the
// grading engine, keyed by field name: watched_<id>, answer_<id>, file_<id>,
// question_<id> (multi-value), column_<id>, cell_<row>_<col>.
type SubmissionPayload map[string][]string

func (p SubmissionPayload) Get(key string) string {
	if vs := p[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func (p SubmissionPayload) List(key string) []string {
	return p[key]
}

func (p SubmissionPayload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// UintList parses the values under key as unsigned ids, dropping anything
// that does not parse. Unknown-id filtering happens later, against the
// question's own option set.
func (p SubmissionPayload) UintList(key string) []uint {
	var out []uint
	for _, v := range p[key] {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			continue
		}
		out = append(out, uint(n))
	}
	return out
}

func (p SubmissionPayload) Uint(key string) (uint, bool) {
	n, err := strconv.ParseUint(p.Get(key), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// Form field name builders, matching what the templates render.
func WatchedField(videoID uint) string        { return fmt.Sprintf("watched_%d", videoID) }
func AnswerField(id uint) string              { return fmt.Sprintf("answer_%d", id) }
func FileField(writtenID uint) string         { return fmt.Sprintf("file_%d", writtenID) }
func QuestionField(questionID uint) string    { return fmt.Sprintf("question_%d", questionID) }
func ColumnField(itemID uint) string          { return fmt.Sprintf("column_%d", itemID) }
func CellField(rowID, columnID uint) string   { return fmt.Sprintf("cell_%d_%d", rowID, columnID) }

// GradingResultDTO is returned to the request layer after a task submission.
type GradingResultDTO struct {
	UserTaskID  uint    `json:"user_task_id"`
	TaskID      uint    `json:"task_id"`
	TaskType    string  `json:"task_type"`
	Score       float64 `json:"score"`
	MaxScore    uint    `json:"max_score"`
	Outcome     string  `json:"outcome"`
	MessageKey  string  `json:"message_key"`
	IsCompleted bool    `json:"is_completed"`
}
