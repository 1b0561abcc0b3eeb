// Package scoring holds the pure grading rules, one per task type. Rules map
// (max score, correct-answer data, submitted answers) to an awarded score and
// a user-facing outcome; they never touch the database.
package scoring

import (
	"fmt"

	"github.com/sabaqhub/sabaq/internal/model"
)

// Outcome classifies a grading result for caller-side messaging. It does not
// affect the persisted score.
type Outcome string

const (
	OutcomeAllCorrect       Outcome = "all_correct"
	OutcomePartial          Outcome = "partial"
	OutcomeAllWrong         Outcome = "all_wrong"
	OutcomeNoAnswer         Outcome = "no_answer"
	OutcomeWrittenSubmitted Outcome = "written_submitted"
)

// VideoView is one sub-video of a video task as reported by the student.
type VideoView struct {
	WatchedSeconds uint
	Completed      bool
}

// WrittenAnswer is one written sub-answer. FileRef is a caller-supplied
// storage reference; file handling itself is out of scope.
type WrittenAnswer struct {
	Text    string
	FileRef string
}

// GapAnswer pairs a blank's expected string with what the student typed.
type GapAnswer struct {
	Expected string
	Given    string
}

// TestQuestion carries one question's correct option set and the student's
// (already id-filtered) selection.
type TestQuestion struct {
	Type        model.QuestionType
	CorrectIDs  map[uint]struct{}
	SelectedIDs []uint
}

// MatchingPick pairs an item's correct column with the student's selection;
// nil means the item was left unanswered.
type MatchingPick struct {
	CorrectColumnID  uint
	SelectedColumnID *uint
}

// TableCellMark pairs one cell's expected checked state with the submitted one.
// A cell absent from the form payload must arrive here as Checked=false.
type TableCellMark struct {
	Expected bool
	Checked  bool
}

// Submission is the task-type union a rule receives; only the slice matching
// the task's type is populated.
type Submission struct {
	Videos    []VideoView
	Written   []WrittenAnswer
	Gaps      []GapAnswer
	Questions []TestQuestion
	Matches   []MatchingPick
	Cells     []TableCellMark
}

// Result is what a rule computes. Completed reports whether the task's
// completion flag should be set: video tasks stay open until every sub-video
// is done, written tasks never complete through this path, and an unanswered
// test stays open for resubmission.
type Result struct {
	Score     float64
	Outcome   Outcome
	Completed bool
	// Correct holds per-sub-unit correctness for rules that grade per unit
	// (text_gap, matching), in submission order.
	Correct []bool
	// Submitted marks which written sub-answers count as handed in.
	Submitted []bool
}

// Rule is one task type's scoring strategy.
type Rule func(maxScore uint, sub Submission) Result

// RuleSet maps every task type to its rule.
type RuleSet map[model.TaskType]Rule

// NewRuleSet builds the rule table and fails if any task type is missing a
// rule, so a new type cannot ship without a scoring strategy.
func NewRuleSet() (RuleSet, error) {
	rs := RuleSet{
		model.TaskVideo:    ScoreVideo,
		model.TaskWritten:  ScoreWritten,
		model.TaskTextGap:  ScoreTextGap,
		model.TaskTest:     ScoreTest,
		model.TaskMatching: ScoreMatching,
		model.TaskTable:    ScoreTable,
	}
	for _, t := range model.AllTaskTypes() {
		if rs[t] == nil {
			return nil, fmt.Errorf("no scoring rule registered for task type %q", t)
		}
	}
	return rs, nil
}

// Score dispatches to the rule for the given task type.
func (rs RuleSet) Score(taskType model.TaskType, maxScore uint, sub Submission) (Result, error) {
	rule, ok := rs[taskType]
	if !ok {
		return Result{}, fmt.Errorf("unknown task type %q", taskType)
	}
	return rule(maxScore, sub), nil
}
