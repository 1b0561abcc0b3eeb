package scoring

import (
	"testing"

	"github.com/sabaqhub/sabaq/internal/model"
)

func uptr(v uint) *uint { return &v }

func TestNewRuleSet_CoversEveryTaskType(t *testing.T) {
	rs, err := NewRuleSet()
	if err != nil {
		t.Fatalf("NewRuleSet: %v", err)
	}
	for _, tt := range model.AllTaskTypes() {
		if rs[tt] == nil {
			t.Fatalf("task type %q has no rule", tt)
		}
	}
}

func TestRuleSet_UnknownTaskType(t *testing.T) {
	rs, _ := NewRuleSet()
	if _, err := rs.Score(model.TaskType("karaoke"), 5, Submission{}); err == nil {
		t.Fatalf("expected error for unknown task type")
	}
}

func TestScoreVideo_AllWatchedEarnsFullScore(t *testing.T) {
	res := ScoreVideo(7, Submission{Videos: []VideoView{
		{WatchedSeconds: 120, Completed: true},
		{WatchedSeconds: 90, Completed: true},
	}})
	if res.Score != 7 || !res.Completed || res.Outcome != OutcomeAllCorrect {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestScoreVideo_UnfinishedVideoKeepsTaskOpen(t *testing.T) {
	res := ScoreVideo(7, Submission{Videos: []VideoView{
		{Completed: true},
		{Completed: false},
	}})
	if res.Score != 0 || res.Completed {
		t.Fatalf("task should stay open with no score, got %+v", res)
	}
}

func TestScoreWritten_NeverCompletes(t *testing.T) {
	res := ScoreWritten(10, Submission{Written: []WrittenAnswer{
		{Text: "my essay"},
		{FileRef: "uploads/essay.pdf"},
		{Text: "   "},
	}})
	if res.Completed {
		t.Fatalf("written submission must not complete the task")
	}
	if res.Score != 0 {
		t.Fatalf("written submission must not award points, got %v", res.Score)
	}
	want := []bool{true, true, false}
	for i, w := range want {
		if res.Submitted[i] != w {
			t.Fatalf("submitted[%d] = %v, want %v", i, res.Submitted[i], w)
		}
	}
	if res.Outcome != OutcomeWrittenSubmitted {
		t.Fatalf("outcome = %q", res.Outcome)
	}
}

func TestScoreTextGap_AllCorrectIsCaseInsensitive(t *testing.T) {
	res := ScoreTextGap(10, Submission{Gaps: []GapAnswer{
		{Expected: "paris", Given: "Paris"},
		{Expected: "London", Given: " london "},
	}})
	if res.Score != 10 || res.Outcome != OutcomeAllCorrect {
		t.Fatalf("unexpected result: %+v", res)
	}
	for i, ok := range res.Correct {
		if !ok {
			t.Fatalf("gap %d should be correct", i)
		}
	}
}

// Spec scenario: 4 blanks, max 10, one wrong -> floor(10/2) = 5.
func TestScoreTextGap_OneWrongEarnsHalf(t *testing.T) {
	res := ScoreTextGap(10, Submission{Gaps: []GapAnswer{
		{Expected: "paris", Given: "Paris"},
		{Expected: "london", Given: "London"},
		{Expected: "berlin", Given: "berlin"},
		{Expected: "London", Given: "Berlin"},
	}})
	if res.Score != 5 {
		t.Fatalf("score = %v, want 5", res.Score)
	}
	if res.Outcome != OutcomePartial || !res.Completed {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestScoreTextGap_OneWrongOnOnePointTask(t *testing.T) {
	res := ScoreTextGap(1, Submission{Gaps: []GapAnswer{
		{Expected: "a", Given: "a"},
		{Expected: "b", Given: "b"},
		{Expected: "c", Given: "x"},
	}})
	if res.Score != 0 {
		t.Fatalf("a 1-point task has no half, got %v", res.Score)
	}
}

func TestScoreTextGap_AllWrongNeverScores(t *testing.T) {
	for _, gaps := range [][]GapAnswer{
		{{Expected: "a", Given: "x"}},
		{{Expected: "a", Given: "x"}, {Expected: "b", Given: "y"}},
		{{Expected: "a", Given: "x"}, {Expected: "b", Given: "y"}, {Expected: "c", Given: "z"}},
	} {
		res := ScoreTextGap(10, Submission{Gaps: gaps})
		if res.Score != 0 || res.Outcome != OutcomeAllWrong {
			t.Fatalf("%d all-wrong blanks: score = %v outcome = %q, want 0/all_wrong", len(gaps), res.Score, res.Outcome)
		}
	}
}

func TestScoreTextGap_HalfOrMoreWrongScoresZero(t *testing.T) {
	res := ScoreTextGap(10, Submission{Gaps: []GapAnswer{
		{Expected: "a", Given: "a"},
		{Expected: "b", Given: "b"},
		{Expected: "c", Given: "x"},
		{Expected: "d", Given: "y"},
	}})
	if res.Score != 0 {
		t.Fatalf("score = %v, want 0 when half the blanks are wrong", res.Score)
	}
	if !res.Completed {
		t.Fatalf("text gap task still completes at zero")
	}
}

func TestScoreTest_NoSelectionsIsNoAnswer(t *testing.T) {
	res := ScoreTest(10, Submission{Questions: []TestQuestion{
		{Type: model.QuestionSimple, CorrectIDs: map[uint]struct{}{1: {}}},
		{Type: model.QuestionMultiple, CorrectIDs: map[uint]struct{}{3: {}, 4: {}}},
	}})
	if res.Score != 0 || res.Outcome != OutcomeNoAnswer {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Completed {
		t.Fatalf("an unanswered test must stay open for resubmission")
	}
}

func TestScoreTest_SimpleQuestionNeedsExactlyOneSelection(t *testing.T) {
	q := TestQuestion{Type: model.QuestionSimple, CorrectIDs: map[uint]struct{}{1: {}}}

	q.SelectedIDs = []uint{1}
	if got := questionCredit(q); got != 1 {
		t.Fatalf("single correct pick: credit = %v, want 1", got)
	}
	q.SelectedIDs = []uint{1, 2}
	if got := questionCredit(q); got != 0 {
		t.Fatalf("two picks on a simple question: credit = %v, want 0", got)
	}
	q.SelectedIDs = []uint{2}
	if got := questionCredit(q); got != 0 {
		t.Fatalf("wrong pick: credit = %v, want 0", got)
	}
}

func TestScoreTest_MultipleQuestionPartialCredit(t *testing.T) {
	q := TestQuestion{
		Type:        model.QuestionMultiple,
		CorrectIDs:  map[uint]struct{}{1: {}, 2: {}, 3: {}, 4: {}},
		SelectedIDs: []uint{1, 2, 3, 9},
	}
	// (3 correct - 1 wrong) / 4 correct ids = 0.5
	if got := questionCredit(q); got != 0.5 {
		t.Fatalf("credit = %v, want 0.5", got)
	}

	q.SelectedIDs = []uint{9, 10, 11}
	if got := questionCredit(q); got != 0 {
		t.Fatalf("wrong-only picks must floor at zero, got %v", got)
	}
}

func TestScoreTest_ScoreIsRoundedFractionOfMax(t *testing.T) {
	res := ScoreTest(10, Submission{Questions: []TestQuestion{
		{Type: model.QuestionSimple, CorrectIDs: map[uint]struct{}{1: {}}, SelectedIDs: []uint{1}},
		{Type: model.QuestionSimple, CorrectIDs: map[uint]struct{}{2: {}}, SelectedIDs: []uint{3}},
		{Type: model.QuestionSimple, CorrectIDs: map[uint]struct{}{4: {}}, SelectedIDs: []uint{4}},
	}})
	// 2/3 of 10 rounds to 7
	if res.Score != 7 {
		t.Fatalf("score = %v, want 7", res.Score)
	}
	if res.Outcome != OutcomePartial || !res.Completed {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestScoreTest_AllCorrectAndAllWrongOutcomes(t *testing.T) {
	allCorrect := ScoreTest(4, Submission{Questions: []TestQuestion{
		{Type: model.QuestionSimple, CorrectIDs: map[uint]struct{}{1: {}}, SelectedIDs: []uint{1}},
	}})
	if allCorrect.Score != 4 || allCorrect.Outcome != OutcomeAllCorrect {
		t.Fatalf("unexpected result: %+v", allCorrect)
	}

	allWrong := ScoreTest(4, Submission{Questions: []TestQuestion{
		{Type: model.QuestionSimple, CorrectIDs: map[uint]struct{}{1: {}}, SelectedIDs: []uint{2}},
	}})
	if allWrong.Score != 0 || allWrong.Outcome != OutcomeAllWrong || !allWrong.Completed {
		t.Fatalf("unexpected result: %+v", allWrong)
	}
}

func TestScoreMatching_AllCorrectEarnsFullScore(t *testing.T) {
	res := ScoreMatching(4, Submission{Matches: []MatchingPick{
		{CorrectColumnID: 1, SelectedColumnID: uptr(1)},
		{CorrectColumnID: 2, SelectedColumnID: uptr(2)},
	}})
	if res.Score != 4 || res.Outcome != OutcomeAllCorrect {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestScoreMatching_AllWrongScoresZero(t *testing.T) {
	res := ScoreMatching(4, Submission{Matches: []MatchingPick{
		{CorrectColumnID: 1, SelectedColumnID: uptr(2)},
		{CorrectColumnID: 2, SelectedColumnID: uptr(1)},
		{CorrectColumnID: 3, SelectedColumnID: nil},
	}})
	if res.Score != 0 || res.Outcome != OutcomeAllWrong {
		t.Fatalf("unexpected result: %+v", res)
	}
}

// Spec scenario: max score 1, one wrong -> the half-score guard yields 0.
func TestScoreMatching_OnePointTaskHasNoHalf(t *testing.T) {
	res := ScoreMatching(1, Submission{Matches: []MatchingPick{
		{CorrectColumnID: 1, SelectedColumnID: uptr(1)},
		{CorrectColumnID: 2, SelectedColumnID: uptr(2)},
		{CorrectColumnID: 3, SelectedColumnID: uptr(4)},
		{CorrectColumnID: 4, SelectedColumnID: uptr(3)},
		{CorrectColumnID: 5, SelectedColumnID: uptr(5)},
	}})
	if res.Score != 0 {
		t.Fatalf("score = %v, want 0", res.Score)
	}
}

func TestScoreMatching_OneWrongEarnsFractionalHalf(t *testing.T) {
	res := ScoreMatching(5, Submission{Matches: []MatchingPick{
		{CorrectColumnID: 1, SelectedColumnID: uptr(1)},
		{CorrectColumnID: 2, SelectedColumnID: uptr(2)},
		{CorrectColumnID: 3, SelectedColumnID: uptr(9)},
	}})
	if res.Score != 2.5 {
		t.Fatalf("score = %v, want 2.5", res.Score)
	}
	if !res.Completed {
		t.Fatalf("matching task completes on submit")
	}
}

func TestScoreTable_AllCorrectRecoversMaxExactly(t *testing.T) {
	res := ScoreTable(9, Submission{Cells: []TableCellMark{
		{Expected: true, Checked: true},
		{Expected: false, Checked: false},
		{Expected: true, Checked: true},
	}})
	if res.Score != 9 || res.Outcome != OutcomeAllCorrect {
		t.Fatalf("unexpected result: %+v", res)
	}
}

// Spec scenario: 6 cells, max 9, 4 correct (>= 50%) -> floor(9/2) = 4.
func TestScoreTable_AtLeastHalfCorrectEarnsFlooredHalf(t *testing.T) {
	res := ScoreTable(9, Submission{Cells: []TableCellMark{
		{Expected: true, Checked: true},
		{Expected: true, Checked: true},
		{Expected: false, Checked: false},
		{Expected: false, Checked: false},
		{Expected: true, Checked: false},
		{Expected: false, Checked: true},
	}})
	if res.Score != 4 {
		t.Fatalf("score = %v, want 4", res.Score)
	}
}

func TestScoreTable_BelowHalfScoresZero(t *testing.T) {
	res := ScoreTable(9, Submission{Cells: []TableCellMark{
		{Expected: true, Checked: false},
		{Expected: false, Checked: true},
		{Expected: true, Checked: true},
		{Expected: true, Checked: false},
		{Expected: false, Checked: true},
	}})
	if res.Score != 0 {
		t.Fatalf("score = %v, want 0", res.Score)
	}
	if !res.Completed {
		t.Fatalf("table task completes even at zero")
	}
}
