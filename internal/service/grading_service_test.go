package service

import (
	"testing"

	"github.com/sabaqhub/sabaq/internal/dto"
	"github.com/sabaqhub/sabaq/internal/model"
)

type stubTaskRepo struct {
	cells []model.TableCell
}

func (s *stubTaskRepo) Create(*model.Task) error                      { return nil }
func (s *stubTaskRepo) CreateTableCells([]model.TableCell) error      { return nil }
func (s *stubTaskRepo) FindByIDWithContent(uint) (*model.Task, error) { return nil, nil }
func (s *stubTaskRepo) FindTableCells(uint) ([]model.TableCell, error) {
	return s.cells, nil
}

func TestBuildTestDropsForeignOptionIDs(t *testing.T) {
	ut := &model.UserTask{
		Task: model.Task{TaskType: model.TaskTest},
		UserAnswers: []model.UserAnswer{
			{
				QuestionID: 10,
				Question: model.Question{
					ID:           10,
					QuestionType: model.QuestionMultiple,
					Options: []model.Option{
						{ID: 1, IsCorrect: true},
						{ID: 2},
					},
				},
			},
		},
	}
	payload := dto.SubmissionPayload{
		dto.QuestionField(10): {"2", "99", "abc"},
	}
	s := &gradingService{}
	sub, _, err := s.buildSubmission(ut, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sub.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(sub.Questions))
	}
	got := sub.Questions[0].SelectedIDs
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected only option 2 to survive filtering, got %v", got)
	}
	if _, ok := sub.Questions[0].CorrectIDs[1]; !ok {
		t.Fatal("correct option set must contain option 1")
	}
}

func TestBuildMatchingIgnoresUnknownColumn(t *testing.T) {
	ut := &model.UserTask{
		Task: model.Task{
			TaskType: model.TaskMatching,
			Columns:  []model.MatchingColumn{{ID: 1}, {ID: 2}},
		},
		MatchingAnswers: []model.UserMatchingAnswer{
			{ItemID: 5, Item: model.MatchingItem{ID: 5, CorrectColumnID: 1}},
		},
	}
	payload := dto.SubmissionPayload{
		dto.ColumnField(5): {"9"}, // not a column of this task
	}
	s := &gradingService{}
	sub, _, err := s.buildSubmission(ut, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Matches[0].SelectedColumnID != nil {
		t.Fatalf("unknown column id must be dropped, got %v", *sub.Matches[0].SelectedColumnID)
	}
}

func TestBuildMatchingAcceptsKnownColumn(t *testing.T) {
	ut := &model.UserTask{
		Task: model.Task{
			TaskType: model.TaskMatching,
			Columns:  []model.MatchingColumn{{ID: 1}, {ID: 2}},
		},
		MatchingAnswers: []model.UserMatchingAnswer{
			{ItemID: 5, Item: model.MatchingItem{ID: 5, CorrectColumnID: 2}},
		},
	}
	payload := dto.SubmissionPayload{
		dto.ColumnField(5): {"2"},
	}
	s := &gradingService{}
	sub, _, err := s.buildSubmission(ut, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Matches[0].SelectedColumnID == nil || *sub.Matches[0].SelectedColumnID != 2 {
		t.Fatalf("expected selected column 2, got %v", sub.Matches[0].SelectedColumnID)
	}
}

func TestBuildVideoKeepsUnreportedState(t *testing.T) {
	ut := &model.UserTask{
		Task: model.Task{TaskType: model.TaskVideo},
		UserVideos: []model.UserVideo{
			{ID: 1, VideoID: 100, WatchedSeconds: 90, IsCompleted: true},
			{ID: 2, VideoID: 200},
		},
	}
	payload := dto.SubmissionPayload{
		dto.WatchedField(200): {"45"},
	}
	s := &gradingService{}
	sub, _, err := s.buildSubmission(ut, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sub.Videos[0].Completed || sub.Videos[0].WatchedSeconds != 90 {
		t.Fatalf("previously watched video must keep its state, got %+v", sub.Videos[0])
	}
	if !sub.Videos[1].Completed || sub.Videos[1].WatchedSeconds != 45 {
		t.Fatalf("reported video must be marked watched, got %+v", sub.Videos[1])
	}
}

func TestBuildTextGapTrimsAnswers(t *testing.T) {
	ut := &model.UserTask{
		Task: model.Task{TaskType: model.TaskTextGap},
		UserTextGaps: []model.UserTextGap{
			{TextGapID: 7, TextGap: model.TextGap{ID: 7, CorrectAnswer: "Paris"}},
		},
	}
	payload := dto.SubmissionPayload{
		dto.AnswerField(7): {"  paris  "},
	}
	s := &gradingService{}
	sub, _, err := s.buildSubmission(ut, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Gaps[0].Given != "paris" {
		t.Fatalf("expected trimmed answer, got %q", sub.Gaps[0].Given)
	}
	if sub.Gaps[0].Expected != "Paris" {
		t.Fatalf("expected correct answer carried over, got %q", sub.Gaps[0].Expected)
	}
}

func TestBuildTableMapsExpectedMarks(t *testing.T) {
	ut := &model.UserTask{
		TaskID: 3,
		Task:   model.Task{ID: 3, TaskType: model.TaskTable},
		TableAnswers: []model.UserTableAnswer{
			{RowID: 1, ColumnID: 1},
			{RowID: 1, ColumnID: 2},
		},
	}
	s := &gradingService{taskRepo: &stubTaskRepo{cells: []model.TableCell{
		{RowID: 1, ColumnID: 1, Correct: true},
		{RowID: 1, ColumnID: 2, Correct: false},
	}}}
	payload := dto.SubmissionPayload{
		dto.CellField(1, 1): {"on"},
	}
	sub, _, err := s.buildSubmission(ut, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sub.Cells[0].Checked || !sub.Cells[0].Expected {
		t.Fatalf("cell (1,1) should be checked and expected, got %+v", sub.Cells[0])
	}
	if sub.Cells[1].Checked || sub.Cells[1].Expected {
		t.Fatalf("cell (1,2) should be unchecked and not expected, got %+v", sub.Cells[1])
	}
}

func TestBuildWrittenStagesAnswerAndFile(t *testing.T) {
	ut := &model.UserTask{
		Task: model.Task{TaskType: model.TaskWritten},
		UserWritten: []model.UserWritten{
			{WrittenID: 4, Written: model.Written{ID: 4}},
		},
	}
	payload := dto.SubmissionPayload{
		dto.AnswerField(4): {"  my essay  "},
		dto.FileField(4):   {"uploads/essay.pdf"},
	}
	s := &gradingService{}
	sub, _, err := s.buildSubmission(ut, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Written[0].Text != "my essay" {
		t.Fatalf("expected trimmed essay text, got %q", sub.Written[0].Text)
	}
	if sub.Written[0].FileRef != "uploads/essay.pdf" {
		t.Fatalf("expected file ref staged, got %q", sub.Written[0].FileRef)
	}
}
