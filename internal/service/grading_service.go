package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sabaqhub/sabaq/internal/dto"
	"github.com/sabaqhub/sabaq/internal/model"
	"github.com/sabaqhub/sabaq/internal/repository"
	"github.com/sabaqhub/sabaq/internal/scoring"
	"gorm.io/gorm"
)

// GradingService grades a task submission: it resolves the student's attempt
// row, dispatches through the scoring rule table, and persists sub-answers and
// the awarded rating atomically.
type GradingService interface {
	SubmitTask(userID, userTaskID uint, payload dto.SubmissionPayload) (*dto.GradingResultDTO, error)
}

type gradingService struct {
	db           *gorm.DB
	userTaskRepo repository.UserTaskRepository
	taskRepo     repository.TaskRepository
	rules        scoring.RuleSet
}

func NewGradingService(db *gorm.DB, userTaskRepo repository.UserTaskRepository, taskRepo repository.TaskRepository, rules scoring.RuleSet) GradingService {
	return &gradingService{db: db, userTaskRepo: userTaskRepo, taskRepo: taskRepo, rules: rules}
}

// applyFunc persists the staged sub-answer state inside the submit transaction.
type applyFunc func(tx *gorm.DB, res scoring.Result) error

func (s *gradingService) SubmitTask(userID, userTaskID uint, payload dto.SubmissionPayload) (*dto.GradingResultDTO, error) {
	ut, err := s.userTaskRepo.FindByIDForUser(userTaskID, userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("user task %d: %w", userTaskID, ErrNotFound)
		}
		return nil, err
	}

	sub, apply, err := s.buildSubmission(ut, payload)
	if err != nil {
		return nil, err
	}

	res, err := s.rules.Score(ut.Task.TaskType, ut.Task.Rating, sub)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := apply(tx, res); err != nil {
			return err
		}
		updates := map[string]interface{}{}
		switch {
		case res.Completed:
			updates["rating"] = res.Score
			updates["is_completed"] = true
			updates["submitted_at"] = time.Now()
		case res.Outcome == scoring.OutcomeNoAnswer:
			// Cleared answers zero the rating but never reset completion.
			updates["rating"] = float64(0)
			updates["submitted_at"] = time.Now()
		default:
			// Written and partially watched video tasks keep the task row open.
			return nil
		}
		return tx.Model(&model.UserTask{}).Where("id = ?", ut.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	if res.Completed {
		ut.Rating = res.Score
		ut.IsCompleted = true
	} else if res.Outcome == scoring.OutcomeNoAnswer {
		ut.Rating = 0
	}

	log.Info().
		Uint("user_id", userID).
		Uint("user_task_id", ut.ID).
		Str("task_type", string(ut.Task.TaskType)).
		Float64("score", res.Score).
		Str("outcome", string(res.Outcome)).
		Msg("Task graded")

	return &dto.GradingResultDTO{
		UserTaskID:  ut.ID,
		TaskID:      ut.TaskID,
		TaskType:    string(ut.Task.TaskType),
		Score:       ut.Rating,
		MaxScore:    ut.Task.Rating,
		Outcome:     string(res.Outcome),
		MessageKey:  "grading." + string(res.Outcome),
		IsCompleted: ut.IsCompleted,
	}, nil
}

// buildSubmission stages the payload onto the attempt's sub-answer rows and
// returns the scoring input plus the persistence step for the transaction.
func (s *gradingService) buildSubmission(ut *model.UserTask, payload dto.SubmissionPayload) (scoring.Submission, applyFunc, error) {
	switch ut.Task.TaskType {
	case model.TaskVideo:
		return s.buildVideo(ut, payload)
	case model.TaskWritten:
		return s.buildWritten(ut, payload)
	case model.TaskTextGap:
		return s.buildTextGap(ut, payload)
	case model.TaskTest:
		return s.buildTest(ut, payload)
	case model.TaskMatching:
		return s.buildMatching(ut, payload)
	case model.TaskTable:
		return s.buildTable(ut, payload)
	default:
		return scoring.Submission{}, nil, fmt.Errorf("unknown task type %q", ut.Task.TaskType)
	}
}

func (s *gradingService) buildVideo(ut *model.UserTask, payload dto.SubmissionPayload) (scoring.Submission, applyFunc, error) {
	var sub scoring.Submission
	for i := range ut.UserVideos {
		uv := &ut.UserVideos[i]
		// A reported sub-video counts as watched; the others keep prior state.
		if payload.Has(dto.WatchedField(uv.VideoID)) {
			if n, ok := payload.Uint(dto.WatchedField(uv.VideoID)); ok {
				uv.WatchedSeconds = n
			}
			uv.IsCompleted = true
		}
		sub.Videos = append(sub.Videos, scoring.VideoView{WatchedSeconds: uv.WatchedSeconds, Completed: uv.IsCompleted})
	}
	apply := func(tx *gorm.DB, _ scoring.Result) error {
		for i := range ut.UserVideos {
			uv := ut.UserVideos[i]
			err := tx.Model(&model.UserVideo{}).Where("id = ?", uv.ID).
				Updates(map[string]interface{}{"watched_seconds": uv.WatchedSeconds, "is_completed": uv.IsCompleted}).Error
			if err != nil {
				return err
			}
		}
		return nil
	}
	return sub, apply, nil
}

func (s *gradingService) buildWritten(ut *model.UserTask, payload dto.SubmissionPayload) (scoring.Submission, applyFunc, error) {
	var sub scoring.Submission
	for i := range ut.UserWritten {
		uw := &ut.UserWritten[i]
		if text := strings.TrimSpace(payload.Get(dto.AnswerField(uw.WrittenID))); text != "" {
			uw.Answer = text
		}
		if ref := strings.TrimSpace(payload.Get(dto.FileField(uw.WrittenID))); ref != "" {
			uw.FileRef = ref
		}
		sub.Written = append(sub.Written, scoring.WrittenAnswer{Text: uw.Answer, FileRef: uw.FileRef})
	}
	apply := func(tx *gorm.DB, res scoring.Result) error {
		for i := range ut.UserWritten {
			uw := ut.UserWritten[i]
			submitted := uw.IsSubmitted
			if i < len(res.Submitted) && res.Submitted[i] {
				submitted = true
			}
			err := tx.Model(&model.UserWritten{}).Where("id = ?", uw.ID).
				Updates(map[string]interface{}{"answer": uw.Answer, "file_ref": uw.FileRef, "is_submitted": submitted}).Error
			if err != nil {
				return err
			}
		}
		return nil
	}
	return sub, apply, nil
}

func (s *gradingService) buildTextGap(ut *model.UserTask, payload dto.SubmissionPayload) (scoring.Submission, applyFunc, error) {
	var sub scoring.Submission
	for i := range ut.UserTextGaps {
		utg := &ut.UserTextGaps[i]
		utg.Answer = strings.TrimSpace(payload.Get(dto.AnswerField(utg.TextGapID)))
		sub.Gaps = append(sub.Gaps, scoring.GapAnswer{Expected: utg.TextGap.CorrectAnswer, Given: utg.Answer})
	}
	apply := func(tx *gorm.DB, res scoring.Result) error {
		for i := range ut.UserTextGaps {
			utg := ut.UserTextGaps[i]
			correct := i < len(res.Correct) && res.Correct[i]
			err := tx.Model(&model.UserTextGap{}).Where("id = ?", utg.ID).
				Updates(map[string]interface{}{"answer": utg.Answer, "is_correct": correct}).Error
			if err != nil {
				return err
			}
		}
		return nil
	}
	return sub, apply, nil
}

func (s *gradingService) buildTest(ut *model.UserTask, payload dto.SubmissionPayload) (scoring.Submission, applyFunc, error) {
	var sub scoring.Submission
	picked := make([][]model.Option, len(ut.UserAnswers))
	for i := range ut.UserAnswers {
		ua := &ut.UserAnswers[i]
		options := make(map[uint]model.Option, len(ua.Question.Options))
		correct := make(map[uint]struct{})
		for _, opt := range ua.Question.Options {
			options[opt.ID] = opt
			if opt.IsCorrect {
				correct[opt.ID] = struct{}{}
			}
		}
		var selected []uint
		for _, id := range payload.UintList(dto.QuestionField(ua.QuestionID)) {
			opt, ok := options[id]
			if !ok {
				// Option ids from other questions are dropped silently.
				continue
			}
			selected = append(selected, id)
			picked[i] = append(picked[i], opt)
		}
		sub.Questions = append(sub.Questions, scoring.TestQuestion{
			Type:        ua.Question.QuestionType,
			CorrectIDs:  correct,
			SelectedIDs: selected,
		})
	}
	apply := func(tx *gorm.DB, _ scoring.Result) error {
		for i := range ut.UserAnswers {
			ua := ut.UserAnswers[i]
			if err := tx.Model(&ua).Association("Options").Replace(picked[i]); err != nil {
				return err
			}
		}
		return nil
	}
	return sub, apply, nil
}

func (s *gradingService) buildMatching(ut *model.UserTask, payload dto.SubmissionPayload) (scoring.Submission, applyFunc, error) {
	var sub scoring.Submission
	columns := make(map[uint]struct{}, len(ut.Task.Columns))
	for _, c := range ut.Task.Columns {
		columns[c.ID] = struct{}{}
	}
	for i := range ut.MatchingAnswers {
		ma := &ut.MatchingAnswers[i]
		if v, ok := payload.Uint(dto.ColumnField(ma.ItemID)); ok {
			if _, known := columns[v]; known {
				sel := v
				ma.SelectedColumnID = &sel
			}
		}
		sub.Matches = append(sub.Matches, scoring.MatchingPick{
			CorrectColumnID:  ma.Item.CorrectColumnID,
			SelectedColumnID: ma.SelectedColumnID,
		})
	}
	apply := func(tx *gorm.DB, res scoring.Result) error {
		for i := range ut.MatchingAnswers {
			ma := ut.MatchingAnswers[i]
			correct := i < len(res.Correct) && res.Correct[i]
			err := tx.Model(&model.UserMatchingAnswer{}).Where("id = ?", ma.ID).
				Updates(map[string]interface{}{"selected_column_id": ma.SelectedColumnID, "is_correct": correct}).Error
			if err != nil {
				return err
			}
		}
		return nil
	}
	return sub, apply, nil
}

func (s *gradingService) buildTable(ut *model.UserTask, payload dto.SubmissionPayload) (scoring.Submission, applyFunc, error) {
	cells, err := s.taskRepo.FindTableCells(ut.TaskID)
	if err != nil {
		return scoring.Submission{}, nil, err
	}
	expected := make(map[[2]uint]bool, len(cells))
	for _, c := range cells {
		expected[[2]uint{c.RowID, c.ColumnID}] = c.Correct
	}
	var sub scoring.Submission
	for i := range ut.TableAnswers {
		ta := &ut.TableAnswers[i]
		// Checkbox semantics: an absent field means unchecked.
		ta.Checked = payload.Has(dto.CellField(ta.RowID, ta.ColumnID))
		ta.IsSubmitted = true
		sub.Cells = append(sub.Cells, scoring.TableCellMark{
			Expected: expected[[2]uint{ta.RowID, ta.ColumnID}],
			Checked:  ta.Checked,
		})
	}
	apply := func(tx *gorm.DB, _ scoring.Result) error {
		for i := range ut.TableAnswers {
			ta := ut.TableAnswers[i]
			err := tx.Model(&model.UserTableAnswer{}).Where("id = ?", ta.ID).
				Updates(map[string]interface{}{"checked": ta.Checked, "is_submitted": true}).Error
			if err != nil {
				return err
			}
		}
		return nil
	}
	return sub, apply, nil
}
