package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sabaqhub/sabaq/internal/dto"
	"github.com/sabaqhub/sabaq/internal/model"
	"github.com/sabaqhub/sabaq/internal/repository"
	"gorm.io/gorm"
)

// ProgressService owns the progression state machine: enrollment, lesson
// start/finish, the three-level rollup, and materialization of attempt rows
// when new content is published.
type ProgressService interface {
	Enroll(userID, subjectID uint) (*dto.UserSubjectDTO, error)
	StartLesson(userID, userSubjectID, userLessonID uint) (*dto.StartLessonResultDTO, error)
	FinishLesson(userID, userSubjectID, userLessonID uint) (*dto.RollupResultDTO, error)
	MaterializeLesson(lessonID uint) (*dto.MaterializeResultDTO, error)
	SaveFeedback(userID uint, req dto.FeedbackDTO) error
}

type progressService struct {
	db              *gorm.DB
	subjectRepo     repository.SubjectRepository
	lessonRepo      repository.LessonRepository
	userSubjectRepo repository.UserSubjectRepository
	userChapterRepo repository.UserChapterRepository
	userLessonRepo  repository.UserLessonRepository
}

func NewProgressService(
	db *gorm.DB,
	subjectRepo repository.SubjectRepository,
	lessonRepo repository.LessonRepository,
	userSubjectRepo repository.UserSubjectRepository,
	userChapterRepo repository.UserChapterRepository,
	userLessonRepo repository.UserLessonRepository,
) ProgressService {
	return &progressService{
		db:              db,
		subjectRepo:     subjectRepo,
		lessonRepo:      lessonRepo,
		userSubjectRepo: userSubjectRepo,
		userChapterRepo: userChapterRepo,
		userLessonRepo:  userLessonRepo,
	}
}

// Enroll creates the student's enrollment and materializes chapter and lesson
// progress rows for everything the subject currently contains. Re-enrolling is
// a no-op thanks to get-or-create.
func (s *progressService) Enroll(userID, subjectID uint) (*dto.UserSubjectDTO, error) {
	subject, err := s.subjectRepo.FindByIDWithContent(subjectID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("subject %d: %w", subjectID, ErrNotFound)
		}
		return nil, err
	}
	lessonCount := 0
	for _, ch := range subject.Chapters {
		lessonCount += len(ch.Lessons)
	}
	if len(subject.Chapters) == 0 || lessonCount == 0 {
		return nil, fmt.Errorf("subject %d: %w", subjectID, ErrEmptySubject)
	}

	var us model.UserSubject
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(model.UserSubject{UserID: userID, SubjectID: subjectID}).
			FirstOrCreate(&us).Error; err != nil {
			return err
		}
		for _, ch := range subject.Chapters {
			var uc model.UserChapter
			if err := tx.Where(model.UserChapter{UserID: userID, UserSubjectID: us.ID, ChapterID: ch.ID}).
				FirstOrCreate(&uc).Error; err != nil {
				return err
			}
			for _, l := range ch.Lessons {
				var ul model.UserLesson
				if err := tx.Where(model.UserLesson{UserID: userID, UserSubjectID: us.ID, LessonID: l.ID}).
					Attrs(model.UserLesson{Status: model.LessonNotStarted}).
					FirstOrCreate(&ul).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("user_id", userID).Uint("subject_id", subjectID).Msg("Student enrolled")
	us.Subject = *subject
	d := toUserSubjectDTO(&us)
	return &d, nil
}

// StartLesson moves the lesson to in-progress and get-or-creates the attempt
// row for every task plus its per-sub-unit answer rows. Calling it again on an
// in-progress lesson is safe; a finished lesson stays finished.
func (s *progressService) StartLesson(userID, userSubjectID, userLessonID uint) (*dto.StartLessonResultDTO, error) {
	us, err := s.userSubjectRepo.FindByIDForUser(userSubjectID, userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("user subject %d: %w", userSubjectID, ErrNotFound)
		}
		return nil, err
	}
	ul, err := s.userLessonRepo.FindByIDForUserSubject(userLessonID, us.ID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("user lesson %d: %w", userLessonID, ErrNotFound)
		}
		return nil, err
	}
	lesson, err := s.lessonRepo.FindByIDWithTasks(ul.LessonID)
	if err != nil {
		return nil, err
	}
	if len(lesson.Tasks) == 0 {
		return nil, fmt.Errorf("lesson %d: %w", ul.LessonID, ErrEmptyLesson)
	}

	messageKey := "lesson.started"
	var firstUserTaskID *uint
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if ul.Status == model.LessonFinished {
			messageKey = "lesson.already_finished"
		} else {
			updates := map[string]interface{}{"status": model.LessonInProgress}
			if ul.StartedAt == nil {
				now := time.Now()
				ul.StartedAt = &now
				updates["started_at"] = now
			}
			ul.Status = model.LessonInProgress
			if err := tx.Model(&model.UserLesson{}).Where("id = ?", ul.ID).Updates(updates).Error; err != nil {
				return err
			}
		}
		for i := range lesson.Tasks {
			utID, err := materializeTask(tx, ul.ID, &lesson.Tasks[i])
			if err != nil {
				return err
			}
			if firstUserTaskID == nil {
				id := utID
				firstUserTaskID = &id
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.StartLessonResultDTO{
		Lesson:          toUserLessonDTO(ul),
		FirstUserTaskID: firstUserTaskID,
		TaskCount:       len(lesson.Tasks),
		MessageKey:      messageKey,
	}, nil
}

// materializeTask get-or-creates the attempt row for one task and one answer
// row per sub-unit (per video, written prompt, blank, question, matching item
// and table cell position).
func materializeTask(tx *gorm.DB, userLessonID uint, task *model.Task) (uint, error) {
	var ut model.UserTask
	if err := tx.Where(model.UserTask{UserLessonID: userLessonID, TaskID: task.ID}).
		FirstOrCreate(&ut).Error; err != nil {
		return 0, err
	}
	switch task.TaskType {
	case model.TaskVideo:
		for _, v := range task.Videos {
			var uv model.UserVideo
			if err := tx.Where(model.UserVideo{UserTaskID: ut.ID, VideoID: v.ID}).
				FirstOrCreate(&uv).Error; err != nil {
				return 0, err
			}
		}
	case model.TaskWritten:
		for _, w := range task.Written {
			var uw model.UserWritten
			if err := tx.Where(model.UserWritten{UserTaskID: ut.ID, WrittenID: w.ID}).
				FirstOrCreate(&uw).Error; err != nil {
				return 0, err
			}
		}
	case model.TaskTextGap:
		for _, g := range task.TextGaps {
			var utg model.UserTextGap
			if err := tx.Where(model.UserTextGap{UserTaskID: ut.ID, TextGapID: g.ID}).
				FirstOrCreate(&utg).Error; err != nil {
				return 0, err
			}
		}
	case model.TaskTest:
		for _, q := range task.Questions {
			var ua model.UserAnswer
			if err := tx.Where(model.UserAnswer{UserTaskID: ut.ID, QuestionID: q.ID}).
				FirstOrCreate(&ua).Error; err != nil {
				return 0, err
			}
		}
	case model.TaskMatching:
		for _, col := range task.Columns {
			for _, item := range col.Items {
				var ma model.UserMatchingAnswer
				if err := tx.Where(model.UserMatchingAnswer{UserTaskID: ut.ID, ItemID: item.ID}).
					FirstOrCreate(&ma).Error; err != nil {
					return 0, err
				}
			}
		}
	case model.TaskTable:
		for _, row := range task.TableRows {
			for _, col := range task.TableColumns {
				var ta model.UserTableAnswer
				if err := tx.Where(model.UserTableAnswer{UserTaskID: ut.ID, RowID: row.ID, ColumnID: col.ID}).
					FirstOrCreate(&ta).Error; err != nil {
					return 0, err
				}
			}
		}
	}
	return ut.ID, nil
}

// FinishLesson marks the lesson finished and rolls the numbers up through
// chapter and subject in one transaction. Finishing an already finished lesson
// returns the current state without recomputing anything.
func (s *progressService) FinishLesson(userID, userSubjectID, userLessonID uint) (*dto.RollupResultDTO, error) {
	us, err := s.userSubjectRepo.FindByIDForUser(userSubjectID, userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("user subject %d: %w", userSubjectID, ErrNotFound)
		}
		return nil, err
	}
	ul, err := s.userLessonRepo.FindByIDForUserSubject(userLessonID, us.ID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("user lesson %d: %w", userLessonID, ErrNotFound)
		}
		return nil, err
	}
	chapterID := ul.Lesson.ChapterID

	if ul.IsCompleted {
		uc, err := s.userChapterRepo.FindByUserSubjectAndChapter(us.ID, chapterID)
		if err != nil {
			return nil, err
		}
		return &dto.RollupResultDTO{
			Lesson:     toUserLessonDTO(ul),
			Chapter:    toUserChapterDTO(uc),
			Subject:    toUserSubjectDTO(us),
			MessageKey: "lesson.already_finished",
		}, nil
	}

	var taskCount int64
	if err := s.db.Model(&model.UserTask{}).Where("user_lesson_id = ?", ul.ID).Count(&taskCount).Error; err != nil {
		return nil, err
	}
	if taskCount == 0 {
		return nil, fmt.Errorf("user lesson %d: %w", ul.ID, ErrEmptyLesson)
	}

	alreadyFinished := false
	var uc model.UserChapter
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var fresh model.UserLesson
		if err := tx.First(&fresh, ul.ID).Error; err != nil {
			return err
		}
		if fresh.IsCompleted {
			alreadyFinished = true
			lesson := ul.Lesson
			*ul = fresh
			ul.Lesson = lesson
			return nil
		}

		var total float64
		if err := tx.Model(&model.UserTask{}).
			Where("user_lesson_id = ?", ul.ID).
			Select("COALESCE(SUM(rating), 0)").
			Scan(&total).Error; err != nil {
			return err
		}
		now := time.Now()
		rating, percentage := lessonRollup(total)
		ul.Rating = rating
		ul.Percentage = percentage
		ul.Status = model.LessonFinished
		ul.IsCompleted = true
		ul.CompletedAt = &now
		if err := tx.Model(&model.UserLesson{}).Where("id = ?", ul.ID).Updates(map[string]interface{}{
			"rating":       ul.Rating,
			"percentage":   ul.Percentage,
			"status":       ul.Status,
			"is_completed": true,
			"completed_at": now,
		}).Error; err != nil {
			return err
		}

		// Chapter level: average over every lesson of the chapter, finished or not.
		var chapterLessons []model.UserLesson
		if err := tx.
			Joins("JOIN lessons ON lessons.id = user_lessons.lesson_id").
			Where("user_lessons.user_subject_id = ? AND lessons.chapter_id = ?", us.ID, chapterID).
			Find(&chapterLessons).Error; err != nil {
			return err
		}
		if err := tx.Where(model.UserChapter{UserID: userID, UserSubjectID: us.ID, ChapterID: chapterID}).
			FirstOrCreate(&uc).Error; err != nil {
			return err
		}
		chRating, chPercentage, chDone := chapterRollup(chapterLessons)
		uc.Rating = chRating
		uc.Percentage = chPercentage
		uc.IsCompleted = chDone
		if err := tx.Model(&model.UserChapter{}).Where("id = ?", uc.ID).Updates(map[string]interface{}{
			"rating":       uc.Rating,
			"percentage":   uc.Percentage,
			"is_completed": uc.IsCompleted,
		}).Error; err != nil {
			return err
		}

		// Subject level: chapter ratings average, percentage over all lessons.
		var chapters []model.UserChapter
		if err := tx.Where("user_subject_id = ?", us.ID).Find(&chapters).Error; err != nil {
			return err
		}
		var subjectLessons []model.UserLesson
		if err := tx.Where("user_subject_id = ?", us.ID).Find(&subjectLessons).Error; err != nil {
			return err
		}
		sRating, sPercentage, sDone := subjectRollup(chapters, subjectLessons)
		us.Rating = sRating
		us.Percentage = sPercentage
		us.IsCompleted = sDone
		updates := map[string]interface{}{
			"rating":       us.Rating,
			"percentage":   us.Percentage,
			"is_completed": us.IsCompleted,
		}
		// CompletedAt is set once, on the first full completion.
		if sDone && us.CompletedAt == nil {
			us.CompletedAt = &now
			updates["completed_at"] = now
		}
		return tx.Model(&model.UserSubject{}).Where("id = ?", us.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	messageKey := "lesson.finished"
	// Re-read the chapter row outside the transaction to get its name preloaded.
	freshUC, err := s.userChapterRepo.FindByUserSubjectAndChapter(us.ID, chapterID)
	if err != nil {
		return nil, err
	}
	uc = *freshUC
	if alreadyFinished {
		messageKey = "lesson.already_finished"
	} else {
		log.Info().
			Uint("user_id", userID).
			Uint("user_lesson_id", ul.ID).
			Float64("lesson_rating", ul.Rating).
			Uint("subject_rating", us.Rating).
			Msg("Lesson finished, progress rolled up")
	}

	return &dto.RollupResultDTO{
		Lesson:     toUserLessonDTO(ul),
		Chapter:    toUserChapterDTO(&uc),
		Subject:    toUserSubjectDTO(us),
		MessageKey: messageKey,
	}, nil
}

// MaterializeLesson backfills chapter and lesson progress rows for every
// student already enrolled in the subject. Called after publishing a lesson.
func (s *progressService) MaterializeLesson(lessonID uint) (*dto.MaterializeResultDTO, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("lesson %d: %w", lessonID, ErrNotFound)
		}
		return nil, err
	}
	enrolled, err := s.userSubjectRepo.FindAllBySubject(lesson.SubjectID)
	if err != nil {
		return nil, err
	}

	result := &dto.MaterializeResultDTO{LessonID: lesson.ID, EnrolledCount: len(enrolled)}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, us := range enrolled {
			var uc model.UserChapter
			res := tx.Where(model.UserChapter{UserID: us.UserID, UserSubjectID: us.ID, ChapterID: lesson.ChapterID}).
				FirstOrCreate(&uc)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				result.ChaptersCreated++
			}
			var ul model.UserLesson
			res = tx.Where(model.UserLesson{UserID: us.UserID, UserSubjectID: us.ID, LessonID: lesson.ID}).
				Attrs(model.UserLesson{Status: model.LessonNotStarted}).
				FirstOrCreate(&ul)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				result.LessonsCreated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("lesson_id", lesson.ID).
		Int("enrolled", result.EnrolledCount).
		Int("lessons_created", result.LessonsCreated).
		Msg("Lesson materialized for enrolled students")
	return result, nil
}

// SaveFeedback upserts the student's one feedback entry per lesson.
func (s *progressService) SaveFeedback(userID uint, req dto.FeedbackDTO) error {
	var ul model.UserLesson
	err := s.db.
		Joins("JOIN user_subjects ON user_subjects.id = user_lessons.user_subject_id").
		Where("user_lessons.id = ? AND user_subjects.user_id = ?", req.UserLessonID, userID).
		First(&ul).Error
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("user lesson %d: %w", req.UserLessonID, ErrNotFound)
		}
		return err
	}
	var fb model.Feedback
	return s.db.
		Where(model.Feedback{UserLessonID: ul.ID}).
		Assign(model.Feedback{Rating: req.Rating, Comment: req.Comment}).
		FirstOrCreate(&fb).Error
}
