package service

import (
	"fmt"
	"sort"

	"github.com/sabaqhub/sabaq/internal/dto"
	"github.com/sabaqhub/sabaq/internal/model"
	"github.com/sabaqhub/sabaq/internal/repository"
	"gorm.io/gorm"
)

// SubjectService serves the student-facing read views: the dashboard, the
// subject page, the lesson page and the per-task submission view.
type SubjectService interface {
	GetDashboard(userID uint) (*dto.StudentDashboardDTO, error)
	GetSubjectDetail(userID, subjectID uint) (*dto.SubjectDetailDTO, error)
	GetLessonView(userID, userSubjectID, userLessonID uint) (*dto.LessonViewDTO, error)
	GetTaskView(userID, userSubjectID, userLessonID, userTaskID uint) (*dto.TaskViewDTO, error)
}

type subjectService struct {
	db              *gorm.DB
	subjectRepo     repository.SubjectRepository
	taskRepo        repository.TaskRepository
	userSubjectRepo repository.UserSubjectRepository
	userChapterRepo repository.UserChapterRepository
	userLessonRepo  repository.UserLessonRepository
	userTaskRepo    repository.UserTaskRepository
}

func NewSubjectService(
	db *gorm.DB,
	subjectRepo repository.SubjectRepository,
	taskRepo repository.TaskRepository,
	userSubjectRepo repository.UserSubjectRepository,
	userChapterRepo repository.UserChapterRepository,
	userLessonRepo repository.UserLessonRepository,
	userTaskRepo repository.UserTaskRepository,
) SubjectService {
	return &subjectService{
		db:              db,
		subjectRepo:     subjectRepo,
		taskRepo:        taskRepo,
		userSubjectRepo: userSubjectRepo,
		userChapterRepo: userChapterRepo,
		userLessonRepo:  userLessonRepo,
		userTaskRepo:    userTaskRepo,
	}
}

func (s *subjectService) GetDashboard(userID uint) (*dto.StudentDashboardDTO, error) {
	subjects, err := s.subjectRepo.FindAll()
	if err != nil {
		return nil, err
	}
	enrollments, err := s.userSubjectRepo.FindAllByUser(userID)
	if err != nil {
		return nil, err
	}
	bySubject := make(map[uint]*model.UserSubject, len(enrollments))
	for i := range enrollments {
		bySubject[enrollments[i].SubjectID] = &enrollments[i]
	}

	out := &dto.StudentDashboardDTO{Subjects: make([]dto.SubjectCardDTO, 0, len(subjects))}
	totalPercentage := 0.0
	for i := range subjects {
		card := dto.SubjectCardDTO{Subject: toSubjectSummaryDTO(&subjects[i])}
		if us, ok := bySubject[subjects[i].ID]; ok {
			usDTO := toUserSubjectDTO(us)
			usDTO.Name = subjects[i].Name
			card.UserSubject = &usDTO
			card.FirstChapterID, card.FirstLessonID = firstProgressIDs(us)
			for _, uc := range us.UserChapters {
				if uc.IsCompleted {
					card.CompletedChapterCount++
				}
			}
			for _, ul := range us.UserLessons {
				if ul.IsCompleted {
					card.CompletedLessonCount++
				}
			}
			totalPercentage += us.Percentage
			if us.IsCompleted {
				out.Statistics.Completed++
			} else {
				out.Statistics.InProcess++
			}
		}
		out.Subjects = append(out.Subjects, card)
	}
	if len(enrollments) > 0 {
		out.Statistics.AveragePercentage = round2(totalPercentage / float64(len(enrollments)))
	}
	return out, nil
}

// firstProgressIDs picks the progress rows for the first chapter and its first
// lesson, in content order, to link the "continue" button.
func firstProgressIDs(us *model.UserSubject) (chapterID, lessonID *uint) {
	var firstChapter *model.UserChapter
	for i := range us.UserChapters {
		uc := &us.UserChapters[i]
		if firstChapter == nil || uc.Chapter.Order < firstChapter.Chapter.Order {
			firstChapter = uc
		}
	}
	if firstChapter == nil {
		return nil, nil
	}
	id := firstChapter.ID
	chapterID = &id
	var firstLesson *model.UserLesson
	for i := range us.UserLessons {
		ul := &us.UserLessons[i]
		if ul.Lesson.ChapterID != firstChapter.ChapterID {
			continue
		}
		if firstLesson == nil || ul.Lesson.Order < firstLesson.Lesson.Order {
			firstLesson = ul
		}
	}
	if firstLesson != nil {
		lid := firstLesson.ID
		lessonID = &lid
	}
	return chapterID, lessonID
}

func (s *subjectService) GetSubjectDetail(userID, subjectID uint) (*dto.SubjectDetailDTO, error) {
	subject, err := s.subjectRepo.FindByIDWithContent(subjectID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("subject %d: %w", subjectID, ErrNotFound)
		}
		return nil, err
	}
	// View counter is best effort, outside any transaction.
	s.db.Model(&model.Subject{}).Where("id = ?", subjectID).
		UpdateColumn("views", gorm.Expr("views + 1"))

	out := &dto.SubjectDetailDTO{Subject: toSubjectSummaryDTO(subject)}
	for _, ch := range subject.Chapters {
		chDTO := dto.ChapterDetailDTO{ID: ch.ID, Name: ch.Name, Order: ch.Order}
		for _, l := range ch.Lessons {
			var duration uint
			for _, t := range l.Tasks {
				duration += t.Duration
			}
			chDTO.Lessons = append(chDTO.Lessons, dto.LessonSummaryDTO{
				ID: l.ID, Title: l.Title, Order: l.Order, Duration: duration,
			})
		}
		out.Chapters = append(out.Chapters, chDTO)
	}

	us, err := s.userSubjectRepo.FindByUserAndSubject(userID, subjectID)
	if err != nil {
		if isRecordNotFound(err) {
			return out, nil
		}
		return nil, err
	}
	usDTO := toUserSubjectDTO(us)
	usDTO.Name = subject.Name
	out.UserSubject = &usDTO
	out.FirstChapterID, out.FirstLessonID = firstProgressIDs(us)
	return out, nil
}

func (s *subjectService) GetLessonView(userID, userSubjectID, userLessonID uint) (*dto.LessonViewDTO, error) {
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
	uc, err := s.userChapterRepo.FindByUserSubjectAndChapter(us.ID, ul.Lesson.ChapterID)
	if err != nil {
		return nil, err
	}
	userTasks, err := s.userTaskRepo.FindAllByUserLesson(ul.ID)
	if err != nil {
		return nil, err
	}
	chapterLessons, err := s.userLessonRepo.FindAllByChapter(us.ID, ul.Lesson.ChapterID)
	if err != nil {
		return nil, err
	}

	out := &dto.LessonViewDTO{
		UserSubject: toUserSubjectDTO(us),
		UserChapter: toUserChapterDTO(uc),
		UserLesson:  toUserLessonDTO(ul),
	}
	for i := range userTasks {
		ut := &userTasks[i]
		out.TotalDuration += ut.Task.Duration
		if out.FirstTaskID == nil {
			id := ut.ID
			out.FirstTaskID = &id
		}
		// Videos play inline on the lesson page, so they stay off the task list.
		if ut.Task.TaskType == model.TaskVideo {
			continue
		}
		out.Tasks = append(out.Tasks, toUserTaskDTO(ut))
	}
	for i := range chapterLessons {
		cl := &chapterLessons[i]
		out.ChapterLessons = append(out.ChapterLessons, toUserLessonDTO(cl))
		if cl.ID == ul.ID {
			if i > 0 {
				id := chapterLessons[i-1].ID
				out.PrevLessonID = &id
			}
			if i+1 < len(chapterLessons) {
				id := chapterLessons[i+1].ID
				out.NextLessonID = &id
			}
		}
	}
	return out, nil
}

func (s *subjectService) GetTaskView(userID, userSubjectID, userLessonID, userTaskID uint) (*dto.TaskViewDTO, error) {
	ut, err := s.userTaskRepo.FindByIDForUser(userTaskID, userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("user task %d: %w", userTaskID, ErrNotFound)
		}
		return nil, err
	}
	if ut.UserLessonID != userLessonID {
		return nil, fmt.Errorf("user task %d: %w", userTaskID, ErrNotFound)
	}

	out := &dto.TaskViewDTO{
		UserTask:    toUserTaskDTO(ut),
		TaskType:    string(ut.Task.TaskType),
		Description: ut.Task.Description,
	}

	siblings, err := s.userTaskRepo.FindAllByUserLesson(userLessonID)
	if err != nil {
		return nil, err
	}
	allCompleted := len(siblings) > 0
	for i := range siblings {
		if !siblings[i].IsCompleted {
			allCompleted = false
		}
		if siblings[i].ID != ut.ID {
			continue
		}
		if i > 0 {
			id := siblings[i-1].ID
			out.PrevUserTaskID = &id
		}
		if i+1 < len(siblings) {
			id := siblings[i+1].ID
			out.NextUserTaskID = &id
		}
	}
	out.AllTasksCompleted = allCompleted

	switch ut.Task.TaskType {
	case model.TaskVideo:
		for _, uv := range ut.UserVideos {
			out.Videos = append(out.Videos, dto.UserVideoDTO{
				ID: uv.ID, VideoID: uv.VideoID, URL: uv.Video.URL,
				WatchedSeconds: uv.WatchedSeconds, IsCompleted: uv.IsCompleted,
			})
		}
	case model.TaskWritten:
		for _, uw := range ut.UserWritten {
			out.Written = append(out.Written, dto.UserWrittenDTO{
				ID: uw.ID, WrittenID: uw.WrittenID, Instruction: uw.Written.Instruction,
				Answer: uw.Answer, FileRef: uw.FileRef, IsSubmitted: uw.IsSubmitted,
			})
		}
	case model.TaskTextGap:
		for _, utg := range ut.UserTextGaps {
			out.TextGaps = append(out.TextGaps, dto.UserTextGapDTO{
				ID: utg.ID, TextGapID: utg.TextGapID, Prompt: utg.TextGap.Prompt,
				Answer: utg.Answer, IsCorrect: utg.IsCorrect,
			})
		}
	case model.TaskTest:
		answers := make([]dto.UserAnswerDTO, 0, len(ut.UserAnswers))
		for _, ua := range ut.UserAnswers {
			d := dto.UserAnswerDTO{
				ID:           ua.ID,
				QuestionID:   ua.QuestionID,
				Text:         ua.Question.Text,
				QuestionType: string(ua.Question.QuestionType),
			}
			// Correct flags stay server side.
			for _, opt := range ua.Question.Options {
				d.Options = append(d.Options, dto.OptionDTO{ID: opt.ID, Text: opt.Text})
			}
			for _, opt := range ua.Options {
				d.SelectedIDs = append(d.SelectedIDs, opt.ID)
			}
			answers = append(answers, d)
		}
		questionOrder := make(map[uint]int, len(ut.Task.Questions))
		for _, q := range ut.Task.Questions {
			questionOrder[q.ID] = q.Order
		}
		sort.SliceStable(answers, func(i, j int) bool {
			return questionOrder[answers[i].QuestionID] < questionOrder[answers[j].QuestionID]
		})
		out.Answers = answers
	case model.TaskMatching:
		for _, col := range ut.Task.Columns {
			out.MatchingColumns = append(out.MatchingColumns, dto.MatchingColumnDTO{
				ID: col.ID, Label: col.Label, Order: col.Order,
			})
		}
		for _, ma := range ut.MatchingAnswers {
			out.Matchings = append(out.Matchings, dto.UserMatchingDTO{
				ID: ma.ID, ItemID: ma.ItemID, Text: ma.Item.Text,
				SelectedColumnID: ma.SelectedColumnID, IsCorrect: ma.IsCorrect,
			})
		}
	case model.TaskTable:
		for _, row := range ut.Task.TableRows {
			out.TableRows = append(out.TableRows, dto.TableHeaderDTO{ID: row.ID, Label: row.Label, Order: row.Order})
		}
		for _, col := range ut.Task.TableColumns {
			out.TableColumns = append(out.TableColumns, dto.TableHeaderDTO{ID: col.ID, Label: col.Label, Order: col.Order})
		}
		// Expected marks are revealed only after the task is completed.
		expected := map[[2]uint]bool{}
		if ut.IsCompleted {
			cells, err := s.taskRepo.FindTableCells(ut.TaskID)
			if err != nil {
				return nil, err
			}
			for _, c := range cells {
				expected[[2]uint{c.RowID, c.ColumnID}] = c.Correct
			}
		}
		for _, ta := range ut.TableAnswers {
			out.TableCells = append(out.TableCells, dto.TableCellStateDTO{
				RowID: ta.RowID, ColumnID: ta.ColumnID, Checked: ta.Checked,
				Correct: expected[[2]uint{ta.RowID, ta.ColumnID}],
			})
		}
	}
	return out, nil
}
