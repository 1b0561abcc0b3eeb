package service

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sabaqhub/sabaq/internal/dto"
	"github.com/sabaqhub/sabaq/internal/model"
	"github.com/sabaqhub/sabaq/internal/repository"
	"gorm.io/gorm"
)

// AdminContentService is the authoring side: subjects, chapters, lessons and
// tasks with their nested content. Publishing a lesson backfills progress rows
// for already enrolled students.
type AdminContentService interface {
	CreateSubject(req dto.SubjectCreateDTO) (*dto.SubjectSummaryDTO, error)
	CreateChapter(subjectID uint, req dto.ChapterCreateDTO) (*dto.ChapterDetailDTO, error)
	CreateLesson(req dto.LessonCreateDTO) (*dto.LessonSummaryDTO, error)
	CreateTask(req dto.TaskCreateDTO) (*dto.TaskResponseDTO, error)
}

type adminContentService struct {
	db          *gorm.DB
	subjectRepo repository.SubjectRepository
	lessonRepo  repository.LessonRepository
	taskRepo    repository.TaskRepository
	progress    ProgressService
}

func NewAdminContentService(
	db *gorm.DB,
	subjectRepo repository.SubjectRepository,
	lessonRepo repository.LessonRepository,
	taskRepo repository.TaskRepository,
	progress ProgressService,
) AdminContentService {
	return &adminContentService{
		db:          db,
		subjectRepo: subjectRepo,
		lessonRepo:  lessonRepo,
		taskRepo:    taskRepo,
		progress:    progress,
	}
}

func (s *adminContentService) CreateSubject(req dto.SubjectCreateDTO) (*dto.SubjectSummaryDTO, error) {
	subject := &model.Subject{
		Name:        req.Name,
		OwnerID:     req.OwnerID,
		Description: req.Description,
	}
	if err := s.subjectRepo.Create(subject); err != nil {
		return nil, err
	}
	log.Info().Uint("subject_id", subject.ID).Str("name", subject.Name).Msg("Subject created")
	d := toSubjectSummaryDTO(subject)
	return &d, nil
}

func (s *adminContentService) CreateChapter(subjectID uint, req dto.ChapterCreateDTO) (*dto.ChapterDetailDTO, error) {
	if _, err := s.subjectRepo.FindByID(subjectID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("subject %d: %w", subjectID, ErrNotFound)
		}
		return nil, err
	}
	chapter := &model.Chapter{SubjectID: subjectID, Name: req.Name, Order: req.Order}
	if err := s.subjectRepo.CreateChapter(chapter); err != nil {
		return nil, err
	}
	return &dto.ChapterDetailDTO{ID: chapter.ID, Name: chapter.Name, Order: chapter.Order}, nil
}

// CreateLesson creates the lesson and immediately materializes progress rows
// for every student enrolled in the subject.
func (s *adminContentService) CreateLesson(req dto.LessonCreateDTO) (*dto.LessonSummaryDTO, error) {
	var chapter model.Chapter
	if err := s.db.First(&chapter, req.ChapterID).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("chapter %d: %w", req.ChapterID, ErrNotFound)
		}
		return nil, err
	}
	lesson := &model.Lesson{
		SubjectID:   chapter.SubjectID,
		ChapterID:   chapter.ID,
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.lessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	if _, err := s.progress.MaterializeLesson(lesson.ID); err != nil {
		return nil, err
	}
	return &dto.LessonSummaryDTO{ID: lesson.ID, Title: lesson.Title, Order: lesson.Order}, nil
}

func (s *adminContentService) CreateTask(req dto.TaskCreateDTO) (*dto.TaskResponseDTO, error) {
	if _, err := s.lessonRepo.FindByID(req.LessonID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("lesson %d: %w", req.LessonID, ErrNotFound)
		}
		return nil, err
	}
	if err := validateTaskContent(&req); err != nil {
		return nil, err
	}

	task := &model.Task{
		LessonID:    req.LessonID,
		TaskType:    model.TaskType(req.TaskType),
		Rating:      req.Rating,
		Duration:    req.Duration,
		Description: req.Description,
		Order:       req.Order,
	}
	for _, v := range req.Videos {
		task.Videos = append(task.Videos, model.Video{URL: v.URL, Order: v.Order})
	}
	for _, w := range req.Written {
		task.Written = append(task.Written, model.Written{Instruction: w.Instruction})
	}
	for _, g := range req.TextGaps {
		task.TextGaps = append(task.TextGaps, model.TextGap{Prompt: g.Prompt, CorrectAnswer: g.CorrectAnswer})
	}
	for _, q := range req.Questions {
		question := model.Question{Text: q.Text, QuestionType: model.QuestionType(q.QuestionType), Order: q.Order}
		for _, o := range q.Options {
			question.Options = append(question.Options, model.Option{Text: o.Text, IsCorrect: o.IsCorrect})
		}
		task.Questions = append(task.Questions, question)
	}
	for _, c := range req.Columns {
		column := model.MatchingColumn{Label: c.Label, Order: c.Order}
		for _, item := range c.Items {
			column.Items = append(column.Items, model.MatchingItem{Text: item})
		}
		task.Columns = append(task.Columns, column)
	}
	for i, label := range req.TableRows {
		task.TableRows = append(task.TableRows, model.TableRow{Label: label, Order: i})
	}
	for i, label := range req.TableColumns {
		task.TableColumns = append(task.TableColumns, model.TableColumn{Label: label, Order: i})
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}

	// Table cells arrive as indexes and need the generated row/column ids.
	if task.TaskType == model.TaskTable && len(req.TableCells) > 0 {
		cells := make([]model.TableCell, 0, len(req.TableCells))
		for _, c := range req.TableCells {
			cells = append(cells, model.TableCell{
				RowID:    task.TableRows[c.RowIndex].ID,
				ColumnID: task.TableColumns[c.ColumnIndex].ID,
				Correct:  c.Correct,
			})
		}
		if err := s.taskRepo.CreateTableCells(cells); err != nil {
			return nil, err
		}
	}

	log.Info().Uint("task_id", task.ID).Str("task_type", req.TaskType).Msg("Task created")
	d := toTaskResponseDTO(task)
	return &d, nil
}

// validateTaskContent checks that the nested content matches the declared
// type before anything is written.
func validateTaskContent(req *dto.TaskCreateDTO) error {
	switch model.TaskType(req.TaskType) {
	case model.TaskVideo:
		if len(req.Videos) == 0 {
			return fmt.Errorf("video task needs at least one video: %w", ErrInvalidTaskContent)
		}
	case model.TaskWritten:
		if len(req.Written) == 0 {
			return fmt.Errorf("written task needs at least one prompt: %w", ErrInvalidTaskContent)
		}
	case model.TaskTextGap:
		if len(req.TextGaps) == 0 {
			return fmt.Errorf("text gap task needs at least one blank: %w", ErrInvalidTaskContent)
		}
	case model.TaskTest:
		if len(req.Questions) == 0 {
			return fmt.Errorf("test task needs at least one question: %w", ErrInvalidTaskContent)
		}
		for _, q := range req.Questions {
			correct := 0
			for _, o := range q.Options {
				if o.IsCorrect {
					correct++
				}
			}
			if model.QuestionType(q.QuestionType) == model.QuestionSimple && correct != 1 {
				return fmt.Errorf("simple question %q needs exactly one correct option: %w", q.Text, ErrInvalidTaskContent)
			}
			if model.QuestionType(q.QuestionType) == model.QuestionMultiple && correct == 0 {
				return fmt.Errorf("multiple question %q needs at least one correct option: %w", q.Text, ErrInvalidTaskContent)
			}
		}
	case model.TaskMatching:
		if len(req.Columns) < 2 {
			return fmt.Errorf("matching task needs at least two columns: %w", ErrInvalidTaskContent)
		}
		items := 0
		for _, c := range req.Columns {
			items += len(c.Items)
		}
		if items == 0 {
			return fmt.Errorf("matching task needs at least one item: %w", ErrInvalidTaskContent)
		}
	case model.TaskTable:
		if len(req.TableRows) == 0 || len(req.TableColumns) == 0 {
			return fmt.Errorf("table task needs rows and columns: %w", ErrInvalidTaskContent)
		}
		for _, c := range req.TableCells {
			if c.RowIndex >= len(req.TableRows) || c.ColumnIndex >= len(req.TableColumns) {
				return fmt.Errorf("table cell (%d,%d) outside the grid: %w", c.RowIndex, c.ColumnIndex, ErrInvalidTaskContent)
			}
		}
	}
	return nil
}
