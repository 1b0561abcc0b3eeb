package repository

import (
	"github.com/sabaqhub/sabaq/internal/model"
	"gorm.io/gorm"
)

type UserTaskRepository interface {
	// FindByIDForUser loads a user task with its full task content and the
	// student's sub-answers, scoped to the owning student.
	FindByIDForUser(id, userID uint) (*model.UserTask, error)
	FindAllByUserLesson(userLessonID uint) ([]model.UserTask, error)
	SumRatings(userLessonID uint) (float64, error)
}

type userTaskRepository struct {
	db *gorm.DB
}

func NewUserTaskRepository(db *gorm.DB) UserTaskRepository {
	return &userTaskRepository{db: db}
}

func (r *userTaskRepository) FindByIDForUser(id, userID uint) (*model.UserTask, error) {
	var ut model.UserTask
	err := r.db.
		Preload("Task").
		Preload("Task.Videos").
		Preload("Task.Written").
		Preload("Task.TextGaps").
		Preload("Task.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.\"order\" ASC")
		}).
		Preload("Task.Questions.Options").
		Preload("Task.Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("matching_columns.\"order\" ASC")
		}).
		Preload("Task.Columns.Items").
		Preload("Task.TableRows", func(db *gorm.DB) *gorm.DB {
			return db.Order("table_rows.\"order\" ASC")
		}).
		Preload("Task.TableColumns", func(db *gorm.DB) *gorm.DB {
			return db.Order("table_columns.\"order\" ASC")
		}).
		Preload("UserVideos.Video").
		Preload("UserWritten.Written").
		Preload("UserTextGaps.TextGap").
		Preload("UserAnswers.Question.Options").
		Preload("UserAnswers.Options").
		Preload("MatchingAnswers.Item").
		Preload("TableAnswers").
		Joins("JOIN user_lessons ON user_lessons.id = user_tasks.user_lesson_id").
		Joins("JOIN user_subjects ON user_subjects.id = user_lessons.user_subject_id").
		Where("user_tasks.id = ? AND user_subjects.user_id = ?", id, userID).
		First(&ut).Error
	return &ut, err
}

func (r *userTaskRepository) FindAllByUserLesson(userLessonID uint) ([]model.UserTask, error) {
	var tasks []model.UserTask
	err := r.db.
		Preload("Task").
		Joins("JOIN tasks ON tasks.id = user_tasks.task_id").
		Where("user_tasks.user_lesson_id = ?", userLessonID).
		Order("tasks.\"order\" ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *userTaskRepository) SumRatings(userLessonID uint) (float64, error) {
	var total float64
	err := r.db.Model(&model.UserTask{}).
		Where("user_lesson_id = ?", userLessonID).
		Select("COALESCE(SUM(rating), 0)").
		Scan(&total).Error
	return total, err
}
