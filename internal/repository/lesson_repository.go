package repository

import (
	"github.com/sabaqhub/sabaq/internal/model"
	"gorm.io/gorm"
)

type LessonRepository interface {
	Create(lesson *model.Lesson) error
	FindByID(id uint) (*model.Lesson, error)
	FindByIDWithTasks(id uint) (*model.Lesson, error)
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(lesson *model.Lesson) error {
	return r.db.Create(lesson).Error
}

func (r *lessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.First(&lesson, id).Error
	return &lesson, err
}

func (r *lessonRepository) FindByIDWithTasks(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.\"order\" ASC")
		}).
		Preload("Tasks.Videos").
		Preload("Tasks.Written").
		Preload("Tasks.TextGaps").
		Preload("Tasks.Questions.Options").
		Preload("Tasks.Columns.Items").
		Preload("Tasks.TableRows").
		Preload("Tasks.TableColumns").
		First(&lesson, id).Error
	return &lesson, err
}
