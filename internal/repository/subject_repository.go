package repository

import (
	"github.com/sabaqhub/sabaq/internal/model"
	"gorm.io/gorm"
)

type SubjectRepository interface {
	Create(subject *model.Subject) error
	CreateChapter(chapter *model.Chapter) error
	FindByID(id uint) (*model.Subject, error)
	FindByIDWithContent(id uint) (*model.Subject, error)
	FindAll() ([]model.Subject, error)
	CountLessons(subjectID uint) (int64, error)
}

type subjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(subject *model.Subject) error {
	return r.db.Create(subject).Error
}

func (r *subjectRepository) CreateChapter(chapter *model.Chapter) error {
	return r.db.Create(chapter).Error
}

func (r *subjectRepository) FindByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.First(&subject, id).Error
	return &subject, err
}

func (r *subjectRepository) FindByIDWithContent(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("chapters.\"order\" ASC")
		}).
		Preload("Chapters.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.\"order\" ASC")
		}).
		Preload("Chapters.Lessons.Tasks").
		First(&subject, id).Error
	return &subject, err
}

func (r *subjectRepository) FindAll() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.Order("created_at ASC").Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepository) CountLessons(subjectID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Lesson{}).Where("subject_id = ?", subjectID).Count(&count).Error
	return count, err
}
