package repository

import (
	"github.com/sabaqhub/sabaq/internal/model"
	"gorm.io/gorm"
)

type UserSubjectRepository interface {
	GetOrCreate(userID, subjectID uint) (*model.UserSubject, error)
	FindByIDForUser(id, userID uint) (*model.UserSubject, error)
	FindByUserAndSubject(userID, subjectID uint) (*model.UserSubject, error)
	FindAllByUser(userID uint) ([]model.UserSubject, error)
	FindAllBySubject(subjectID uint) ([]model.UserSubject, error)
	Save(userSubject *model.UserSubject) error
}

type userSubjectRepository struct {
	db *gorm.DB
}

func NewUserSubjectRepository(db *gorm.DB) UserSubjectRepository {
	return &userSubjectRepository{db: db}
}

func (r *userSubjectRepository) GetOrCreate(userID, subjectID uint) (*model.UserSubject, error) {
	var us model.UserSubject
	err := r.db.
		Where(model.UserSubject{UserID: userID, SubjectID: subjectID}).
		FirstOrCreate(&us).Error
	return &us, err
}

func (r *userSubjectRepository) FindByIDForUser(id, userID uint) (*model.UserSubject, error) {
	var us model.UserSubject
	err := r.db.
		Preload("Subject").
		Where("id = ? AND user_id = ?", id, userID).
		First(&us).Error
	return &us, err
}

func (r *userSubjectRepository) FindByUserAndSubject(userID, subjectID uint) (*model.UserSubject, error) {
	var us model.UserSubject
	err := r.db.
		Preload("UserChapters.Chapter").
		Preload("UserLessons.Lesson").
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		First(&us).Error
	return &us, err
}

func (r *userSubjectRepository) FindAllByUser(userID uint) ([]model.UserSubject, error) {
	var subjects []model.UserSubject
	err := r.db.
		Preload("Subject").
		Preload("UserChapters.Chapter").
		Preload("UserLessons.Lesson").
		Where("user_id = ?", userID).
		Find(&subjects).Error
	return subjects, err
}

func (r *userSubjectRepository) FindAllBySubject(subjectID uint) ([]model.UserSubject, error) {
	var subjects []model.UserSubject
	err := r.db.Where("subject_id = ?", subjectID).Find(&subjects).Error
	return subjects, err
}

func (r *userSubjectRepository) Save(userSubject *model.UserSubject) error {
	return r.db.Save(userSubject).Error
}
