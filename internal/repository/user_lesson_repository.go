package repository

import (
	"github.com/sabaqhub/sabaq/internal/model"
	"gorm.io/gorm"
)

type UserLessonRepository interface {
	GetOrCreate(userID, userSubjectID, lessonID uint) (*model.UserLesson, error)
	FindByIDForUserSubject(id, userSubjectID uint) (*model.UserLesson, error)
	FindAllByUserSubject(userSubjectID uint) ([]model.UserLesson, error)
	FindAllByChapter(userSubjectID, chapterID uint) ([]model.UserLesson, error)
	Save(userLesson *model.UserLesson) error
}

type userLessonRepository struct {
	db *gorm.DB
}

func NewUserLessonRepository(db *gorm.DB) UserLessonRepository {
	return &userLessonRepository{db: db}
}

func (r *userLessonRepository) GetOrCreate(userID, userSubjectID, lessonID uint) (*model.UserLesson, error) {
	var ul model.UserLesson
	err := r.db.
		Where(model.UserLesson{UserID: userID, UserSubjectID: userSubjectID, LessonID: lessonID}).
		Attrs(model.UserLesson{Status: model.LessonNotStarted}).
		FirstOrCreate(&ul).Error
	return &ul, err
}

func (r *userLessonRepository) FindByIDForUserSubject(id, userSubjectID uint) (*model.UserLesson, error) {
	var ul model.UserLesson
	err := r.db.
		Preload("Lesson").
		Where("id = ? AND user_subject_id = ?", id, userSubjectID).
		First(&ul).Error
	return &ul, err
}

func (r *userLessonRepository) FindAllByUserSubject(userSubjectID uint) ([]model.UserLesson, error) {
	var lessons []model.UserLesson
	err := r.db.
		Preload("Lesson").
		Joins("JOIN lessons ON lessons.id = user_lessons.lesson_id").
		Where("user_lessons.user_subject_id = ?", userSubjectID).
		Order("lessons.\"order\" ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *userLessonRepository) FindAllByChapter(userSubjectID, chapterID uint) ([]model.UserLesson, error) {
	var lessons []model.UserLesson
	err := r.db.
		Preload("Lesson").
		Joins("JOIN lessons ON lessons.id = user_lessons.lesson_id").
		Where("user_lessons.user_subject_id = ? AND lessons.chapter_id = ?", userSubjectID, chapterID).
		Order("lessons.\"order\" ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *userLessonRepository) Save(userLesson *model.UserLesson) error {
	return r.db.Save(userLesson).Error
}
