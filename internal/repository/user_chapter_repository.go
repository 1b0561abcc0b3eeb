package repository

import (
	"github.com/sabaqhub/sabaq/internal/model"
	"gorm.io/gorm"
)

type UserChapterRepository interface {
	GetOrCreate(userID, userSubjectID, chapterID uint) (*model.UserChapter, error)
	FindByUserSubjectAndChapter(userSubjectID, chapterID uint) (*model.UserChapter, error)
	FindAllByUserSubject(userSubjectID uint) ([]model.UserChapter, error)
	Save(userChapter *model.UserChapter) error
}

type userChapterRepository struct {
	db *gorm.DB
}

func NewUserChapterRepository(db *gorm.DB) UserChapterRepository {
	return &userChapterRepository{db: db}
}

func (r *userChapterRepository) GetOrCreate(userID, userSubjectID, chapterID uint) (*model.UserChapter, error) {
	var uc model.UserChapter
	err := r.db.
		Where(model.UserChapter{UserID: userID, UserSubjectID: userSubjectID, ChapterID: chapterID}).
		FirstOrCreate(&uc).Error
	return &uc, err
}

func (r *userChapterRepository) FindByUserSubjectAndChapter(userSubjectID, chapterID uint) (*model.UserChapter, error) {
	var uc model.UserChapter
	err := r.db.
		Preload("Chapter").
		Where("user_subject_id = ? AND chapter_id = ?", userSubjectID, chapterID).
		First(&uc).Error
	return &uc, err
}

func (r *userChapterRepository) FindAllByUserSubject(userSubjectID uint) ([]model.UserChapter, error) {
	var chapters []model.UserChapter
	err := r.db.
		Preload("Chapter").
		Joins("JOIN chapters ON chapters.id = user_chapters.chapter_id").
		Where("user_chapters.user_subject_id = ?", userSubjectID).
		Order("chapters.\"order\" ASC").
		Find(&chapters).Error
	return chapters, err
}

func (r *userChapterRepository) Save(userChapter *model.UserChapter) error {
	return r.db.Save(userChapter).Error
}
