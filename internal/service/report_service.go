package service

import (
	"github.com/sabaqhub/sabaq/internal/dto"
	"github.com/sabaqhub/sabaq/internal/model"
	"gorm.io/gorm"
)

// ReportService aggregates progress numbers across a teacher's subjects for
// the teacher dashboard.
type ReportService interface {
	GetTeacherReport(ownerID uint) (*dto.TeacherReportDTO, error)
}

type reportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) ReportService {
	return &reportService{db: db}
}

// levelAverages scans one AVG(rating)/AVG(percentage) pair.
type levelAverages struct {
	AvgRating     float64
	AvgPercentage float64
}

func (s *reportService) GetTeacherReport(ownerID uint) (*dto.TeacherReportDTO, error) {
	var subjects []model.Subject
	if err := s.db.Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&subjects).Error; err != nil {
		return nil, err
	}

	out := &dto.TeacherReportDTO{SubjectsCount: len(subjects)}
	subjectIDs := make([]uint, 0, len(subjects))
	for i := range subjects {
		subjectIDs = append(subjectIDs, subjects[i].ID)

		report := dto.SubjectReportDTO{SubjectID: subjects[i].ID, Name: subjects[i].Name}

		var count int64
		if err := s.db.Model(&model.UserSubject{}).
			Where("subject_id = ?", subjects[i].ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		report.StudentCount = int(count)

		var subjectAvg levelAverages
		if err := s.db.Model(&model.UserSubject{}).
			Where("subject_id = ?", subjects[i].ID).
			Select("COALESCE(AVG(rating), 0) AS avg_rating, COALESCE(AVG(percentage), 0) AS avg_percentage").
			Scan(&subjectAvg).Error; err != nil {
			return nil, err
		}
		report.SubjectAvgRating = round2(subjectAvg.AvgRating)
		report.SubjectAvgPercentage = round2(subjectAvg.AvgPercentage)

		var chapterAvg levelAverages
		if err := s.db.Model(&model.UserChapter{}).
			Joins("JOIN user_subjects ON user_subjects.id = user_chapters.user_subject_id").
			Where("user_subjects.subject_id = ?", subjects[i].ID).
			Select("COALESCE(AVG(user_chapters.rating), 0) AS avg_rating, COALESCE(AVG(user_chapters.percentage), 0) AS avg_percentage").
			Scan(&chapterAvg).Error; err != nil {
			return nil, err
		}
		report.ChapterAvgRating = round2(chapterAvg.AvgRating)
		report.ChapterAvgPercentage = round2(chapterAvg.AvgPercentage)

		var lessonAvg levelAverages
		if err := s.db.Model(&model.UserLesson{}).
			Joins("JOIN user_subjects ON user_subjects.id = user_lessons.user_subject_id").
			Where("user_subjects.subject_id = ?", subjects[i].ID).
			Select("COALESCE(AVG(user_lessons.rating), 0) AS avg_rating, COALESCE(AVG(user_lessons.percentage), 0) AS avg_percentage").
			Scan(&lessonAvg).Error; err != nil {
			return nil, err
		}
		report.LessonAvgRating = round2(lessonAvg.AvgRating)
		report.LessonAvgPercentage = round2(lessonAvg.AvgPercentage)

		out.Subjects = append(out.Subjects, report)
	}

	if len(subjectIDs) == 0 {
		return out, nil
	}

	var userIDs []uint
	if err := s.db.Model(&model.UserSubject{}).
		Where("subject_id IN ?", subjectIDs).
		Distinct().
		Order("user_id ASC").
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, err
	}
	out.StudentsCount = len(userIDs)

	for _, userID := range userIDs {
		student := dto.StudentReportDTO{UserID: userID}

		var subjectAvg levelAverages
		if err := s.db.Model(&model.UserSubject{}).
			Where("user_id = ? AND subject_id IN ?", userID, subjectIDs).
			Select("COALESCE(AVG(rating), 0) AS avg_rating, COALESCE(AVG(percentage), 0) AS avg_percentage").
			Scan(&subjectAvg).Error; err != nil {
			return nil, err
		}
		student.SubjectAvgRating = round2(subjectAvg.AvgRating)
		student.SubjectAvgPercentage = round2(subjectAvg.AvgPercentage)

		var chapterAvg levelAverages
		if err := s.db.Model(&model.UserChapter{}).
			Joins("JOIN user_subjects ON user_subjects.id = user_chapters.user_subject_id").
			Where("user_chapters.user_id = ? AND user_subjects.subject_id IN ?", userID, subjectIDs).
			Select("COALESCE(AVG(user_chapters.rating), 0) AS avg_rating, COALESCE(AVG(user_chapters.percentage), 0) AS avg_percentage").
			Scan(&chapterAvg).Error; err != nil {
			return nil, err
		}
		student.ChapterAvgRating = round2(chapterAvg.AvgRating)
		student.ChapterAvgPercentage = round2(chapterAvg.AvgPercentage)

		var lessonAvg levelAverages
		if err := s.db.Model(&model.UserLesson{}).
			Joins("JOIN user_subjects ON user_subjects.id = user_lessons.user_subject_id").
			Where("user_lessons.user_id = ? AND user_subjects.subject_id IN ?", userID, subjectIDs).
			Select("COALESCE(AVG(user_lessons.rating), 0) AS avg_rating, COALESCE(AVG(user_lessons.percentage), 0) AS avg_percentage").
			Scan(&lessonAvg).Error; err != nil {
			return nil, err
		}
		student.LessonAvgRating = round2(lessonAvg.AvgRating)
		student.LessonAvgPercentage = round2(lessonAvg.AvgPercentage)

		out.Students = append(out.Students, student)
	}
	return out, nil
}
