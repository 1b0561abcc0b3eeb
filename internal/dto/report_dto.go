package dto

// Teacher-side aggregate views.

type SubjectReportDTO struct {
	SubjectID            uint    `json:"subject_id"`
	Name                 string  `json:"name"`
	StudentCount         int     `json:"student_count"`
	SubjectAvgRating     float64 `json:"subject_avg_rating"`
	SubjectAvgPercentage float64 `json:"subject_avg_percentage"`
	ChapterAvgRating     float64 `json:"chapter_avg_rating"`
	ChapterAvgPercentage float64 `json:"chapter_avg_percentage"`
	LessonAvgRating      float64 `json:"lesson_avg_rating"`
	LessonAvgPercentage  float64 `json:"lesson_avg_percentage"`
}

type StudentReportDTO struct {
	UserID               uint    `json:"user_id"`
	SubjectAvgRating     float64 `json:"subject_avg_rating"`
	SubjectAvgPercentage float64 `json:"subject_avg_percentage"`
	ChapterAvgRating     float64 `json:"chapter_avg_rating"`
	ChapterAvgPercentage float64 `json:"chapter_avg_percentage"`
	LessonAvgRating      float64 `json:"lesson_avg_rating"`
	LessonAvgPercentage  float64 `json:"lesson_avg_percentage"`
}

type TeacherReportDTO struct {
	SubjectsCount int                `json:"subjects_count"`
	StudentsCount int                `json:"students_count"`
	Subjects      []SubjectReportDTO `json:"subjects"`
	Students      []StudentReportDTO `json:"students"`
}
