package service

import (
	"github.com/jinzhu/copier"
	"github.com/sabaqhub/sabaq/internal/dto"
	"github.com/sabaqhub/sabaq/internal/model"
)

// Model-to-DTO mapping. copier covers the like-named scalar fields; names
// pulled from preloaded relations and typed enums are set explicitly.

func toSubjectSummaryDTO(s *model.Subject) dto.SubjectSummaryDTO {
	var d dto.SubjectSummaryDTO
	copier.Copy(&d, s)
	return d
}

func toUserSubjectDTO(us *model.UserSubject) dto.UserSubjectDTO {
	var d dto.UserSubjectDTO
	copier.Copy(&d, us)
	d.Name = us.Subject.Name
	return d
}

func toUserChapterDTO(uc *model.UserChapter) dto.UserChapterDTO {
	var d dto.UserChapterDTO
	copier.Copy(&d, uc)
	d.Name = uc.Chapter.Name
	return d
}

func toUserLessonDTO(ul *model.UserLesson) dto.UserLessonDTO {
	var d dto.UserLessonDTO
	copier.Copy(&d, ul)
	d.Title = ul.Lesson.Title
	d.Status = string(ul.Status)
	return d
}

func toUserTaskDTO(ut *model.UserTask) dto.UserTaskDTO {
	var d dto.UserTaskDTO
	copier.Copy(&d, ut)
	d.TaskType = string(ut.Task.TaskType)
	d.MaxRating = ut.Task.Rating
	d.Duration = ut.Task.Duration
	d.Order = ut.Task.Order
	return d
}

func toTaskResponseDTO(t *model.Task) dto.TaskResponseDTO {
	var d dto.TaskResponseDTO
	copier.Copy(&d, t)
	d.TaskType = string(t.TaskType)
	return d
}
