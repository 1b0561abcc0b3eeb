package service

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound marks lookups for records that do not exist or do not belong to
// the requesting student. Controllers map it to a 404.
var ErrNotFound = errors.New("not found")

// ErrEmptyLesson rejects starting or finishing a lesson that has no tasks.
var ErrEmptyLesson = errors.New("lesson has no tasks")

// ErrEmptySubject rejects enrolling into a subject without chapters or lessons.
var ErrEmptySubject = errors.New("subject has no chapters or lessons")

// ErrInvalidTaskContent rejects task creation whose nested content does not
// match the declared task type.
var ErrInvalidTaskContent = errors.New("task content does not match its type")

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
