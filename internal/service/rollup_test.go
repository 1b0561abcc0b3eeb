package service

import (
	"testing"

	"github.com/sabaqhub/sabaq/internal/model"
)

func TestLessonRollupEchoesRating(t *testing.T) {
	rating, percentage := lessonRollup(17.4)
	if rating != 17.4 {
		t.Fatalf("expected rating 17.4, got %v", rating)
	}
	if percentage != 17 {
		t.Fatalf("expected percentage 17, got %v", percentage)
	}
}

func TestChapterRollupAveragesAllLessons(t *testing.T) {
	lessons := []model.UserLesson{
		{Rating: 10, IsCompleted: true},
		{Rating: 5, IsCompleted: true},
		{Rating: 0, IsCompleted: false},
	}
	rating, percentage, completed := chapterRollup(lessons)
	if rating != 5 {
		t.Fatalf("expected rating 5, got %d", rating)
	}
	if percentage != 66.67 {
		t.Fatalf("expected percentage 66.67, got %v", percentage)
	}
	if completed {
		t.Fatal("chapter must not complete with an unfinished lesson")
	}
}

func TestChapterRollupEmpty(t *testing.T) {
	rating, percentage, completed := chapterRollup(nil)
	if rating != 0 || percentage != 0 || completed {
		t.Fatalf("empty chapter must roll up to zero, got %d %v %v", rating, percentage, completed)
	}
}

func TestChapterRollupAllFinished(t *testing.T) {
	lessons := []model.UserLesson{
		{Rating: 8, IsCompleted: true},
		{Rating: 9, IsCompleted: true},
	}
	rating, percentage, completed := chapterRollup(lessons)
	if rating != 9 {
		t.Fatalf("expected rating 9 (8.5 rounds up), got %d", rating)
	}
	if percentage != 100 {
		t.Fatalf("expected percentage 100, got %v", percentage)
	}
	if !completed {
		t.Fatal("chapter with every lesson finished must complete")
	}
}

func TestSubjectRollupSpansAllLessons(t *testing.T) {
	chapters := []model.UserChapter{{Rating: 10}, {Rating: 7}}
	lessons := []model.UserLesson{
		{IsCompleted: true},
		{IsCompleted: true},
		{IsCompleted: false},
		{IsCompleted: false},
	}
	rating, percentage, completed := subjectRollup(chapters, lessons)
	if rating != 9 {
		t.Fatalf("expected rating 9 (8.5 rounds up), got %d", rating)
	}
	if percentage != 50 {
		t.Fatalf("expected percentage 50, got %v", percentage)
	}
	if completed {
		t.Fatal("subject must not complete with unfinished lessons")
	}
}

func TestSubjectRollupCompletes(t *testing.T) {
	chapters := []model.UserChapter{{Rating: 6}}
	lessons := []model.UserLesson{{IsCompleted: true}}
	rating, percentage, completed := subjectRollup(chapters, lessons)
	if rating != 6 || percentage != 100 || !completed {
		t.Fatalf("expected 6/100/completed, got %d %v %v", rating, percentage, completed)
	}
}

func TestSubjectRollupNoLessons(t *testing.T) {
	_, percentage, completed := subjectRollup([]model.UserChapter{{Rating: 4}}, nil)
	if percentage != 0 || completed {
		t.Fatalf("subject with no lessons must stay at 0/incomplete, got %v %v", percentage, completed)
	}
}

// Rerunning the rollup over an unchanged state yields the same numbers.
func TestRollupIdempotent(t *testing.T) {
	lessons := []model.UserLesson{
		{Rating: 7.5, IsCompleted: true},
		{Rating: 2, IsCompleted: false},
	}
	r1, p1, c1 := chapterRollup(lessons)
	r2, p2, c2 := chapterRollup(lessons)
	if r1 != r2 || p1 != p2 || c1 != c2 {
		t.Fatalf("rollup not idempotent: (%d %v %v) vs (%d %v %v)", r1, p1, c1, r2, p2, c2)
	}
}
