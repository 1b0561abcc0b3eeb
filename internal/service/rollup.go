package service

import (
	"math"

	"github.com/sabaqhub/sabaq/internal/model"
)

// Rollup math, kept pure so the finish-lesson transaction only sequences
// reads and writes. Every division guards against empty inputs by reporting 0.

// lessonRollup turns the summed task ratings into the lesson's rating and
// percentage. The percentage at this level echoes the rating, rounded.
func lessonRollup(totalTaskRating float64) (rating float64, percentage float64) {
	return totalTaskRating, math.Round(totalTaskRating)
}

// chapterRollup averages the chapter's lesson ratings (finished or not) and
// derives completion from the finished-lesson count.
func chapterRollup(lessons []model.UserLesson) (rating uint, percentage float64, completed bool) {
	total := len(lessons)
	if total == 0 {
		return 0, 0, false
	}
	sum := 0.0
	done := 0
	for _, l := range lessons {
		sum += l.Rating
		if l.IsCompleted {
			done++
		}
	}
	rating = uint(math.Round(sum / float64(total)))
	percentage = round2(float64(done) / float64(total) * 100)
	completed = done == total
	return rating, percentage, completed
}

// subjectRollup averages chapter ratings for the subject rating; the subject
// percentage is computed over every lesson of the subject, not per chapter.
func subjectRollup(chapters []model.UserChapter, lessons []model.UserLesson) (rating uint, percentage float64, completed bool) {
	if len(chapters) > 0 {
		sum := 0.0
		for _, c := range chapters {
			sum += float64(c.Rating)
		}
		rating = uint(math.Round(sum / float64(len(chapters))))
	}

	total := len(lessons)
	if total == 0 {
		return rating, 0, false
	}
	done := 0
	for _, l := range lessons {
		if l.IsCompleted {
			done++
		}
	}
	percentage = round2(float64(done) / float64(total) * 100)
	completed = done == total
	return rating, percentage, completed
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
