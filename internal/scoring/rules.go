package scoring

import (
	"math"
	"strings"

	"github.com/sabaqhub/sabaq/internal/model"
)

// ScoreVideo awards the full score once every sub-video is completed.
// Until then the task stays open; there is no partial credit and no failure.
func ScoreVideo(maxScore uint, sub Submission) Result {
	for _, v := range sub.Videos {
		if !v.Completed {
			return Result{Score: 0, Outcome: OutcomePartial, Completed: false}
		}
	}
	return Result{Score: float64(maxScore), Outcome: OutcomeAllCorrect, Completed: true}
}

// ScoreWritten marks sub-answers with text or an attached file as submitted.
// It never awards points and never completes the task: written work waits for
// manual review.
func ScoreWritten(maxScore uint, sub Submission) Result {
	submitted := make([]bool, len(sub.Written))
	for i, w := range sub.Written {
		submitted[i] = strings.TrimSpace(w.Text) != "" || w.FileRef != ""
	}
	return Result{Score: 0, Outcome: OutcomeWrittenSubmitted, Completed: false, Submitted: submitted}
}

// ScoreTextGap grades each blank by case-insensitive exact match.
func ScoreTextGap(maxScore uint, sub Submission) Result {
	total := len(sub.Gaps)
	correct := 0
	perGap := make([]bool, total)
	for i, g := range sub.Gaps {
		ok := strings.EqualFold(strings.TrimSpace(g.Given), strings.TrimSpace(g.Expected))
		perGap[i] = ok
		if ok {
			correct++
		}
	}
	incorrect := total - correct

	res := Result{Completed: true, Correct: perGap}
	switch {
	case correct == total:
		res.Score = float64(maxScore)
		res.Outcome = OutcomeAllCorrect
	case correct == 0:
		res.Score = 0
		res.Outcome = OutcomeAllWrong
	case incorrect == 1:
		res.Score = textGapHalf(maxScore)
		res.Outcome = OutcomePartial
	case float64(incorrect) >= float64(total)/2:
		res.Score = 0
		res.Outcome = OutcomePartial
	default:
		res.Score = textGapHalf(maxScore)
		res.Outcome = OutcomePartial
	}
	res.Score = clamp(res.Score, maxScore)
	return res
}

// textGapHalf is floor(max/2); a 1-point task has no meaningful half.
func textGapHalf(maxScore uint) float64 {
	if maxScore == 1 {
		return 0
	}
	return float64(maxScore / 2)
}

// ScoreTest evaluates test questions. Simple questions earn full credit only
// when exactly one option is selected and it is correct. Multiple questions
// earn partial credit: max(0, (correct_selected - wrong_selected) / |correct|).
// Selections must already be filtered to the question's own option ids.
// A submission with zero selections across the whole task is not graded at
// all: score 0, outcome no_answer, task left open.
func ScoreTest(maxScore uint, sub Submission) Result {
	answered := 0
	for _, q := range sub.Questions {
		answered += len(q.SelectedIDs)
	}
	if answered == 0 {
		return Result{Score: 0, Outcome: OutcomeNoAnswer, Completed: false}
	}

	totalCredit := 0.0
	for _, q := range sub.Questions {
		totalCredit += questionCredit(q)
	}

	ratio := totalCredit / float64(len(sub.Questions))
	res := Result{
		Score:     clamp(math.Round(float64(maxScore)*ratio), maxScore),
		Completed: true,
	}
	switch {
	case ratio >= 1:
		res.Outcome = OutcomeAllCorrect
	case ratio == 0:
		res.Outcome = OutcomeAllWrong
	default:
		res.Outcome = OutcomePartial
	}
	return res
}

func questionCredit(q TestQuestion) float64 {
	selected := make(map[uint]struct{}, len(q.SelectedIDs))
	for _, id := range q.SelectedIDs {
		selected[id] = struct{}{}
	}

	if q.Type == model.QuestionSimple {
		if len(selected) != 1 {
			return 0
		}
		for id := range selected {
			if _, ok := q.CorrectIDs[id]; ok {
				return 1
			}
		}
		return 0
	}

	// multiple
	if len(q.CorrectIDs) == 0 {
		return 0
	}
	correctSelected := 0
	wrongSelected := 0
	for id := range selected {
		if _, ok := q.CorrectIDs[id]; ok {
			correctSelected++
		} else {
			wrongSelected++
		}
	}
	credit := float64(correctSelected-wrongSelected) / float64(len(q.CorrectIDs))
	if credit < 0 {
		credit = 0
	}
	return credit
}

// ScoreMatching grades each item by comparing the selected column to the
// correct one. Half score is max/2 (kept fractional, rounded to 2 decimals);
// a task worth 1 point or less has no meaningful half.
func ScoreMatching(maxScore uint, sub Submission) Result {
	total := len(sub.Matches)
	correct := 0
	perItem := make([]bool, total)
	for i, m := range sub.Matches {
		ok := m.SelectedColumnID != nil && *m.SelectedColumnID == m.CorrectColumnID
		perItem[i] = ok
		if ok {
			correct++
		}
	}
	wrong := total - correct

	res := Result{Completed: true, Correct: perItem}
	switch {
	case wrong == 0:
		res.Score = float64(maxScore)
		res.Outcome = OutcomeAllCorrect
	case wrong == 1:
		res.Score = matchingHalf(maxScore)
		res.Outcome = OutcomePartial
	case float64(wrong) > float64(total)/2:
		res.Score = 0
		if correct == 0 {
			res.Outcome = OutcomeAllWrong
		} else {
			res.Outcome = OutcomePartial
		}
	default:
		res.Score = matchingHalf(maxScore)
		res.Outcome = OutcomePartial
	}
	res.Score = clamp(res.Score, maxScore)
	return res
}

func matchingHalf(maxScore uint) float64 {
	if maxScore <= 1 {
		return 0
	}
	return math.Round(float64(maxScore)/2*100) / 100
}

// ScoreTable grades every cell; an unchecked or missing form value counts as
// false. All correct earns the full score, at least half earns floor(max/2),
// anything less earns nothing.
func ScoreTable(maxScore uint, sub Submission) Result {
	total := len(sub.Cells)
	correct := 0
	for _, c := range sub.Cells {
		if c.Expected == c.Checked {
			correct++
		}
	}

	res := Result{Completed: true}
	switch {
	case correct == total:
		res.Score = float64(maxScore)
		res.Outcome = OutcomeAllCorrect
	case float64(correct) >= float64(total)*0.5:
		res.Score = float64(maxScore / 2)
		res.Outcome = OutcomePartial
	default:
		res.Score = 0
		if correct == 0 {
			res.Outcome = OutcomeAllWrong
		} else {
			res.Outcome = OutcomePartial
		}
	}
	res.Score = clamp(res.Score, maxScore)
	return res
}

func clamp(score float64, maxScore uint) float64 {
	if score < 0 {
		return 0
	}
	if score > float64(maxScore) {
		return float64(maxScore)
	}
	return score
}
