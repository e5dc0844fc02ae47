package mocktest

import (
	"fmt"

	"github.com/aniketpandey04/EduTrak-AI/core/question"
)

// Marking is the negative marking scheme. Wrong is usually negative.
type Marking struct {
	Correct int `json:"correct" validate:"gt=0"`
	Wrong   int `json:"wrong" validate:"lte=0"`
}

var DefaultMarking = Marking{Correct: 4, Wrong: -1}

func (m Marking) String() string {
	return fmt.Sprintf("%+d/%+d", m.Correct, m.Wrong)
}

type QuestionStatus int

const (
	NotAttempted QuestionStatus = iota
	Marked
	Answered
	AnsweredAndMarked
)

func (st QuestionStatus) String() string {
	switch st {
	case AnsweredAndMarked:
		return "answered-marked"
	case Answered:
		return "answered"
	case Marked:
		return "marked"
	case NotAttempted:
		return "not-attempted"
	}
	return "unknown"
}

// StatusCounts are the palette legend numbers.
type StatusCounts struct {
	Answered          int `json:"answered"`
	AnsweredAndMarked int `json:"answered_marked"`
	Marked            int `json:"marked"`
	NotAttempted      int `json:"not_attempted"`
	Bookmarked        int `json:"bookmarked"`
}

type Progress struct {
	Attempted int     `json:"attempted"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

type Result struct {
	Score       int     `json:"score"`
	MaxScore    int     `json:"max_score"`
	Correct     int     `json:"correct"`
	Wrong       int     `json:"wrong"`
	Unattempted int     `json:"unattempted"`
	Accuracy    float64 `json:"accuracy"`
	TimeUsed    int     `json:"time_used"` // seconds
}

func status(answers map[int]int, review map[int]bool, idx int) QuestionStatus {
	_, answered := answers[idx]
	marked := review[idx]
	switch {
	case answered && marked:
		return AnsweredAndMarked
	case answered:
		return Answered
	case marked:
		return Marked
	default:
		return NotAttempted
	}
}

func countCorrect(questions []question.Question, answers map[int]int) (correct, wrong int) {
	for idx, opt := range answers {
		if idx < 0 || idx >= len(questions) {
			continue
		}
		if questions[idx].IsCorrect(opt) {
			correct++
		} else {
			wrong++
		}
	}
	return correct, wrong
}

func score(questions []question.Question, answers map[int]int, marking Marking) int {
	correct, wrong := countCorrect(questions, answers)
	return correct*marking.Correct + wrong*marking.Wrong
}

// accuracy is 0 when nothing was attempted.
func accuracy(questions []question.Question, answers map[int]int) float64 {
	correct, wrong := countCorrect(questions, answers)
	attempted := correct + wrong
	if attempted == 0 {
		return 0
	}
	return float64(correct) / float64(attempted) * 100
}

func progress(total int, answers map[int]int) Progress {
	p := Progress{Attempted: len(answers), Total: total}
	if total > 0 {
		p.Percent = float64(p.Attempted) / float64(total) * 100
	}
	return p
}

func statusCounts(total int, answers map[int]int, review, bookmarks map[int]bool) StatusCounts {
	var c StatusCounts
	for idx := 0; idx < total; idx++ {
		switch status(answers, review, idx) {
		case AnsweredAndMarked:
			c.AnsweredAndMarked++
		case Answered:
			c.Answered++
		case Marked:
			c.Marked++
		case NotAttempted:
			c.NotAttempted++
		}
	}
	c.Bookmarked = len(bookmarks)
	return c
}

func result(questions []question.Question, answers map[int]int, marking Marking, timeUsed int) Result {
	correct, wrong := countCorrect(questions, answers)
	return Result{
		Score:       correct*marking.Correct + wrong*marking.Wrong,
		MaxScore:    len(questions) * marking.Correct,
		Correct:     correct,
		Wrong:       wrong,
		Unattempted: len(questions) - correct - wrong,
		Accuracy:    accuracy(questions, answers),
		TimeUsed:    timeUsed,
	}
}

// FormatClock renders seconds as H:MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
