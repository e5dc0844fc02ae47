package mocktest

import (
	"sort"

	"github.com/aniketpandey04/EduTrak-AI/core/question"
)

// Snapshot is a point-in-time copy of a Session for the presentation layer.
// Mutating its maps has no effect on the session.
type Snapshot struct {
	ID              string
	ExamType        string
	Mode            ViewMode
	Current         int
	Remaining       int // seconds
	Duration        int // seconds
	Marking         Marking
	Answers         map[int]int
	MarkedForReview map[int]bool
	Bookmarked      map[int]bool
	Ratings         map[int]int

	questions []question.Question // shared, read-only
}

func (snap Snapshot) Completed() bool { return snap.Mode.Finished() }

func (snap Snapshot) QuestionCount() int { return len(snap.questions) }

func (snap Snapshot) Question(idx int) (question.Question, bool) {
	if idx < 0 || idx >= len(snap.questions) {
		return question.Question{}, false
	}
	return snap.questions[idx].Clone(), true
}

func (snap Snapshot) CurrentQuestion() question.Question {
	q, _ := snap.Question(snap.Current)
	return q
}

// Selected returns the chosen option for a question.
func (snap Snapshot) Selected(idx int) (int, bool) {
	opt, ok := snap.Answers[idx]
	return opt, ok
}

func (snap Snapshot) Status(idx int) QuestionStatus {
	return status(snap.Answers, snap.MarkedForReview, idx)
}

func (snap Snapshot) Statuses() []QuestionStatus {
	sts := make([]QuestionStatus, len(snap.questions))
	for i := range snap.questions {
		sts[i] = snap.Status(i)
	}
	return sts
}

func (snap Snapshot) StatusCounts() StatusCounts {
	return statusCounts(len(snap.questions), snap.Answers, snap.MarkedForReview, snap.Bookmarked)
}

func (snap Snapshot) Score() int { return score(snap.questions, snap.Answers, snap.Marking) }

func (snap Snapshot) Accuracy() float64 { return accuracy(snap.questions, snap.Answers) }

func (snap Snapshot) Progress() Progress { return progress(len(snap.questions), snap.Answers) }

// TimeUsed is the elapsed test time in seconds.
func (snap Snapshot) TimeUsed() int { return snap.Duration - snap.Remaining }

func (snap Snapshot) Result() Result {
	return result(snap.questions, snap.Answers, snap.Marking, snap.TimeUsed())
}

func (snap Snapshot) Clock() string { return FormatClock(snap.Remaining) }

// ReviewList returns the indices marked for review in ascending order.
func (snap Snapshot) ReviewList() []int { return sortedKeys(snap.MarkedForReview) }

// BookmarkList returns the bookmarked indices in ascending order.
func (snap Snapshot) BookmarkList() []int { return sortedKeys(snap.Bookmarked) }

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
