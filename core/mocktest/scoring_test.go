package mocktest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aniketpandey04/EduTrak-AI/tests"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{seconds: 0, want: "0:00:00"},
		{seconds: 59, want: "0:00:59"},
		{seconds: 61, want: "0:01:01"},
		{seconds: 3600, want: "1:00:00"},
		{seconds: 180 * 60, want: "3:00:00"},
		{seconds: 10799, want: "2:59:59"},
		{seconds: -5, want: "0:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClock(tt.seconds))
		})
	}
}

func TestQuestionStatus_String(t *testing.T) {
	assert.Equal(t, "not-attempted", NotAttempted.String())
	assert.Equal(t, "marked", Marked.String())
	assert.Equal(t, "answered", Answered.String())
	assert.Equal(t, "answered-marked", AnsweredAndMarked.String())
	assert.Equal(t, "unknown", QuestionStatus(42).String())
}

func TestMarking_String(t *testing.T) {
	assert.Equal(t, "+4/-1", DefaultMarking.String())
	assert.Equal(t, "+3/+0", Marking{Correct: 3}.String())
}

func Test_statusCounts(t *testing.T) {
	answers := map[int]int{0: 1, 3: 0}
	review := map[int]bool{3: true, 4: true}
	bookmarks := map[int]bool{1: true, 2: true}

	c := statusCounts(5, answers, review, bookmarks)
	assert.Equal(t, StatusCounts{Answered: 1, AnsweredAndMarked: 1, Marked: 1, NotAttempted: 2, Bookmarked: 2}, c)
	assert.Equal(t, 5, c.Answered+c.AnsweredAndMarked+c.Marked+c.NotAttempted, "categories are disjoint")
}

func Test_progress(t *testing.T) {
	assert.Equal(t, Progress{}, progress(0, nil))
	assert.Equal(t, Progress{Attempted: 1, Total: 4, Percent: 25}, progress(4, map[int]int{2: 0}))
}

func Test_countCorrect_ignoresUnknownIndices(t *testing.T) {
	correct, wrong := countCorrect(testutil.SampleQuestions(), map[int]int{0: 0, 7: 1})
	assert.Equal(t, 1, correct)
	assert.Equal(t, 0, wrong)
}
