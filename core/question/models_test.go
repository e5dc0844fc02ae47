package question_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniketpandey04/EduTrak-AI/core/question"
	"github.com/aniketpandey04/EduTrak-AI/tests"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		s       string
		want    question.Difficulty
		wantErr bool
	}{
		{s: "Easy", want: question.Easy},
		{s: " medium ", want: question.Medium},
		{s: "HARD", want: question.Hard},
		{s: "insane", wantErr: true},
		{s: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			got, err := question.ParseDifficulty(tt.s)
			if tt.wantErr {
				assert.ErrorIs(t, err, question.ErrUnknownDifficulty)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuestion_helpers(t *testing.T) {
	q := testutil.SampleQuestions()[1]
	assert.True(t, q.HasOption(3))
	assert.False(t, q.HasOption(4))
	assert.False(t, q.HasOption(-1))
	assert.True(t, q.IsCorrect(1))
	assert.False(t, q.IsCorrect(0))
	assert.True(t, q.HasVideo())
	assert.True(t, q.HasTag("Kinematics"))
	assert.False(t, q.HasTag("optics"))
	assert.False(t, testutil.SampleQuestions()[2].HasVideo())
}

func TestQuestion_Clone(t *testing.T) {
	q := testutil.SampleQuestions()[0]
	cp := q.Clone()
	require.Equal(t, q, cp)

	cp.Options[0] = "changed"
	cp.Tags[0] = "changed"
	cp.Related[0] = 99
	assert.Equal(t, "3x² + 4x - 5", q.Options[0])
	assert.Equal(t, "power-rule", q.Tags[0])
	assert.Equal(t, 2, q.Related[0])

	assert.Nil(t, question.Question{}.Clone().Tags)
	assert.Nil(t, question.CloneAll(nil))
}

func TestOptionLetter(t *testing.T) {
	assert.Equal(t, "A", question.OptionLetter(0))
	assert.Equal(t, "D", question.OptionLetter(3))
	assert.Equal(t, "Z", question.OptionLetter(25))
	assert.Equal(t, "?", question.OptionLetter(26))
	assert.Equal(t, "?", question.OptionLetter(-1))
}

func TestFilter(t *testing.T) {
	qs := testutil.SampleQuestions()

	tests := []struct {
		name    string
		filter  question.Filter
		wantIDs []int
	}{
		{name: "empty", wantIDs: []int{1, 2, 3}},
		{name: "subject, case insensitive", filter: question.Filter{Subjects: []string{" chemistry", "PHYSICS"}}, wantIDs: []int{2, 3}},
		{name: "difficulty", filter: question.Filter{Difficulties: []question.Difficulty{question.Medium}}, wantIDs: []int{1}},
		{name: "tag", filter: question.Filter{Tags: []string{"iupac", "energy"}}, wantIDs: []int{2, 3}},
		{name: "previous year", filter: question.Filter{PreviousYearOnly: true}, wantIDs: []int{1, 2}},
		{
			name:    "fields are and-ed",
			filter:  question.Filter{Subjects: []string{"Physics", "Chemistry"}, PreviousYearOnly: true},
			wantIDs: []int{2},
		},
		{name: "no match", filter: question.Filter{Subjects: []string{"Biology"}}, wantIDs: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []int{}
			for _, q := range tt.filter.Apply(qs) {
				ids = append(ids, q.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.name == "empty", tt.filter.IsEmpty())
		})
	}
}

func TestFindByID(t *testing.T) {
	qs := testutil.SampleQuestions()
	idx, err := question.FindByID(qs, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	idx, err = question.FindByID(qs, 4)
	assert.ErrorIs(t, err, question.ErrNotFound)
	assert.Equal(t, -1, idx)
}
