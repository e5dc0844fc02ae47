package question

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/aniketpandey04/EduTrak-AI/core"
)

type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

var (
	Difficulties = []Difficulty{Easy, Medium, Hard}

	ErrNotFound          = errors.New("question not found")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

func (d Difficulty) IsValid() bool {
	for _, diff := range Difficulties {
		if d == diff {
			return true
		}
	}
	return false
}

// ParseDifficulty is case-insensitive: "hard", "HARD" and "Hard" are all Hard.
func ParseDifficulty(s string) (Difficulty, error) {
	s = core.CleanString(s, true /* lower */)
	for _, diff := range Difficulties {
		if strings.ToLower(string(diff)) == s {
			return diff, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownDifficulty, "%q", s)
}

// Question is a read-only multiple choice question from the question bank.
type Question struct {
	ID               int        `json:"id" yaml:"id" validate:"gt=0"`
	Subject          string     `json:"subject" yaml:"subject" validate:"notblank"`
	Topic            string     `json:"topic" yaml:"topic" validate:"notblank"`
	Difficulty       Difficulty `json:"difficulty" yaml:"difficulty" validate:"difficulty"`
	Prompt           string     `json:"prompt" yaml:"prompt" validate:"notblank"`
	Options          []string   `json:"options" yaml:"options" validate:"min=2,dive,notblank"`
	CorrectOption    int        `json:"correct_option" yaml:"correct_option" validate:"gte=0"`
	Explanation      string     `json:"explanation" yaml:"explanation"`
	DetailedSolution string     `json:"detailed_solution,omitempty" yaml:"detailed_solution,omitempty"`
	VideoID          string     `json:"video_id,omitempty" yaml:"video_id,omitempty"`
	TimeLimit        int        `json:"time_limit" yaml:"time_limit" validate:"gte=0"` // seconds
	Tags             []string   `json:"tags,omitempty" yaml:"tags,omitempty" validate:"omitempty,dive,tag"`
	PreviousYear     bool       `json:"previous_year,omitempty" yaml:"previous_year,omitempty"`
	ExamYear         string     `json:"exam_year,omitempty" yaml:"exam_year,omitempty" validate:"omitempty,numeric,len=4"`
	Related          []int      `json:"related,omitempty" yaml:"related,omitempty" validate:"omitempty,dive,gt=0"`
}

// Clone returns a copy of q that shares no slices with it.
func (q Question) Clone() Question {
	if q.Options != nil {
		q.Options = append([]string(nil), q.Options...)
	}
	if q.Tags != nil {
		q.Tags = append([]string(nil), q.Tags...)
	}
	if q.Related != nil {
		q.Related = append([]int(nil), q.Related...)
	}
	return q
}

// CloneAll deep-copies a list of questions.
func CloneAll(qs []Question) []Question {
	if qs == nil {
		return nil
	}
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}

func (q Question) HasOption(idx int) bool {
	return idx >= 0 && idx < len(q.Options)
}

func (q Question) IsCorrect(selectedOption int) bool {
	return selectedOption == q.CorrectOption
}

func (q Question) HasVideo() bool {
	return q.VideoID != ""
}

func (q Question) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// OptionLetter returns "A" for 0, "B" for 1 ...
func OptionLetter(idx int) string {
	if idx < 0 || idx >= 26 {
		return "?"
	}
	return string(rune('A' + idx))
}

// Catalog is the on-disk layout of a question bank.
type Catalog struct {
	Title     string     `json:"title" yaml:"title"`
	ExamType  string     `json:"exam_type,omitempty" yaml:"exam_type,omitempty"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Repository supplies the question bank. Questions are returned in presentation order
// and must be treated as read-only by callers.
type Repository interface {
	ListQuestions(ctx context.Context) ([]Question, error)
}

// Finder is implemented by repositories that can look a single question up.
type Finder interface {
	GetQuestion(ctx context.Context, id int) (Question, error)
}

// Filter selects questions of a bank. Empty fields match everything;
// non-empty fields are AND-ed, values within a field are OR-ed.
type Filter struct {
	Subjects         []string     `json:"subjects,omitempty"`
	Difficulties     []Difficulty `json:"difficulties,omitempty" validate:"omitempty,dive,difficulty"`
	Tags             []string     `json:"tags,omitempty"`
	PreviousYearOnly bool         `json:"previous_year_only,omitempty"`
}

func (f Filter) IsEmpty() bool {
	return len(f.Subjects) == 0 && len(f.Difficulties) == 0 && len(f.Tags) == 0 && !f.PreviousYearOnly
}

func (f Filter) Match(q Question) bool {
	if f.PreviousYearOnly && !q.PreviousYear {
		return false
	}
	if len(f.Subjects) > 0 {
		var ok bool
		for _, subj := range f.Subjects {
			if strings.EqualFold(core.CleanString(subj), q.Subject) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(f.Difficulties) > 0 {
		var ok bool
		for _, diff := range f.Difficulties {
			if diff == q.Difficulty {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(f.Tags) > 0 {
		var ok bool
		for _, tag := range f.Tags {
			if q.HasTag(core.CleanString(tag)) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Apply returns the matching questions, keeping their order.
func (f Filter) Apply(questions []Question) []Question {
	if f.IsEmpty() {
		return questions
	}
	matched := make([]Question, 0, len(questions))
	for _, q := range questions {
		if f.Match(q) {
			matched = append(matched, q)
		}
	}
	return matched
}

// FindByID returns the index of the question with the given ID.
func FindByID(questions []Question, id int) (int, error) {
	for i, q := range questions {
		if q.ID == id {
			return i, nil
		}
	}
	return -1, ErrNotFound
}
