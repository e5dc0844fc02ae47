package mocktest

import (
	"sync"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/aniketpandey04/EduTrak-AI/core/question"
)

// SessionParams contains information needed to create a new Session.
type SessionParams struct {
	ID              string
	ExamType        string
	Questions       []question.Question
	DurationSeconds int
	Marking         Marking
}

// Solution is what the solutions panel shows for one question.
type Solution struct {
	Index    int
	Question question.Question
	Selected int // -1 when not attempted
	Correct  bool
}

func (sol Solution) Attempted() bool { return sol.Selected >= 0 }

// Session owns the state of one mock test attempt.
// Its methods are the only writers; readers take a Snapshot.
type Session struct {
	id        string
	examType  string
	questions []question.Question
	duration  int
	marking   Marking

	mu        sync.Mutex
	mode      ViewMode
	current   int
	answers   map[int]int
	review    map[int]bool
	bookmarks map[int]bool
	ratings   map[int]int
	remaining int

	halt     chan struct{} // closed when the clock may no longer run
	haltOnce sync.Once
}

func NewSession(p SessionParams) (*Session, error) {
	if len(p.Questions) == 0 {
		return nil, ErrEmptyBank
	}
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(p.ID, "ID"),
		vala.GreaterThan(p.DurationSeconds, 0, "DurationSeconds"),
	).Check(); err != nil {
		return nil, err
	}
	if p.Marking == (Marking{}) {
		p.Marking = DefaultMarking
	}

	questions := question.CloneAll(p.Questions)

	s := &Session{
		id:        p.ID,
		examType:  p.ExamType,
		questions: questions,
		duration:  p.DurationSeconds,
		marking:   p.Marking,
		mode:      NotStarted,
		remaining: p.DurationSeconds,
		halt:      make(chan struct{}),
	}
	s.reset()
	return s, nil
}

func (s *Session) ID() string           { return s.id }
func (s *Session) ExamType() string     { return s.examType }
func (s *Session) QuestionCount() int   { return len(s.questions) }
func (s *Session) DurationSeconds() int { return s.duration }
func (s *Session) Marking() Marking     { return s.marking }

func (s *Session) Mode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Completed reports whether the attempt has been submitted.
func (s *Session) Completed() bool {
	return s.Mode().Finished()
}

// Halted is closed once the session left Running for good, or was exited.
func (s *Session) Halted() <-chan struct{} {
	return s.halt
}

func (s *Session) reset() {
	s.current = 0
	s.answers = make(map[int]int)
	s.review = make(map[int]bool)
	s.bookmarks = make(map[int]bool)
	s.ratings = make(map[int]int)
	s.remaining = s.duration
}

func (s *Session) stopClock() {
	s.haltOnce.Do(func() { close(s.halt) })
}

func (s *Session) requireMode(op string, allowed func(ViewMode) bool) error {
	if !allowed(s.mode) {
		return &StateError{Op: op, Mode: s.mode}
	}
	return nil
}

func (s *Session) checkQuestion(idx int) error {
	if idx < 0 || idx >= len(s.questions) {
		return &OutOfRangeError{Kind: KindQuestion, Index: idx, Limit: len(s.questions)}
	}
	return nil
}

// Transitions

// Start begins a timed test (Running) or an untimed practice (PracticeMode).
func (s *Session) Start(timed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != NotStarted {
		return &StateError{Op: "start", Mode: s.mode}
	}
	s.reset()
	if timed {
		s.mode = Running
	} else {
		s.mode = PracticeMode
		s.stopClock() // practice is untimed
	}
	return nil
}

// Tick advances the clock by one second. When the time runs out the test is submitted.
// It returns false, and changes nothing, outside Running.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != Running {
		return false
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining == 0 {
		s.mode = Completed
		s.stopClock()
	}
	return true
}

func (s *Session) Submit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireMode("submit", ViewMode.Answering); err != nil {
		return err
	}
	s.mode = Completed
	s.stopClock()
	return nil
}

// RevealSolutions is idempotent once solutions are shown.
func (s *Session) RevealSolutions() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.mode {
	case Completed:
		s.mode = ReviewingSolutions
		return nil
	case ReviewingSolutions:
		return nil
	}
	return &StateError{Op: "reveal solutions", Mode: s.mode}
}

// Exit tears the session down. It must not be used afterwards except for reads.
func (s *Session) Exit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = Exited
	s.stopClock()
}

// Answers & flags

func (s *Session) SelectAnswer(questionIdx, optionIdx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireMode("select answer", ViewMode.Answering); err != nil {
		return err
	}
	if err := s.checkQuestion(questionIdx); err != nil {
		return err
	}
	if n := len(s.questions[questionIdx].Options); optionIdx < 0 || optionIdx >= n {
		return &OutOfRangeError{Kind: KindOption, Index: optionIdx, Limit: n}
	}
	s.answers[questionIdx] = optionIdx
	return nil
}

// ClearAnswer makes the question unattempted again.
func (s *Session) ClearAnswer(questionIdx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireMode("clear answer", ViewMode.Answering); err != nil {
		return err
	}
	if err := s.checkQuestion(questionIdx); err != nil {
		return err
	}
	delete(s.answers, questionIdx)
	return nil
}

func (s *Session) toggle(op string, flags func(*Session) map[int]bool, questionIdx int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := flags(s)
	if err := s.requireMode(op, ViewMode.Answering); err != nil {
		return false, err
	}
	if err := s.checkQuestion(questionIdx); err != nil {
		return false, err
	}
	if set[questionIdx] {
		delete(set, questionIdx)
		return false, nil
	}
	set[questionIdx] = true
	return true, nil
}

// ToggleReview flips the "marked for review" flag and returns the new membership.
func (s *Session) ToggleReview(questionIdx int) (bool, error) {
	return s.toggle("toggle review", func(s *Session) map[int]bool { return s.review }, questionIdx)
}

// ToggleBookmark flips the bookmark flag and returns the new membership.
func (s *Session) ToggleBookmark(questionIdx int) (bool, error) {
	return s.toggle("toggle bookmark", func(s *Session) map[int]bool { return s.bookmarks }, questionIdx)
}

// Rate records a thumbs up (1) or down (-1) for a question; 0 clears it.
// Ratings are only accepted while solutions are visible.
func (s *Session) Rate(questionIdx, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireMode("rate question", ViewMode.SolutionsVisible); err != nil {
		return err
	}
	if err := s.checkQuestion(questionIdx); err != nil {
		return err
	}
	switch rating {
	case 0:
		delete(s.ratings, questionIdx)
	case -1, 1:
		s.ratings[questionIdx] = rating
	default:
		return ErrInvalidRating
	}
	return nil
}

// Navigation

func (s *Session) GoTo(questionIdx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireMode("go to question", ViewMode.Navigable); err != nil {
		return err
	}
	if err := s.checkQuestion(questionIdx); err != nil {
		return err
	}
	s.current = questionIdx
	return nil
}

// GoToQuestionID jumps to a question by its bank ID, e.g. a related question.
func (s *Session) GoToQuestionID(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireMode("go to question", ViewMode.Navigable); err != nil {
		return err
	}
	idx, err := question.FindByID(s.questions, id)
	if err != nil {
		return errors.Wrapf(err, "question id %d", id)
	}
	s.current = idx
	return nil
}

func (s *Session) step(op string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireMode(op, ViewMode.Navigable); err != nil {
		return err
	}
	next := s.current + delta
	if next < 0 || next >= len(s.questions) {
		return nil // bounded
	}
	s.current = next
	return nil
}

// Next moves forward; a no-op at the last question.
func (s *Session) Next() error { return s.step("next question", 1) }

// Previous moves back; a no-op at the first question.
func (s *Session) Previous() error { return s.step("previous question", -1) }

// Reads

func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

func (s *Session) Question(idx int) (question.Question, error) {
	if idx < 0 || idx >= len(s.questions) {
		return question.Question{}, &OutOfRangeError{Kind: KindQuestion, Index: idx, Limit: len(s.questions)}
	}
	return s.questions[idx].Clone(), nil
}

func (s *Session) Solution(questionIdx int) (Solution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireMode("show solution", ViewMode.SolutionsVisible); err != nil {
		return Solution{}, err
	}
	if err := s.checkQuestion(questionIdx); err != nil {
		return Solution{}, err
	}
	q := s.questions[questionIdx].Clone()
	sol := Solution{Index: questionIdx, Question: q, Selected: -1}
	if opt, ok := s.answers[questionIdx]; ok {
		sol.Selected = opt
		sol.Correct = q.IsCorrect(opt)
	}
	return sol, nil
}

func (s *Session) Status(questionIdx int) (QuestionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkQuestion(questionIdx); err != nil {
		return NotAttempted, err
	}
	return status(s.answers, s.review, questionIdx), nil
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return score(s.questions, s.answers, s.marking)
}

// Accuracy is the percentage of attempted questions answered correctly; 0 when none were attempted.
func (s *Session) Accuracy() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return accuracy(s.questions, s.answers)
}

func (s *Session) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return result(s.questions, s.answers, s.marking, s.duration-s.remaining)
}

// Snapshot returns an immutable copy of the state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:              s.id,
		ExamType:        s.examType,
		Mode:            s.mode,
		Current:         s.current,
		Remaining:       s.remaining,
		Duration:        s.duration,
		Marking:         s.marking,
		Answers:         copyInts(s.answers),
		MarkedForReview: copyFlags(s.review),
		Bookmarked:      copyFlags(s.bookmarks),
		Ratings:         copyInts(s.ratings),
		questions:       s.questions,
	}
}

func copyInts(m map[int]int) map[int]int {
	cp := make(map[int]int, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

func copyFlags(m map[int]bool) map[int]bool {
	cp := make(map[int]bool, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
