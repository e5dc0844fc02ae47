package mocktest

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/aniketpandey04/EduTrak-AI/core"
	"github.com/aniketpandey04/EduTrak-AI/core/question"
)

// Options describes the test to start.
type Options struct {
	ExamType        string          `json:"exam_type" validate:"notblank"`
	DurationSeconds int             `json:"duration_seconds" validate:"gt=0"`
	Limit           int             `json:"limit" validate:"gte=0"` // 0 means the whole bank
	Filter          question.Filter `json:"filter"`
	Marking         Marking         `json:"marking"`
}

func (opts *Options) Clean() {
	opts.ExamType = core.CleanString(opts.ExamType)
	opts.Filter.Subjects = core.CleanStrings(opts.Filter.Subjects)
	opts.Filter.Tags = core.CleanStrings(opts.Filter.Tags)
	if opts.Marking == (Marking{}) {
		opts.Marking = DefaultMarking
	}
}

// OptionsFromConfig returns the Options of the configured default test.
func OptionsFromConfig(conf *core.Config) Options {
	return Options{
		ExamType:        conf.MockTest.ExamType,
		DurationSeconds: conf.MockTest.Duration(),
		Limit:           conf.MockTest.QuestionLimit,
		Marking:         Marking{Correct: conf.Marking.Correct, Wrong: conf.Marking.Wrong},
	}
}

// Service creates sessions from the question bank.
type Service struct {
	repo       question.Repository
	validate   *validator.Validate
	translator ut.Translator
	logger     core.Logger
}

func NewService(repo question.Repository, validate *validator.Validate, translator ut.Translator, logger core.Logger) *Service {
	// repo and logger may be struct values
	switch {
	case repo == nil:
		panic("mocktest: nil question repository")
	case logger == nil:
		panic("mocktest: nil logger")
	}
	vala.BeginValidation().Validate(
		vala.IsNotNil(validate, "validate"),
		vala.IsNotNil(translator, "translator"),
	).CheckAndPanic()

	return &Service{
		repo:       repo,
		validate:   validate,
		translator: translator,
		logger:     logger,
	}
}

// NewSession loads the bank, keeps the questions matching opts and returns a NotStarted session.
func (svc *Service) NewSession(ctx context.Context, opts Options) (*Session, error) {
	opts.Clean()
	if err := svc.validate.Struct(opts); err != nil {
		return nil, core.TranslateValidationError(err, svc.translator)
	}

	questions, err := svc.repo.ListQuestions(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing questions")
	}
	questions = opts.Filter.Apply(questions)
	if opts.Limit > 0 && len(questions) > opts.Limit {
		questions = questions[:opts.Limit]
	}
	if len(questions) == 0 {
		return nil, ErrEmptyBank
	}
	if err = question.ValidateBank(questions, svc.validate, svc.translator); err != nil {
		return nil, errors.Wrap(err, "invalid question bank")
	}

	sess, err := NewSession(SessionParams{
		ID:              uuid.NewString(),
		ExamType:        opts.ExamType,
		Questions:       questions,
		DurationSeconds: opts.DurationSeconds,
		Marking:         opts.Marking,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating session")
	}

	svc.logger.Info("mock test session created", sess.Snapshot())
	return sess, nil
}

// Question looks a question up in the whole bank, not only in a session's selection.
func (svc *Service) Question(ctx context.Context, id int) (question.Question, error) {
	if finder, ok := svc.repo.(question.Finder); ok {
		return finder.GetQuestion(ctx, id)
	}
	questions, err := svc.repo.ListQuestions(ctx)
	if err != nil {
		return question.Question{}, errors.Wrap(err, "listing questions")
	}
	idx, err := question.FindByID(questions, id)
	if err != nil {
		return question.Question{}, err
	}
	return questions[idx].Clone(), nil
}
