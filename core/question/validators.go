package question

import (
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/aniketpandey04/EduTrak-AI/core"
)

var (
	difficultyTag  = "difficulty"
	difficultyText = "{0} must be one of Easy, Medium or Hard"

	correctOptionTag  = "correct_option"
	correctOptionText = "{0} must point at one of the options"
)

// InitValidators registers the question validations. core.InitValidators must run first.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(difficultyTag, difficultyValidation)
	core.RegisterCustomTranslation(validate, translator, difficultyTag, difficultyText)

	validate.RegisterStructValidation(questionStructValidation, Question{})
	core.RegisterCustomTranslation(validate, translator, correctOptionTag, correctOptionText)
}

// Custom Validators

func difficultyValidation(fl validator.FieldLevel) bool {
	if diff, ok := fl.Field().Interface().(Difficulty); ok {
		return diff.IsValid()
	}
	return false
}

// questionStructValidation does Question's struct level validation
func questionStructValidation(sl validator.StructLevel) {
	if q, ok := sl.Current().Interface().(Question); ok {
		if len(q.Options) > 0 && !q.HasOption(q.CorrectOption) {
			sl.ReportError(q.CorrectOption, "correct_option", "CorrectOption", correctOptionTag, "")
		}
	}
}

// Validate checks a single question. Field errors are translated.
func (q Question) Validate(validate *validator.Validate, translator ut.Translator) error {
	if err := validate.Struct(q); err != nil {
		return core.TranslateValidationError(err, translator)
	}
	return nil
}

// ValidateBank checks every question and that IDs are unique.
// All problems are reported at once, fields are prefixed with the question position.
func ValidateBank(questions []Question, validate *validator.Validate, translator ut.Translator) error {
	var flds []core.FieldError
	seen := make(map[int]int, len(questions))
	for i, q := range questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		if err := validate.Struct(q); err != nil {
			tErr := core.TranslateValidationError(err, translator, prefix)
			if fErrs := core.FieldErrors(tErr); fErrs != nil {
				flds = append(flds, fErrs...)
			} else {
				return err
			}
		}
		if first, ok := seen[q.ID]; ok {
			flds = append(flds, core.FieldError{
				Field: prefix + ".id",
				Error: fmt.Sprintf("id %d already used by questions[%d]", q.ID, first),
			})
		} else {
			seen[q.ID] = i
		}
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}
