// Package export renders solution sheets and result cards as plain text.
package export

import (
	"io"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/aniketpandey04/EduTrak-AI/core"
	"github.com/aniketpandey04/EduTrak-AI/core/mocktest"
	"github.com/aniketpandey04/EduTrak-AI/core/question"
	appfs "github.com/aniketpandey04/EduTrak-AI/fs"
)

const (
	solutionTmpl = "solution.txt"
	resultTmpl   = "result.txt"
)

var spaces = regexp.MustCompile(`\s+`)

var funcs = template.FuncMap{
	"letter": question.OptionLetter,
	"join":   strings.Join,
	"clock":  mocktest.FormatClock,
	"solution": func(q question.Question) string {
		if q.DetailedSolution != "" {
			return q.DetailedSolution
		}
		return q.Explanation
	},
	// numbers renders 0-based question indices as the 1-based numbers shown to candidates.
	"numbers": func(indices []int) string {
		nums := make([]string, len(indices))
		for i, idx := range indices {
			nums[i] = strconv.Itoa(idx + 1)
		}
		return strings.Join(nums, ", ")
	},
}

type Exporter struct {
	tmpl *template.Template
}

// NewExporter parses the embedded templates. Missing keys fail rendering in debug and test modes.
func NewExporter(conf *core.Config) (*Exporter, error) {
	tmpl, err := template.New("export").Funcs(funcs).ParseFS(appfs.FS, "templates/*.txt")
	if err != nil {
		return nil, errors.Wrap(err, "parsing export templates")
	}
	if conf.Debug || conf.TestMode {
		tmpl = tmpl.Option("missingkey=error")
	}
	return &Exporter{tmpl: tmpl}, nil
}

type solutionData struct {
	ExamType string
	Question question.Question
}

// WriteSolution writes the downloadable solution sheet of q.
func (exp *Exporter) WriteSolution(w io.Writer, examType string, q question.Question) error {
	if err := exp.tmpl.ExecuteTemplate(w, solutionTmpl, solutionData{ExamType: examType, Question: q}); err != nil {
		return errors.Wrapf(err, "rendering solution of question %d", q.ID)
	}
	return nil
}

type resultData struct {
	mocktest.Snapshot
	Result mocktest.Result
}

// WriteResult writes the result card of a finished session.
func (exp *Exporter) WriteResult(w io.Writer, snap mocktest.Snapshot) error {
	if !snap.Completed() {
		return errors.WithStack(&mocktest.StateError{Op: "export result", Mode: snap.Mode})
	}
	if err := exp.tmpl.ExecuteTemplate(w, resultTmpl, resultData{Snapshot: snap, Result: snap.Result()}); err != nil {
		return errors.Wrapf(err, "rendering result of session %s", snap.ID)
	}
	return nil
}

// SolutionFilename is the file name a solution sheet is saved under, e.g. "solution-3-Organic-Chemistry.txt".
func SolutionFilename(q question.Question) string {
	return "solution-" + strconv.Itoa(q.ID) + "-" + spaces.ReplaceAllString(strings.TrimSpace(q.Topic), "-") + ".txt"
}
