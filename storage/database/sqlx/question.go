package sqlxrepo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/aniketpandey04/EduTrak-AI/core"
	"github.com/aniketpandey04/EduTrak-AI/core/question"
)

const (
	defaultOrdering = "position,id"

	selectQuestions = `SELECT id, position, subject, topic, difficulty, prompt, options, correct_option,
	explanation, detailed_solution, video_id, time_limit, tags, previous_year, exam_year, related
FROM questions`

	insertQuestion = `INSERT INTO questions (id, position, subject, topic, difficulty, prompt, options,
	correct_option, explanation, detailed_solution, video_id, time_limit, tags, previous_year, exam_year, related)
VALUES (:id, :position, :subject, :topic, :difficulty, :prompt, :options, :correct_option,
	:explanation, :detailed_solution, :video_id, :time_limit, :tags, :previous_year, :exam_year, :related)`
)

var orderableFields = []string{"id", "position", "subject", "topic", "difficulty", "exam_year"}

type questionRow struct {
	ID               int         `db:"id"`
	Position         int         `db:"position"`
	Subject          string      `db:"subject"`
	Topic            string      `db:"topic"`
	Difficulty       string      `db:"difficulty"`
	Prompt           string      `db:"prompt"`
	Options          string      `db:"options"` // JSON array
	CorrectOption    int         `db:"correct_option"`
	Explanation      string      `db:"explanation"`
	DetailedSolution string      `db:"detailed_solution"`
	VideoID          null.String `db:"video_id"`
	TimeLimit        int         `db:"time_limit"`
	Tags             string      `db:"tags"` // JSON array
	PreviousYear     bool        `db:"previous_year"`
	ExamYear         null.String `db:"exam_year"`
	Related          string      `db:"related"` // JSON array
}

func newQuestionRow(q question.Question, position int) (questionRow, error) {
	row := questionRow{
		ID:               q.ID,
		Position:         position,
		Subject:          q.Subject,
		Topic:            q.Topic,
		Difficulty:       string(q.Difficulty),
		Prompt:           q.Prompt,
		CorrectOption:    q.CorrectOption,
		Explanation:      q.Explanation,
		DetailedSolution: q.DetailedSolution,
		VideoID:          null.NewString(q.VideoID, q.VideoID != ""),
		TimeLimit:        q.TimeLimit,
		PreviousYear:     q.PreviousYear,
		ExamYear:         null.NewString(q.ExamYear, q.ExamYear != ""),
	}

	var err error
	if row.Options, err = encodeList(q.Options); err != nil {
		return row, errors.Wrapf(err, "encoding options of question %d", q.ID)
	}
	if row.Tags, err = encodeList(q.Tags); err != nil {
		return row, errors.Wrapf(err, "encoding tags of question %d", q.ID)
	}
	if row.Related, err = encodeList(q.Related); err != nil {
		return row, errors.Wrapf(err, "encoding related questions of question %d", q.ID)
	}
	return row, nil
}

func (row questionRow) toQuestion() (question.Question, error) {
	q := question.Question{
		ID:               row.ID,
		Subject:          row.Subject,
		Topic:            row.Topic,
		Difficulty:       question.Difficulty(row.Difficulty),
		Prompt:           row.Prompt,
		CorrectOption:    row.CorrectOption,
		Explanation:      row.Explanation,
		DetailedSolution: row.DetailedSolution,
		VideoID:          row.VideoID.String,
		TimeLimit:        row.TimeLimit,
		PreviousYear:     row.PreviousYear,
		ExamYear:         row.ExamYear.String,
	}
	if err := decodeList(row.Options, &q.Options); err != nil {
		return q, errors.Wrapf(err, "decoding options of question %d", row.ID)
	}
	if err := decodeList(row.Tags, &q.Tags); err != nil {
		return q, errors.Wrapf(err, "decoding tags of question %d", row.ID)
	}
	if err := decodeList(row.Related, &q.Related); err != nil {
		return q, errors.Wrapf(err, "decoding related questions of question %d", row.ID)
	}
	return q, nil
}

func encodeList(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(b) == "null" {
		return "[]", nil
	}
	return string(b), nil
}

func decodeList(s string, v interface{}) error {
	if s == "" || s == "[]" {
		return nil
	}
	return json.Unmarshal([]byte(s), v)
}

type questionRepository struct {
	db       *sqlx.DB
	ordering []core.DBOrdering
}

var (
	_ question.Repository = (*questionRepository)(nil)
	_ question.Finder     = (*questionRepository)(nil)
)

// NewQuestionRepository reads the bank from db, sorted by ordering ("position,id" when empty).
func NewQuestionRepository(db *sqlx.DB, ordering ...string) *questionRepository {
	vala.BeginValidation().Validate(
		vala.IsNotNil(db, "db"),
	).CheckAndPanic()

	ord := defaultOrdering
	if len(ordering) > 0 && ordering[0] != "" {
		ord = ordering[0]
	}
	return &questionRepository{db: db, ordering: core.ParseOrderings(ord)}
}

func (repo *questionRepository) query() string {
	orderBy := core.OrderByClause(repo.ordering, orderableFields...)
	if orderBy == "" {
		orderBy = core.OrderByClause(core.ParseOrderings(defaultOrdering), orderableFields...)
	}
	return selectQuestions + " ORDER BY " + orderBy
}

func (repo *questionRepository) ListQuestions(ctx context.Context) ([]question.Question, error) {
	var rows []questionRow
	if err := repo.db.SelectContext(ctx, &rows, repo.query()); err != nil {
		return nil, errors.Wrap(err, "selecting questions")
	}

	qs := make([]question.Question, 0, len(rows))
	for _, row := range rows {
		q, err := row.toQuestion()
		if err != nil {
			return nil, err
		}
		qs = append(qs, q)
	}
	return qs, nil
}

func (repo *questionRepository) GetQuestion(ctx context.Context, id int) (question.Question, error) {
	var row questionRow
	if err := repo.db.GetContext(ctx, &row, repo.db.Rebind(selectQuestions+" WHERE id = ?"), id); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return question.Question{}, question.ErrNotFound
		}
		return question.Question{}, errors.Wrap(err, "selecting question")
	}
	return row.toQuestion()
}

// Import replaces the whole bank with qs, keeping their order, in one transaction.
func Import(ctx context.Context, db *sqlx.DB, qs []question.Question) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM questions"); err != nil {
		return errors.Wrap(err, "clearing questions")
	}
	for i, q := range qs {
		var row questionRow
		if row, err = newQuestionRow(q, i+1); err != nil {
			return err
		}
		if _, err = tx.NamedExecContext(ctx, insertQuestion, row); err != nil {
			return errors.Wrapf(err, "inserting question %d", q.ID)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing questions")
	}
	return nil
}
