package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/aniketpandey04/EduTrak-AI/core"
	"github.com/aniketpandey04/EduTrak-AI/core/question"
	"github.com/aniketpandey04/EduTrak-AI/storage/database"
)

// SampleQuestions returns three questions whose correct options are 0, 1 and 2.
func SampleQuestions() []question.Question {
	return []question.Question{
		{
			ID:            1,
			Subject:       "Mathematics",
			Topic:         "Calculus",
			Difficulty:    question.Medium,
			Prompt:        "Find the derivative of f(x) = x³ + 2x² - 5x + 3",
			Options:       []string{"3x² + 4x - 5", "3x² + 4x + 5", "x³ + 4x - 5", "3x + 4x² - 5"},
			CorrectOption: 0,
			Explanation:   "Using the power rule: d/dx(x³) = 3x², d/dx(2x²) = 4x, d/dx(-5x) = -5, d/dx(3) = 0",
			DetailedSolution: "Apply the power rule to every term.\n" +
				"f'(x) = 3x² + 4x - 5",
			VideoID:      "WUvTyaaNkzM",
			TimeLimit:    120,
			Tags:         []string{"power-rule", "polynomial", "basic-calculus"},
			PreviousYear: true,
			ExamYear:     "2023",
			Related:      []int{2, 3},
		},
		{
			ID:            2,
			Subject:       "Physics",
			Topic:         "Mechanics",
			Difficulty:    question.Hard,
			Prompt:        "A ball is thrown vertically upward with initial velocity 20 m/s. What is the maximum height reached? (g = 10 m/s²)",
			Options:       []string{"15 m", "20 m", "25 m", "30 m"},
			CorrectOption: 1,
			Explanation:   "Using v² = u² - 2gh, at maximum height v = 0. So 0 = 400 - 20h, h = 20 m",
			VideoID:       "hG9SzQzUTM0",
			TimeLimit:     150,
			Tags:          []string{"kinematics", "projectile-motion", "energy"},
			PreviousYear:  true,
			ExamYear:      "2022",
			Related:       []int{1},
		},
		{
			ID:            3,
			Subject:       "Chemistry",
			Topic:         "Organic Chemistry",
			Difficulty:    question.Easy,
			Prompt:        "What is the IUPAC name of CH₃CH₂CH₂OH?",
			Options:       []string{"Propanol", "1-Propanol", "Propan-1-ol", "All of the above"},
			CorrectOption: 2,
			Explanation:   "The IUPAC name for primary alcohols uses the suffix -ol with position number",
			TimeLimit:     90,
			Tags:          []string{"nomenclature", "alcohols", "IUPAC"},
		},
	}
}

// GenerateQuestions returns n valid questions with IDs 1..n; the correct option is always 0.
func GenerateQuestions(n int) []question.Question {
	qs := make([]question.Question, 0, n)
	for i := 1; i <= n; i++ {
		qs = append(qs, question.Question{
			ID:            i,
			Subject:       "Mathematics",
			Topic:         "Algebra",
			Difficulty:    question.Difficulties[i%len(question.Difficulties)],
			Prompt:        fmt.Sprintf("What is %d + %d?", i, i),
			Options:       []string{fmt.Sprint(2 * i), fmt.Sprint(2*i + 1), fmt.Sprint(2*i - 1)},
			CorrectOption: 0,
			TimeLimit:     60,
		})
	}
	return qs
}

// PrepareDB opens a migrated in-memory sqlite database, closed at the end of the test.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conf := &core.Config{
		Database: core.DatabaseConfig{
			Engine: "sqlite3",
			Path:   ":memory:",
		},
	}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Ping(context.Background(), db); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	if err = database.Migrate(db); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

// LogEntry is a message recorded by Logger.
type LogEntry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// Logger is a core.Logger recording every entry; Fatal does not exit.
type Logger struct {
	mu      sync.Mutex
	entries []LogEntry
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) record(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg, Args: args})
}

func (l *Logger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.record("debug", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.record("info", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.record("warn", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.record("error", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.record("fatal", msg, args) }
