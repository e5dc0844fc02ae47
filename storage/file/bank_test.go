package filebank

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniketpandey04/EduTrak-AI/core/question"
)

func wantCatalog() question.Catalog {
	return question.Catalog{
		Title:    "Sample bank",
		ExamType: "JEE Main",
		Questions: []question.Question{
			{
				ID:            1,
				Subject:       "Mathematics",
				Topic:         "Calculus",
				Difficulty:    question.Medium,
				Prompt:        "Find the derivative of f(x) = x² + 3x",
				Options:       []string{"2x + 3", "x + 3", "2x", "x² + 3"},
				CorrectOption: 0,
				Explanation:   "Power rule on every term.",
				TimeLimit:     90,
				Tags:          []string{"power-rule", "polynomial"},
				PreviousYear:  true,
				ExamYear:      "2023",
				Related:       []int{2},
			},
			{
				ID:            2,
				Subject:       "Physics",
				Topic:         "Mechanics",
				Difficulty:    question.Hard,
				Prompt:        "A body falls freely for 2 s. How far does it fall? (g = 10 m/s²)",
				Options:       []string{"10 m", "20 m", "40 m"},
				CorrectOption: 1,
				Explanation:   "s = gt²/2 = 20 m",
				VideoID:       "hG9SzQzUTM0",
				TimeLimit:     60,
			},
		},
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "yaml", path: filepath.Join("testdata", "bank.yaml")},
		{name: "json", path: filepath.Join("testdata", "bank.json")},
		{name: "unknown extension", path: filepath.Join("testdata", "bank.toml"), wantErr: ErrUnknownFormat},
		{name: "missing file", path: filepath.Join("testdata", "missing.yaml"), wantErr: os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := Load(tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, wantCatalog(), cat)
		})
	}
}

func TestDecode_unknownField(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{name: "json", format: JSON, input: `{"title": "x", "questionz": []}`},
		{name: "yaml", format: YAML, input: "title: x\nquestionz: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestDecode_emptyYAML(t *testing.T) {
	cat, err := Decode(strings.NewReader(""), YAML)
	require.NoError(t, err)
	assert.Empty(t, cat.Questions)
}

func TestRepository_ListQuestions(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(filepath.Join("testdata", "bank.yaml"))

	qs, err := repo.ListQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, wantCatalog().Questions, qs)

	qs[0].Prompt = "tampered"
	qs[0].Options[0] = "tampered"
	again, err := repo.ListQuestions(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "tampered", again[0].Prompt)
	assert.Equal(t, "2x + 3", again[0].Options[0])

	cat, err := repo.Catalog()
	require.NoError(t, err)
	assert.Equal(t, "JEE Main", cat.ExamType)

	_, err = NewRepository("nope.yml").ListQuestions(ctx)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRepository_GetQuestion(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(filepath.Join("testdata", "bank.json"))

	q, err := repo.GetQuestion(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "hG9SzQzUTM0", q.VideoID)

	_, err = repo.GetQuestion(ctx, 42)
	assert.ErrorIs(t, err, question.ErrNotFound)
}
