// Package filebank loads a question bank from a JSON or YAML catalog file.
package filebank

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/aniketpandey04/EduTrak-AI/core/question"
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown question bank format")

// FormatOf guesses the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", path)
	}
}

// Decode reads a catalog. Unknown fields are rejected.
func Decode(r io.Reader, format Format) (question.Catalog, error) {
	var cat question.Catalog
	switch format {
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cat); err != nil {
			return cat, errors.Wrap(err, "decoding JSON catalog")
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cat); err != nil && err != io.EOF {
			return cat, errors.Wrap(err, "decoding YAML catalog")
		}
	default:
		return cat, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	return cat, nil
}

// Load reads the catalog stored at path.
func Load(path string) (question.Catalog, error) {
	format, err := FormatOf(path)
	if err != nil {
		return question.Catalog{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return question.Catalog{}, errors.Wrap(err, "opening question bank")
	}
	defer func() { _ = f.Close() }()

	cat, err := Decode(f, format)
	return cat, errors.Wrapf(err, "loading %s", path)
}

// Repository is a question.Repository reading a catalog file once, on first use.
type Repository struct {
	path string

	once    sync.Once
	catalog question.Catalog
	err     error
}

var (
	_ question.Repository = (*Repository)(nil)
	_ question.Finder     = (*Repository)(nil)
)

func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

func (repo *Repository) load() {
	repo.once.Do(func() { repo.catalog, repo.err = Load(repo.path) })
}

func (repo *Repository) Catalog() (question.Catalog, error) {
	repo.load()
	return repo.catalog, repo.err
}

func (repo *Repository) ListQuestions(ctx context.Context) ([]question.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.load()
	if repo.err != nil {
		return nil, repo.err
	}
	return question.CloneAll(repo.catalog.Questions), nil
}

func (repo *Repository) GetQuestion(ctx context.Context, id int) (question.Question, error) {
	qs, err := repo.ListQuestions(ctx)
	if err != nil {
		return question.Question{}, err
	}
	idx, err := question.FindByID(qs, id)
	if err != nil {
		return question.Question{}, err
	}
	return qs[idx], nil
}
