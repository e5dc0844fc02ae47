package inmemdb

import (
	"context"
	"sort"
	"sync"

	"github.com/aniketpandey04/EduTrak-AI/core/question"
)

type questionTable struct {
	sync.RWMutex
	table map[int]*question.Question
	order map[int]int // id -> insertion position
}

type questionRepository struct {
	db  *questionTable
	pos int
}

var (
	_ question.Repository = (*questionRepository)(nil)
	_ question.Finder     = (*questionRepository)(nil)
)

// NewQuestionRepository returns an in-memory question bank seeded with qs, in that order.
func NewQuestionRepository(qs ...question.Question) *questionRepository {
	repo := &questionRepository{
		db: &questionTable{
			table: make(map[int]*question.Question),
			order: make(map[int]int),
		},
	}
	repo.Add(qs...)
	return repo
}

// Add stores questions at the end of the bank. A question whose ID is already stored
// replaces it in place.
func (repo *questionRepository) Add(qs ...question.Question) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, q := range qs {
		q := q.Clone()
		if _, ok := repo.db.order[q.ID]; !ok {
			repo.pos++
			repo.db.order[q.ID] = repo.pos
		}
		repo.db.table[q.ID] = &q
	}
}

func (repo *questionRepository) query() []question.Question {
	qs := make([]question.Question, 0, len(repo.db.table))
	for _, q := range repo.db.table {
		qs = append(qs, q.Clone())
	}
	sort.Slice(qs, func(i, j int) bool { return repo.db.order[qs[i].ID] < repo.db.order[qs[j].ID] })
	return qs
}

func (repo *questionRepository) ListQuestions(ctx context.Context) ([]question.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *questionRepository) GetQuestion(ctx context.Context, id int) (question.Question, error) {
	if err := ctx.Err(); err != nil {
		return question.Question{}, err
	}
	repo.db.RLock()
	defer repo.db.RUnlock()

	if q, ok := repo.db.table[id]; ok {
		return q.Clone(), nil
	}
	return question.Question{}, question.ErrNotFound
}
