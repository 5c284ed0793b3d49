package repositories

import (
	"context"
	"errors"

	"coachingfees/internal/docstore"
	"coachingfees/internal/domain"
	"coachingfees/internal/domain/models"
)

// pageLimit is the generous single-page ceiling: batch reads assume the
// whole collection fits in one page.
const pageLimit = 5000

type StudentRepository struct {
	Store docstore.Store
}

func (r StudentRepository) store() docstore.Store {
	if r.Store != nil {
		return r.Store
	}
	return docstore.MySQLStore{}
}

func (r StudentRepository) GetByID(ctx context.Context, id string) (models.Student, error) {
	doc, err := r.store().Get(ctx, docstore.CollectionStudents, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return models.Student{}, domain.NotFoundError{Resource: "student", Err: err}
		}
		return models.Student{}, domain.StoreError{Op: "get student", Err: err}
	}
	return models.StudentFromDocument(doc), nil
}

func (r StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	docs, err := r.store().List(ctx, docstore.CollectionStudents, docstore.ListOptions{Limit: pageLimit})
	if err != nil {
		return nil, domain.StoreError{Op: "list students", Err: err}
	}
	out := make([]models.Student, 0, len(docs))
	for _, doc := range docs {
		out = append(out, models.StudentFromDocument(doc))
	}
	return out, nil
}

func (r StudentRepository) Create(ctx context.Context, st models.Student) (models.Student, error) {
	doc, err := r.store().Create(ctx, docstore.CollectionStudents, st.Fields())
	if err != nil {
		return models.Student{}, domain.StoreError{Op: "create student", Err: err}
	}
	return models.StudentFromDocument(doc), nil
}

func (r StudentRepository) Update(ctx context.Context, id string, st models.Student) (models.Student, error) {
	doc, err := r.store().Update(ctx, docstore.CollectionStudents, id, st.Fields())
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return models.Student{}, domain.NotFoundError{Resource: "student", Err: err}
		}
		return models.Student{}, domain.StoreError{Op: "update student", Err: err}
	}
	return models.StudentFromDocument(doc), nil
}

func (r StudentRepository) Delete(ctx context.Context, id string) error {
	if err := r.store().Delete(ctx, docstore.CollectionStudents, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return domain.NotFoundError{Resource: "student", Err: err}
		}
		return domain.StoreError{Op: "delete student", Err: err}
	}
	return nil
}
