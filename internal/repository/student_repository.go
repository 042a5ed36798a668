package repository

import (
	"context"
	"errors"
	"fmt"

	"skill-match/internal/docstore"
	"skill-match/internal/domain/student"

	"go.uber.org/zap"
)

var ErrStudentNotFound = errors.New("student not found")

type StudentRepository interface {
	GetByID(ctx context.Context, id string) (student.Student, error)
	List(ctx context.Context) ([]student.Student, error)
}

type studentDoc struct {
	FirstName       text     `json:"first_name"`
	LastName        text     `json:"last_name"`
	Email           text     `json:"email"`
	School          text     `json:"school"`
	Formation       text     `json:"formation"`
	YearOfStudy     number   `json:"year_of_study"`
	ValidatedSkills levelMap `json:"validated_skills"`
}

type DocStudentRepository struct {
	store  docstore.Store
	logger *zap.Logger
}

func NewDocStudentRepository(store docstore.Store, logger *zap.Logger) *DocStudentRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocStudentRepository{store: store, logger: logger}
}

func (r *DocStudentRepository) GetByID(ctx context.Context, id string) (student.Student, error) {
	b, ok, err := r.store.Get(ctx, docstore.CollectionStudents, id)
	if err != nil {
		return student.Student{}, fmt.Errorf("read student %s: %w", id, err)
	}
	if !ok {
		return student.Student{}, ErrStudentNotFound
	}
	var doc studentDoc
	if err := decodeObject(b, &doc); err != nil {
		return student.Student{}, err
	}
	return doc.toDomain(id), nil
}

func (r *DocStudentRepository) List(ctx context.Context) ([]student.Student, error) {
	docs, err := r.store.List(ctx, docstore.CollectionStudents)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	out := make([]student.Student, 0, len(docs))
	for _, d := range docs {
		var doc studentDoc
		if err := decodeObject(d.Data, &doc); err != nil {
			r.logger.Warn("skipping malformed student", zap.String("student_id", d.ID), zap.Error(err))
			continue
		}
		out = append(out, doc.toDomain(d.ID))
	}
	return out, nil
}

func (d studentDoc) toDomain(id string) student.Student {
	skills := map[string]string(d.ValidatedSkills)
	if skills == nil {
		skills = map[string]string{}
	}
	return student.Student{
		ID:              id,
		FirstName:       string(d.FirstName),
		LastName:        string(d.LastName),
		Email:           string(d.Email),
		School:          string(d.School),
		Formation:       string(d.Formation),
		YearOfStudy:     int(d.YearOfStudy),
		ValidatedSkills: skills,
	}
}
