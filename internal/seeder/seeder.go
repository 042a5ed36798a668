package seeder

import (
	"context"
	"fmt"

	"skill-match/internal/docstore"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, store docstore.Store) error
}

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, store docstore.Store) error {
	if store == nil {
		return fmt.Errorf("nil store")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, store); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}

func Defaults() []Seeder {
	return []Seeder{
		CompaniesSeeder{},
		StudentsSeeder{},
		OpportunitiesSeeder{},
	}
}

func writeAll(ctx context.Context, store docstore.Store, collection string, docs map[string]map[string]any) error {
	for id, doc := range docs {
		if err := store.Set(ctx, collection, id, doc); err != nil {
			return fmt.Errorf("write %s/%s: %w", collection, id, err)
		}
	}
	return nil
}
