package seeder

import (
	"context"
	"time"

	"skill-match/internal/docstore"
	"skill-match/internal/domain/opportunity"
)

type CompaniesSeeder struct{}

func (CompaniesSeeder) Name() string { return "companies" }

func (CompaniesSeeder) Run(ctx context.Context, store docstore.Store) error {
	return writeAll(ctx, store, docstore.CollectionCompanies, map[string]map[string]any{
		"demo-company-datalab": {
			"name":    "DataLab",
			"sector":  "Analytics",
			"size":    "50-200",
			"city":    "Lyon",
			"country": "France",
			"website": "https://datalab.example",
		},
		"demo-company-cloudnine": {
			"name":    "CloudNine",
			"sector":  "Infrastructure",
			"size":    "10-50",
			"city":    "Paris",
			"country": "France",
		},
	})
}

type StudentsSeeder struct{}

func (StudentsSeeder) Name() string { return "students" }

func (StudentsSeeder) Run(ctx context.Context, store docstore.Store) error {
	return writeAll(ctx, store, docstore.CollectionStudents, map[string]map[string]any{
		"demo-student-lea": {
			"first_name":    "Léa",
			"last_name":     "Martin",
			"school":        "INSA Lyon",
			"formation":     "Informatique",
			"year_of_study": 4,
			"validated_skills": map[string]string{
				"python": "Avancé",
				"sql":    "Intermédiaire",
			},
		},
		"demo-student-sam": {
			"first_name":    "Sam",
			"last_name":     "Durand",
			"school":        "EPITA",
			"formation":     "Cloud",
			"year_of_study": 3,
			"validated_skills": map[string]string{
				"go":     "Expert",
				"docker": "Débutant",
			},
		},
	})
}

type OpportunitiesSeeder struct {
	// Now defaults to time.Now.
	Now func() time.Time
}

func (OpportunitiesSeeder) Name() string { return "opportunities" }

func (s OpportunitiesSeeder) Run(ctx context.Context, store docstore.Store) error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	t := now()

	return writeAll(ctx, store, docstore.CollectionOpportunities, map[string]map[string]any{
		"demo-opportunity-data-intern": {
			"company_id":      "demo-company-datalab",
			"title":           "Data analyst intern",
			"type":            "internship",
			"required_skills": []string{"python", "sql"},
			"location":        "Lyon",
			"duration":        "6 months",
			"compensation":    "1200 EUR/month",
			"created_at":      opportunity.NewTimestamp(t.Add(-48 * time.Hour)),
		},
		"demo-opportunity-platform": {
			"company_id":      "demo-company-cloudnine",
			"title":           "Platform engineer apprentice",
			"type":            "apprenticeship",
			"required_skills": []string{"go", "docker", "kubernetes"},
			"location":        "Paris",
			"duration":        "24 months",
			"created_at":      opportunity.NewTimestamp(t.Add(-6 * time.Hour)),
		},
	})
}
