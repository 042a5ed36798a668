package repository

import (
	"context"
	"errors"
	"fmt"

	"skill-match/internal/docstore"
	"skill-match/internal/domain/opportunity"
)

var ErrCompanyNotFound = errors.New("company not found")

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (opportunity.Company, error)
}

type companyDoc struct {
	Name            text `json:"name"`
	Sector          text `json:"sector"`
	Size            text `json:"size"`
	Description     text `json:"description"`
	Website         text `json:"website"`
	Address         text `json:"address"`
	City            text `json:"city"`
	Country         text `json:"country"`
	LogoURL         text `json:"logo_url"`
	ContactPerson   text `json:"contact_person"`
	ContactPosition text `json:"contact_position"`
}

type DocCompanyRepository struct {
	store docstore.Store
}

func NewDocCompanyRepository(store docstore.Store) *DocCompanyRepository {
	return &DocCompanyRepository{store: store}
}

func (r *DocCompanyRepository) GetByID(ctx context.Context, id string) (opportunity.Company, error) {
	b, ok, err := r.store.Get(ctx, docstore.CollectionCompanies, id)
	if err != nil {
		return opportunity.Company{}, fmt.Errorf("read company %s: %w", id, err)
	}
	if !ok {
		return opportunity.Company{}, ErrCompanyNotFound
	}
	var doc companyDoc
	if err := decodeObject(b, &doc); err != nil {
		return opportunity.Company{}, err
	}
	return opportunity.Company{
		ID:              id,
		Name:            string(doc.Name),
		Sector:          string(doc.Sector),
		Size:            string(doc.Size),
		Description:     string(doc.Description),
		Website:         string(doc.Website),
		Address:         string(doc.Address),
		City:            string(doc.City),
		Country:         string(doc.Country),
		LogoURL:         string(doc.LogoURL),
		ContactPerson:   string(doc.ContactPerson),
		ContactPosition: string(doc.ContactPosition),
	}, nil
}
