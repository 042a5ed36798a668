package opportunity

const UnknownCompanyName = "Unknown company"

type Opportunity struct {
	ID             string
	CompanyID      string
	Title          string
	Type           string
	RequiredSkills []string
	Description    string
	Location       string
	Duration       string
	Compensation   string
	CreatedAt      Timestamp
}

type Company struct {
	ID              string
	Name            string
	Sector          string
	Size            string
	Description     string
	Website         string
	Address         string
	City            string
	Country         string
	LogoURL         string
	ContactPerson   string
	ContactPosition string
}

// DisplayName falls back to UnknownCompanyName for an absent or unnamed company.
func (c *Company) DisplayName() string {
	if c == nil || c.Name == "" {
		return UnknownCompanyName
	}
	return c.Name
}

// Enriched is an opportunity joined with its publisher.
type Enriched struct {
	Opportunity
	CompanyName string
	Company     *Company
}
