package user

type Type string

const (
	TypeStudent      Type = "student"
	TypeCompany      Type = "company"
	TypeProfessional Type = "professional"
)

func (t Type) Valid() bool {
	switch t {
	case TypeStudent, TypeCompany, TypeProfessional:
		return true
	default:
		return false
	}
}

// Actor is the authenticated caller of a request.
type Actor struct {
	ID   string
	Type Type
}

func (a Actor) IsStudent() bool {
	return a.ID != "" && a.Type == TypeStudent
}

func (a Actor) IsCompany() bool {
	return a.ID != "" && a.Type == TypeCompany
}
