package student

type Student struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	School      string
	Formation   string
	YearOfStudy int
	// ValidatedSkills maps a skill name to the level it was validated at. It
	// is written by the skill validation workflow and only read here.
	ValidatedSkills map[string]string
}
