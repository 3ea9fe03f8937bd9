package question

// Grade is the learner's school year group.
type Grade string

const (
	GradeY3 Grade = "y3"
	GradeY4 Grade = "y4"
	GradeY5 Grade = "y5"
	GradeY6 Grade = "y6"
)

// AllGrades lists the supported year groups in ascending order.
var AllGrades = []Grade{GradeY3, GradeY4, GradeY5, GradeY6}

// Level returns the numeric year (3-6) for difficulty scaling.
// Unknown grades scale as Y5, the typical 11+ preparation year.
func (g Grade) Level() int {
	switch g {
	case GradeY3:
		return 3
	case GradeY4:
		return 4
	case GradeY5:
		return 5
	case GradeY6:
		return 6
	}
	return 5
}

// KnownBoards are the exam boards the settings screen offers.
var KnownBoards = []string{"Generic", "GL", "CEM", "Kent", "Bexley", "Medway"}

// Profile holds the learner settings consulted on every pool build.
type Profile struct {
	Grade       Grade    `json:"grade"`
	Boards      []string `json:"boards"`
	AllowHarder bool     `json:"allowHarder"`
}

// DefaultProfile is the profile used on first run or when stored
// settings fail to parse.
func DefaultProfile() Profile {
	return Profile{
		Grade:       GradeY5,
		Boards:      []string{"Generic"},
		AllowHarder: false,
	}
}

// YearTag returns the tag a question must carry (or omit) to match
// this profile's grade, e.g. "year:y5".
func (p Profile) YearTag() string {
	return "year:" + string(p.Grade)
}

// AcceptsBoard reports whether any of the question's boards is in the
// profile's accepted set. An empty question board set matches all.
func (p Profile) AcceptsBoard(boards []string) bool {
	if len(boards) == 0 {
		return true
	}
	for _, b := range boards {
		for _, pb := range p.Boards {
			if b == pb {
				return true
			}
		}
	}
	return false
}
