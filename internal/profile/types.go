package profile

// Storage keys. Absence of KeyEmail or KeyName means "not authenticated".
const (
	KeyEmail    = "userEmail"
	KeyName     = "userName"
	KeyLanguage = "userLanguage"
	KeyRegion   = "userState"
	KeyGoal     = "userGoal"
	KeyAnswers  = "psychologyAnswers"
)

// AllKeys lists every key the funnel persists, in the order logout removes them.
var AllKeys = []string{KeyEmail, KeyName, KeyLanguage, KeyRegion, KeyGoal, KeyAnswers}

// Identity is the logged-in user.
type Identity struct {
	Email       string
	DisplayName string
}

// Onboarding is the profile captured by the onboarding step.
type Onboarding struct {
	Language string
	Region   string
	HasGoal  bool
	// Goal is only meaningful when HasGoal is true.
	Goal string
}

// GoalText returns the goal and whether one was set.
func (o Onboarding) GoalText() (string, bool) {
	if !o.HasGoal {
		return "", false
	}
	return o.Goal, true
}
