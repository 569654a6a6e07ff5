package quiz

// Question is one item of the psychology quiz.
type Question struct {
	Text    string
	Options []string
	// MultiSelect questions accept any number of options.
	MultiSelect bool
}

var questions = []Question{
	{
		Text:    "When you start a new project, what do you reach for first?",
		Options: []string{"A plan and a checklist", "A blank page to sketch ideas", "A conversation with the people involved", "The data I already have"},
	},
	{
		Text:        "Which activities give you energy? (pick all that apply)",
		Options:     []string{"Solving puzzles", "Building things", "Helping others", "Presenting to a group", "Writing", "Organizing events"},
		MultiSelect: true,
	},
	{
		Text:    "How do you prefer to work?",
		Options: []string{"Alone with deep focus", "In a small team", "Leading a group", "Switching between many people"},
	},
	{
		Text:    "A deadline moves up by a week. You...",
		Options: []string{"Re-plan and cut scope", "Work longer hours", "Ask for help early", "Negotiate the date"},
	},
	{
		Text:        "Which subjects did you enjoy most? (pick all that apply)",
		Options:     []string{"Mathematics", "Science", "Languages", "Art and design", "Economics", "Computers"},
		MultiSelect: true,
	},
	{
		Text:    "What matters most to you in a job?",
		Options: []string{"Stability", "Learning and growth", "Impact on people", "Income"},
	},
	{
		Text:    "How comfortable are you with ambiguity?",
		Options: []string{"I need clear instructions", "Some structure is fine", "I enjoy figuring it out", "I thrive on it"},
	},
	{
		Text:        "Which tools would you like to get better at? (pick all that apply)",
		Options:     []string{"Spreadsheets", "Programming", "Design software", "Public speaking", "Project management"},
		MultiSelect: true,
	},
}

// Questions returns the built-in question bank.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}
