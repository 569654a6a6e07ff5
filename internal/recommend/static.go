package recommend

import (
	"context"
	"slices"
)

// CatalogRole is a role the static recommender knows about. Signals are
// quiz option texts that count towards the role.
type CatalogRole struct {
	ID      string
	Name    string
	Summary string
	Signals []string
}

var defaultCatalog = []CatalogRole{
	{
		ID:      "data-analyst",
		Name:    "Data Analyst",
		Summary: "You like working from evidence and finding patterns. Analysts turn raw data into decisions.",
		Signals: []string{"The data I already have", "Solving puzzles", "Mathematics", "Economics", "Spreadsheets", "Alone with deep focus"},
	},
	{
		ID:      "software-developer",
		Name:    "Software Developer",
		Summary: "You enjoy building things and figuring problems out. Developers design and ship the software people use.",
		Signals: []string{"Building things", "Solving puzzles", "Computers", "Programming", "I enjoy figuring it out", "Learning and growth"},
	},
	{
		ID:      "ux-designer",
		Name:    "UX Designer",
		Summary: "You start from ideas and care about people. Designers shape how products look and feel.",
		Signals: []string{"A blank page to sketch ideas", "Art and design", "Design software", "Helping others", "In a small team"},
	},
	{
		ID:      "project-manager",
		Name:    "Project Manager",
		Summary: "You plan ahead and keep people moving. Project managers own scope, schedule and delivery.",
		Signals: []string{"A plan and a checklist", "Organizing events", "Leading a group", "Re-plan and cut scope", "Project management", "Negotiate the date"},
	},
	{
		ID:      "content-strategist",
		Name:    "Content Strategist",
		Summary: "You communicate well and enjoy language. Content strategists plan what a product says and where.",
		Signals: []string{"Writing", "Languages", "Presenting to a group", "Public speaking", "A conversation with the people involved"},
	},
	{
		ID:      "customer-success",
		Name:    "Customer Success Manager",
		Summary: "You get energy from helping people. Customer success keeps clients happy and productive.",
		Signals: []string{"Helping others", "Switching between many people", "Impact on people", "Ask for help early", "A conversation with the people involved"},
	},
}

// Static ranks a fixed catalog by how many quiz answers match each
// role's signals. Ties keep catalog order.
type Static struct {
	Catalog []CatalogRole
	Count   int
}

// NewStatic returns a Static recommender over the built-in catalog.
func NewStatic() *Static {
	return &Static{Catalog: defaultCatalog, Count: DefaultConfig().Count}
}

func (s *Static) Recommend(ctx context.Context, in Input) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.Catalog) == 0 {
		return nil, ErrNoRecommendations
	}

	chosen := make(map[string]bool)
	for _, a := range in.Answers {
		for _, v := range a.Values() {
			chosen[v] = true
		}
	}

	type scored struct {
		role  CatalogRole
		score int
	}
	ranked := make([]scored, len(s.Catalog))
	for i, r := range s.Catalog {
		n := 0
		for _, sig := range r.Signals {
			if chosen[sig] {
				n++
			}
		}
		ranked[i] = scored{role: r, score: n}
	}
	slices.SortStableFunc(ranked, func(a, b scored) int { return b.score - a.score })

	count := s.Count
	if count < 1 || count > len(ranked) {
		count = len(ranked)
	}
	out := make([]Recommendation, count)
	for i := range count {
		r := ranked[i].role
		out[i] = Recommendation{RoleID: r.ID, RoleName: r.Name, Summary: r.Summary, Rank: i + 1}
	}
	return out, nil
}
