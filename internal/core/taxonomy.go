package core

// The category taxonomy is a static two-level mapping: every entry carries a
// main category and one of its subcategories. The sets are closed and never
// change at runtime; every subcategory list ends with the "Other" sentinel.

// mainCategories preserves presentation order.
var mainCategories = []string{
	"Development",
	"Design",
	"Meeting",
	"Planning",
	"Documentation",
	"Learning",
	"Support",
	"Leave",
	"Other",
}

var subCategories = map[string][]string{
	"Development": {
		"Frontend",
		"Backend",
		"Database",
		"Testing",
		"DevOps",
		"Bug Fixing",
		"Code Review",
		"Other",
	},
	"Design": {
		"UI Design",
		"UX Design",
		"Graphic Design",
		"Prototyping",
		"Wireframing",
		"User Research",
		"Other",
	},
	"Meeting": {
		"Team Meeting",
		"Client Meeting",
		"Sprint Planning",
		"Sprint Review",
		"Sprint Retrospective",
		"One-on-One",
		"Other",
	},
	"Planning": {
		"Project Planning",
		"Sprint Planning",
		"Roadmap Planning",
		"Resource Planning",
		"Other",
	},
	"Documentation": {
		"Code Documentation",
		"User Documentation",
		"API Documentation",
		"Process Documentation",
		"Other",
	},
	"Learning": {
		"Training",
		"Self-Study",
		"Workshop",
		"Conference",
		"Online Course",
		"Reading",
		"Other",
	},
	"Support": {
		"Customer Support",
		"Technical Support",
		"Internal Support",
		"Other",
	},
	"Leave": {
		"Annual Leave",
		"Sick Leave",
		"Personal Leave",
		"Public Holiday",
		"Maternity/Paternity Leave",
		"Bereavement Leave",
		"Other",
	},
	"Other": {
		"Administrative",
		"Miscellaneous",
	},
}

// MainCategories returns the main categories in presentation order.
func MainCategories() []string {
	return append([]string(nil), mainCategories...)
}

// Subcategories returns the ordered subcategory list for a main category,
// or nil when the main category is unknown.
func Subcategories(main string) []string {
	subs, ok := subCategories[main]
	if !ok {
		return nil
	}
	return append([]string(nil), subs...)
}

// Taxonomy returns the complete two-level mapping as a fresh copy.
func Taxonomy() map[string][]string {
	out := make(map[string][]string, len(subCategories))
	for main, subs := range subCategories {
		out[main] = append([]string(nil), subs...)
	}
	return out
}

func IsValidMainCategory(main string) bool {
	_, ok := subCategories[main]
	return ok
}

// IsValidSubcategory reports whether sub belongs to the subcategory set of
// main. It is a pure lookup callable from any layer.
func IsValidSubcategory(main, sub string) bool {
	for _, s := range subCategories[main] {
		if s == sub {
			return true
		}
	}
	return false
}
