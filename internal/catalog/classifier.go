package catalog

import "strings"

// View is a catalog listing category
type View string

const (
	ViewTreks       View = "treks"
	ViewTrips       View = "trips"
	ViewExpeditions View = "expeditions"
	ViewSpiritual   View = "spiritual"
	ViewOther       View = "other"
)

// rule matches a lowercased field against keywords
type rule struct {
	keywords []string
	view     View
}

// Classification is a two-stage ordered rule table: the package's own
// category field is consulted first, the name only as a fallback.
// First match wins; unmatched packages land in Other.
var categoryRules = []rule{
	{[]string{"trek"}, ViewTreks},
	{[]string{"trip", "tour"}, ViewTrips},
	{[]string{"expedit", "adventur"}, ViewExpeditions},
	{[]string{"spiritual", "pilgrim", "dham", "yatra"}, ViewSpiritual},
}

var nameRules = []rule{
	{[]string{"trek", "summit", "roopkund", "valley of flowers", "climb"}, ViewTreks},
	{[]string{"trip", "tour", "package", "city tour"}, ViewTrips},
	{[]string{"expedition", "rafting", "camping"}, ViewExpeditions},
	{[]string{"kedarnath", "badrinath", "yatra", "dham"}, ViewSpiritual},
}

// Classify assigns a package to a view. Pure function over the
// category and name fields.
func Classify(category, name string) View {
	if view, ok := matchRules(categoryRules, category); ok {
		return view
	}
	if view, ok := matchRules(nameRules, name); ok {
		return view
	}
	return ViewOther
}

func matchRules(rules []rule, value string) (View, bool) {
	lowered := strings.ToLower(strings.TrimSpace(value))
	if lowered == "" {
		return "", false
	}

	for _, r := range rules {
		for _, keyword := range r.keywords {
			if strings.Contains(lowered, keyword) {
				return r.view, true
			}
		}
	}
	return "", false
}

// Includes reports whether a classified package belongs in a view.
// The Trips view also shows everything that matched nothing else.
func (v View) Includes(classified View) bool {
	if v == classified {
		return true
	}
	return v == ViewTrips && classified == ViewOther
}
