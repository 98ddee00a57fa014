package correlation

import (
	"sort"
	"strings"

	"github.com/rukaiya14/data-weaver-dashboard/internal/models"
)

// RuleEntry maps a condition keyword to its demand impact. Keyword
// matching is a case-insensitive substring test against the free-text
// conditions description. Priority makes lookup order explicit: more
// specific keywords ("heavy rain") carry a lower priority number than
// their generic substrings ("rain") so they win the first-match lookup.
type RuleEntry struct {
	Keyword             string
	Priority            int
	Base                float64
	TimeMultipliers     map[models.TimeOfDay]float64
	SeasonalMultipliers map[models.Season]float64
	Reason              string
}

// RuleTable is a static, ordered set of condition rules. It is never
// mutated after construction.
type RuleTable struct {
	entries []RuleEntry
}

// NewRuleTable returns the default condition rule table.
func NewRuleTable() *RuleTable {
	entries := []RuleEntry{
		{
			Keyword:  "heavy rain",
			Priority: 10,
			Base:     1.45,
			TimeMultipliers: map[models.TimeOfDay]float64{
				models.TimeLunch:  1.2,
				models.TimeDinner: 1.6,
				models.TimeLate:   1.3,
			},
			Reason: "Severe outdoor conditions",
		},
		{
			Keyword:  "rain",
			Priority: 20,
			Base:     1.3,
			TimeMultipliers: map[models.TimeOfDay]float64{
				models.TimeLunch:  1.1,
				models.TimeDinner: 1.4,
				models.TimeLate:   1.2,
			},
			Reason: "People avoid going out",
		},
		{
			Keyword:  "drizzle",
			Priority: 30,
			Base:     1.15,
			TimeMultipliers: map[models.TimeOfDay]float64{
				models.TimeLunch:  1.0,
				models.TimeDinner: 1.2,
				models.TimeLate:   1.1,
			},
			Reason: "Mild inconvenience factor",
		},
		{
			Keyword:  "snow",
			Priority: 40,
			Base:     1.5,
			TimeMultipliers: map[models.TimeOfDay]float64{
				models.TimeLunch:  1.3,
				models.TimeDinner: 1.7,
				models.TimeLate:   1.4,
			},
			Reason: "Difficult travel conditions",
		},
		{
			Keyword:  "thunderstorm",
			Priority: 50,
			Base:     1.35,
			TimeMultipliers: map[models.TimeOfDay]float64{
				models.TimeLunch:  1.2,
				models.TimeDinner: 1.5,
				models.TimeLate:   1.3,
			},
			Reason: "Safety and comfort concerns",
		},
		{
			Keyword:  "hot",
			Priority: 60,
			Base:     1.2,
			SeasonalMultipliers: map[models.Season]float64{
				models.SeasonSummer: 1.3,
				models.SeasonSpring: 1.1,
				models.SeasonFall:   1.0,
				models.SeasonWinter: 0.9,
			},
			Reason: "AC comfort preference",
		},
		{
			Keyword:  "cold",
			Priority: 70,
			Base:     1.15,
			SeasonalMultipliers: map[models.Season]float64{
				models.SeasonWinter: 1.3,
				models.SeasonFall:   1.2,
				models.SeasonSpring: 1.0,
				models.SeasonSummer: 0.8,
			},
			Reason: "Comfort food craving",
		},
		{
			Keyword:  "clear",
			Priority: 80,
			Base:     0.8,
			TimeMultipliers: map[models.TimeOfDay]float64{
				models.TimeLunch:  0.75,
				models.TimeDinner: 0.9,
				models.TimeLate:   0.95,
			},
			Reason: "Outdoor dining preference",
		},
		{
			Keyword:  "sunny",
			Priority: 90,
			Base:     0.8,
			TimeMultipliers: map[models.TimeOfDay]float64{
				models.TimeLunch:  0.75,
				models.TimeDinner: 0.85,
				models.TimeLate:   0.9,
			},
			Reason: "Outdoor activities preferred",
		},
		{
			Keyword:  "partly cloudy",
			Priority: 100,
			Base:     0.95,
			TimeMultipliers: map[models.TimeOfDay]float64{
				models.TimeLunch:  0.9,
				models.TimeDinner: 1.0,
				models.TimeLate:   1.0,
			},
			Reason: "Neutral conditions",
		},
	}

	return NewRuleTableFrom(entries)
}

// NewRuleTableFrom builds a rule table from explicit entries, sorted
// ascending by priority. Entry order among equal priorities is stable.
func NewRuleTableFrom(entries []RuleEntry) *RuleTable {
	sorted := make([]RuleEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	return &RuleTable{entries: sorted}
}

// Entries returns the rules in lookup order.
func (t *RuleTable) Entries() []RuleEntry {
	return t.entries
}

// Match returns the first rule whose keyword is a case-insensitive
// substring of the conditions text. At most one rule is active per
// evaluation.
func (t *RuleTable) Match(conditions string) (RuleEntry, bool) {
	lowered := strings.ToLower(conditions)
	for _, e := range t.entries {
		if strings.Contains(lowered, e.Keyword) {
			return e, true
		}
	}
	return RuleEntry{}, false
}
