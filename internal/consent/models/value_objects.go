package models

// Decision is the visitor's consent state. Exactly one decision exists per
// visitor; there is no per-category consent, a single decision gates every
// non-essential category uniformly.
type Decision string

const (
	DecisionUnset    Decision = "unset"
	DecisionAccepted Decision = "accepted"
	DecisionDeclined Decision = "declined"
)

// SettableDecisions is the single source of truth for decisions a visitor can
// persist. Unset is never written; it is the absence of a record.
var SettableDecisions = map[Decision]bool{
	DecisionAccepted: true,
	DecisionDeclined: true,
}

// CanPersist checks if the decision is one a visitor action may record.
func (d Decision) CanPersist() bool {
	return SettableDecisions[d]
}

// Granted reports whether non-essential data collection has been consented to.
func (d Decision) Granted() bool {
	return d == DecisionAccepted
}

// Allows reports whether resources in the given category may load under this
// decision. Essential is always allowed; everything else requires acceptance.
func (d Decision) Allows(c Category) bool {
	if c == CategoryEssential {
		return true
	}
	return d == DecisionAccepted
}

// Category labels why a resource loads. Category binding allows gating
// non-essential resources without affecting baseline site function.
type Category string

const (
	CategoryEssential   Category = "essential"
	CategoryAnalytics   Category = "analytics"
	CategoryMarketing   Category = "marketing"
	CategoryPreferences Category = "preferences"
	CategoryExternal    Category = "external"
)

// ValidCategories is the single source of truth for all valid resource categories.
var ValidCategories = map[Category]bool{
	CategoryEssential:   true,
	CategoryAnalytics:   true,
	CategoryMarketing:   true,
	CategoryPreferences: true,
	CategoryExternal:    true,
}

// IsValid checks if the category is one of the supported enum values.
func (c Category) IsValid() bool {
	return ValidCategories[c]
}
