package models

// Categories a prediction can be filed under.
const (
	CategoryEconomy       = "economy"
	CategoryPolitics      = "politics"
	CategoryTechnology    = "technology"
	CategoryScience       = "science"
	CategorySports        = "sports"
	CategoryEntertainment = "entertainment"
	CategoryClimate       = "climate"
	CategorySociety       = "society"
	CategoryOther         = "other"
)

var categories = map[string]struct{}{
	CategoryEconomy:       {},
	CategoryPolitics:      {},
	CategoryTechnology:    {},
	CategoryScience:       {},
	CategorySports:        {},
	CategoryEntertainment: {},
	CategoryClimate:       {},
	CategorySociety:       {},
	CategoryOther:         {},
}

func ValidCategory(value string) bool {
	_, ok := categories[value]
	return ok
}

func Categories() []string {
	return []string{
		CategoryEconomy,
		CategoryPolitics,
		CategoryTechnology,
		CategoryScience,
		CategorySports,
		CategoryEntertainment,
		CategoryClimate,
		CategorySociety,
		CategoryOther,
	}
}

// Verification outcomes.
const (
	OutcomeCorrect          = "correct"
	OutcomeIncorrect        = "incorrect"
	OutcomePartiallyCorrect = "partially_correct"
	OutcomeTooEarly         = "too_early"
	OutcomeUnprovable       = "unprovable"
)

var outcomes = map[string]struct{}{
	OutcomeCorrect:          {},
	OutcomeIncorrect:        {},
	OutcomePartiallyCorrect: {},
	OutcomeTooEarly:         {},
	OutcomeUnprovable:       {},
}

func ValidOutcome(value string) bool {
	_, ok := outcomes[value]
	return ok
}

func Outcomes() []string {
	return []string{
		OutcomeCorrect,
		OutcomeIncorrect,
		OutcomePartiallyCorrect,
		OutcomeTooEarly,
		OutcomeUnprovable,
	}
}
