package model

// DefaultSections is the curated section list offered by pickers.
// Section is free-form: unknown values round-trip untouched.
func DefaultSections() []string {
	return []string{
		"core output",
		"trend watch",
		"hit breakdown",
		"benchmark study",
		"stocks",
		"learning",
		"input",
		"extended output",
		"channel upkeep",
	}
}
