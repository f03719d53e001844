package models

// CategoryCount is the number of records sharing one category value.
type CategoryCount struct {
	// Name is the category text (e.g. a genre).
	Name string `json:"name"`
	// Count is the number of records in the category.
	Count int `json:"count"`
}

// Stats represents aggregate catalog statistics shown to admins.
type Stats struct {
	// Total is the number of records.
	Total int `json:"total"`
	// Column is the column the categories were counted on.
	Column string `json:"column,omitempty"`
	// Categories is ordered by count descending, then name.
	Categories []CategoryCount `json:"categories,omitempty"`
}
