package domain

// DatasetSpec describes one raw agency export and every decision needed to
// tidy it: where the file lives, which sentinel values delimit the data
// region, which columns to drop, which to leave as text, which numeric
// columns are not percentages, and the final column names.
type DatasetSpec struct {
	// Name keys the tidied table in the dataset store.
	Name string `json:"name" validate:"required,lowercase"`
	// SourceFile is the raw export, .csv or .xlsx.
	SourceFile string `json:"source_file" validate:"required"`
	// KeyColumn holds the country codes used for bounds location.
	KeyColumn string `json:"key_column" validate:"required"`
	// Marker is the header cell expected in the first column once the
	// metadata preamble has been skipped.
	Marker string `json:"marker" validate:"required"`
	// FirstKey and LastKey are the boundary sentinels: the first and last
	// key values of the reference country ordering.
	FirstKey string `json:"first_key" validate:"required"`
	LastKey  string `json:"last_key" validate:"required,nefield=FirstKey"`
	// DropColumns are removed outright (label columns, parser artifacts).
	DropColumns []string `json:"drop_columns,omitempty"`
	// TextColumns are identifier/source columns never coerced to numeric.
	TextColumns []string `json:"text_columns,omitempty"`
	// NoRescale are numeric columns that are not percentages (years,
	// ratios already on their own scale) and so are not divided by 100.
	NoRescale []string `json:"no_rescale,omitempty"`
	// Renames maps raw human-readable headers to normalized snake_case
	// identifiers. Columns without an entry keep their raw name.
	Renames map[string]string `json:"renames,omitempty"`
}

// IsTextColumn reports whether the raw column name is exempt from numeric
// coercion.
func (s DatasetSpec) IsTextColumn(name string) bool {
	return contains(s.TextColumns, name)
}

// IsRescaled reports whether a coerced column gets the percentage-to-
// fraction rescale.
func (s DatasetSpec) IsRescaled(name string) bool {
	return !s.IsTextColumn(name) && !contains(s.NoRescale, name)
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
