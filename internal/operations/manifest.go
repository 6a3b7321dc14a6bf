package operations

import (
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"mhtidy/pkg/contracts/domain"
)

// Sentinels shared by every maternal-health export: the header row is the
// one whose first column is the iso3 code column, and the data region runs
// from Afghanistan to Zimbabwe, the first and last codes of the reference
// country ordering. Everything after the zwe row is footnotes.
const (
	MarkerColumn = "iso3"
	FirstCountry = "afg"
	LastCountry  = "zwe"

	// labelColumn duplicates the iso3 key as a display name and is dropped.
	labelColumn = "Country/Territory"
)

// DefaultManifest returns the fixed set of raw exports the batch driver
// tidies, with their source files resolved under sourceDir.
func DefaultManifest(sourceDir string) []domain.DatasetSpec {
	base := func(spec domain.DatasetSpec, file string) domain.DatasetSpec {
		spec.SourceFile = filepath.Join(sourceDir, file)
		spec.KeyColumn = MarkerColumn
		spec.Marker = MarkerColumn
		spec.FirstKey = FirstCountry
		spec.LastKey = LastCountry
		spec.DropColumns = []string{labelColumn}
		spec.TextColumns = []string{MarkerColumn, "Source"}
		spec.NoRescale = append([]string{"Year"}, spec.NoRescale...)
		return spec
	}

	return []domain.DatasetSpec{
		base(domain.DatasetSpec{
			Name: "antenatal_care",
			Renames: map[string]string{
				"Year":   "year",
				"Source": "source",
				"Antenatal care - at least one visit (%)":   "anc1",
				"Antenatal care - at least four visits (%)": "anc4",
			},
		}, "antenatal-care.csv"),
		base(domain.DatasetSpec{
			Name: "delivery_care",
			Renames: map[string]string{
				"Year":   "year",
				"Source": "source",
				"Skilled birth attendant (%)":  "sba",
				"Institutional delivery (%)":   "instdel",
				"C-section (%)":                "csec",
			},
		}, "delivery-care.csv"),
		base(domain.DatasetSpec{
			Name:      "maternal_mortality",
			NoRescale: []string{"Maternal mortality ratio"},
			Renames: map[string]string{
				"Year":   "year",
				"Source": "source",
				"Maternal mortality ratio":              "mmr",
				"Lifetime risk of maternal death (%)":   "lifetime_risk",
			},
		}, "maternal-mortality.csv"),
		base(domain.DatasetSpec{
			Name: "postnatal_care",
			Renames: map[string]string{
				"Year":   "year",
				"Source": "source",
				"Postnatal care for newborns (%)": "pnc_newborn",
				"Postnatal care for mothers (%)":  "pnc_mother",
			},
		}, "postnatal-care.csv"),
	}
}

// ValidateManifest checks every spec's structural requirements and that
// dataset names are unique. A bad manifest aborts the batch before any
// dataset is touched.
func ValidateManifest(specs []domain.DatasetSpec) error {
	if len(specs) == 0 {
		return fmt.Errorf("manifest is empty")
	}

	v := validator.New()
	seen := make(map[string]bool, len(specs))
	for i, spec := range specs {
		if err := v.Struct(spec); err != nil {
			return fmt.Errorf("manifest entry %d (%s): %w", i, spec.Name, err)
		}
		if seen[spec.Name] {
			return fmt.Errorf("duplicate dataset name %q in manifest", spec.Name)
		}
		seen[spec.Name] = true
	}
	return nil
}

// FilterManifest keeps only the named datasets, preserving manifest order.
// An unknown name is an error so typos fail loudly instead of silently
// skipping a dataset.
func FilterManifest(specs []domain.DatasetSpec, names []string) ([]domain.DatasetSpec, error) {
	if len(names) == 0 {
		return specs, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []domain.DatasetSpec
	for _, spec := range specs {
		if want[spec.Name] {
			out = append(out, spec)
			delete(want, spec.Name)
		}
	}
	for n := range want {
		return nil, fmt.Errorf("unknown dataset %q", n)
	}
	return out, nil
}
