// Package extract derives bounding boxes from the heterogeneous property
// records carried by model elements. It is pure: problems with individual
// entries are returned as diagnostics, never logged or raised.
package extract

import (
	"fmt"
	"strconv"
	"strings"

	"roomscan/internal/model"
)

// boundField identifies one of the six logical bounding-box fields
type boundField int

const (
	fieldMinX boundField = iota
	fieldMinY
	fieldMinZ
	fieldMaxX
	fieldMaxY
	fieldMaxZ
	fieldCount
)

// fieldSpellings lists the accepted property spellings for every bound
// field, compared case-insensitively after normalization. Supporting a
// new exporter variant only means appending to this table.
var fieldSpellings = map[boundField][]string{
	fieldMinX: {"BoundingBox.Min.X", "Bounding Box Min X"},
	fieldMinY: {"BoundingBox.Min.Y", "Bounding Box Min Y"},
	fieldMinZ: {"BoundingBox.Min.Z", "Bounding Box Min Z"},
	fieldMaxX: {"BoundingBox.Max.X", "Bounding Box Max X"},
	fieldMaxY: {"BoundingBox.Max.Y", "Bounding Box Max Y"},
	fieldMaxZ: {"BoundingBox.Max.Z", "Bounding Box Max Z"},
}

// fieldByName maps every normalized spelling to its bound field
var fieldByName = buildFieldLookup()

func buildFieldLookup() map[string]boundField {
	lookup := make(map[string]boundField)
	for field, names := range fieldSpellings {
		for _, name := range names {
			lookup[normalizeName(name)] = field
		}
	}
	return lookup
}

// normalizeName folds a property name for case-insensitive comparison
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FromProperties scans an unordered property list and assembles a bounding
// box from the recognized bound fields. The first successfully parsed value
// per field wins; later duplicates are ignored. Malformed or empty entries
// are skipped and reported as diagnostics, they never abort the rest of
// the extraction. The returned box may be invalid if nothing was found.
func FromProperties(props []model.Property) (model.BoundingBox, []model.Diagnostic) {
	var values [fieldCount]float64
	var seen [fieldCount]bool
	var diags []model.Diagnostic

	for _, p := range props {
		if p.Name == "" {
			continue
		}
		field, ok := fieldByName[normalizeName(p.Name)]
		if !ok {
			continue
		}
		if seen[field] {
			continue
		}
		if p.Value == "" {
			diags = append(diags, model.Diagnostic{
				Message: fmt.Sprintf("skipping property %q: empty value", p.Name),
			})
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
		if err != nil {
			diags = append(diags, model.Diagnostic{
				Message: fmt.Sprintf("skipping property %q: value %q is not numeric", p.Name, p.Value),
			})
			continue
		}
		values[field] = v
		seen[field] = true
	}

	return model.BoundingBox{
		MinX: values[fieldMinX], MinY: values[fieldMinY], MinZ: values[fieldMinZ],
		MaxX: values[fieldMaxX], MaxY: values[fieldMaxY], MaxZ: values[fieldMaxZ],
	}, diags
}

// PropertyMap flattens the property list into a plain name->value map for
// downstream consumers. The first value per normalized name wins, matching
// the first-parse-wins rule of FromProperties.
func PropertyMap(props []model.Property) map[string]string {
	m := make(map[string]string, len(props))
	for _, p := range props {
		if p.Name == "" || p.Value == "" {
			continue
		}
		key := normalizeName(p.Name)
		if _, ok := m[key]; ok {
			continue
		}
		m[key] = p.Value
	}
	return m
}

// FromElement derives a bounding box for the element, trying the property
// table first and falling back to the structured geometry derivations when
// the properties yield nothing usable
func FromElement(el *model.Element) (model.BoundingBox, []model.Diagnostic) {
	box, diags := FromProperties(el.Properties)
	if box.IsValid() {
		return box, diags
	}
	if el.Geometry != nil {
		if g, ok := fromGeometry(el.Geometry); ok {
			return g, diags
		}
	}
	return box, diags
}
