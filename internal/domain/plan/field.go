package plan

import (
	"cmp"
	"fmt"
	"strings"
)

// Field names a Record attribute usable as a sort key.
type Field string

// Sortable fields. Values match the column keys used by the dashboard.
const (
	FieldID               Field = "id"
	FieldName             Field = "name"
	FieldState            Field = "state"
	FieldRegion           Field = "region"
	FieldOverallRating    Field = "overallRating"
	FieldHealthServices   Field = "healthServices"
	FieldDrugServices     Field = "drugServices"
	FieldMemberExperience Field = "memberExperience"
	FieldComplaints       Field = "complaints"
	FieldCustomerService  Field = "customerService"
	FieldEnrollment       Field = "enrollment"
	FieldTrend            Field = "trend"
	FieldYoYChange        Field = "yoyChange"
)

// Fields lists every sortable field.
func Fields() []Field {
	return []Field{
		FieldID, FieldName, FieldState, FieldRegion,
		FieldOverallRating, FieldHealthServices, FieldDrugServices,
		FieldMemberExperience, FieldComplaints, FieldCustomerService,
		FieldEnrollment, FieldTrend, FieldYoYChange,
	}
}

// Column is a table header shown on the dashboard.
type Column struct {
	Key   Field  `json:"key"`
	Label string `json:"label"`
}

// TableColumns returns the fixed column set of the plan table.
func TableColumns() []Column {
	return []Column{
		{Key: FieldName, Label: "Plan Name"},
		{Key: FieldState, Label: "State"},
		{Key: FieldOverallRating, Label: "Overall Rating"},
		{Key: FieldHealthServices, Label: "Health Services"},
		{Key: FieldDrugServices, Label: "Drug Services"},
		{Key: FieldMemberExperience, Label: "Member Exp."},
		{Key: FieldEnrollment, Label: "Enrollment"},
		{Key: FieldTrend, Label: "YoY Trend"},
	}
}

// Valid reports whether f names a known field.
func (f Field) Valid() bool {
	g, ok := fieldIndex[normalizeField(string(f))]
	return ok && g == f
}

var fieldIndex = func() map[string]Field {
	m := make(map[string]Field)
	for _, f := range Fields() {
		m[normalizeField(string(f))] = f
	}
	return m
}()

// normalizeField folds camelCase and snake_case spellings to one key.
func normalizeField(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
}

// ParseField accepts camelCase ("overallRating") or snake_case
// ("overall_rating") spellings, case-insensitively.
func ParseField(s string) (Field, error) {
	f, ok := fieldIndex[normalizeField(s)]
	if !ok {
		return "", fmt.Errorf("%w: field %q", ErrUnknownValue, s)
	}
	return f, nil
}

// Compare orders a and b by field f using only strict greater/less tests.
// Strings compare by byte order, numbers numerically, trends by Ordinal.
// It returns -1, 0 or +1. Unknown fields compare equal.
func Compare(a, b Record, f Field) int {
	switch f {
	case FieldID:
		return compareStrict(a.ID, b.ID)
	case FieldName:
		return compareStrict(a.Name, b.Name)
	case FieldState:
		return compareStrict(a.State, b.State)
	case FieldRegion:
		return compareStrict(a.Region, b.Region)
	case FieldOverallRating:
		return compareStrict(a.OverallRating, b.OverallRating)
	case FieldHealthServices:
		return compareStrict(a.HealthServices, b.HealthServices)
	case FieldDrugServices:
		return compareStrict(a.DrugServices, b.DrugServices)
	case FieldMemberExperience:
		return compareStrict(a.MemberExperience, b.MemberExperience)
	case FieldComplaints:
		return compareStrict(a.Complaints, b.Complaints)
	case FieldCustomerService:
		return compareStrict(a.CustomerService, b.CustomerService)
	case FieldEnrollment:
		return compareStrict(a.Enrollment, b.Enrollment)
	case FieldTrend:
		return compareStrict(a.Trend.Ordinal(), b.Trend.Ordinal())
	case FieldYoYChange:
		return compareStrict(a.YoYChange, b.YoYChange)
	}
	return 0
}

func compareStrict[T cmp.Ordered](a, b T) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}
