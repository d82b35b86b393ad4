package plan

import (
	"fmt"
	"math"
	"unicode"
)

// halfPointStep is the granularity of published star ratings.
const halfPointStep = 0.5

// Validate checks a record loaded from a fixture. It does not compare
// OverallRating with the other dimensions.
func (r Record) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidRecord, r.ID)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: plan %d has no name", ErrInvalidRecord, r.ID)
	}
	if !validState(r.State) {
		return fmt.Errorf("%w: plan %d state %q is not a 2-letter code", ErrInvalidRecord, r.ID, r.State)
	}
	if !r.Region.Valid() {
		return fmt.Errorf("%w: plan %d region %q", ErrInvalidRecord, r.ID, r.Region)
	}
	if !r.Trend.Valid() {
		return fmt.Errorf("%w: plan %d trend %q", ErrInvalidRecord, r.ID, r.Trend)
	}
	ratings := map[Field]float64{
		FieldOverallRating:    r.OverallRating,
		FieldHealthServices:   r.HealthServices,
		FieldDrugServices:     r.DrugServices,
		FieldMemberExperience: r.MemberExperience,
		FieldComplaints:       r.Complaints,
		FieldCustomerService:  r.CustomerService,
	}
	for _, f := range Fields() {
		v, ok := ratings[f]
		if !ok {
			continue
		}
		if !ValidRating(v) {
			return fmt.Errorf("%w: plan %d %s=%v is not a half-point rating in [0,5]", ErrInvalidRecord, r.ID, f, v)
		}
	}
	if r.Enrollment < 0 {
		return fmt.Errorf("%w: plan %d enrollment %d is negative", ErrInvalidRecord, r.ID, r.Enrollment)
	}
	if math.IsNaN(r.YoYChange) || math.IsInf(r.YoYChange, 0) {
		return fmt.Errorf("%w: plan %d yoy_change is not finite", ErrInvalidRecord, r.ID)
	}
	return nil
}

// ValidRating reports whether v is a half-point value within [0,5].
func ValidRating(v float64) bool {
	if math.IsNaN(v) || v < MinRating || v > MaxRating {
		return false
	}
	steps := v / halfPointStep
	return steps == math.Trunc(steps)
}

func validState(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, c := range s {
		if !unicode.IsUpper(c) || c > unicode.MaxASCII {
			return false
		}
	}
	return true
}
