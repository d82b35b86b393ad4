package plan

// Dimension is one axis of a plan's quality breakdown.
type Dimension struct {
	Metric   string  `json:"metric"`
	Value    float64 `json:"value"`
	FullMark float64 `json:"full_mark"`
}

// Breakdown returns the five non-overall dimensions of r in display order.
func Breakdown(r Record) []Dimension {
	return []Dimension{
		{Metric: "Health Services", Value: r.HealthServices, FullMark: MaxRating},
		{Metric: "Drug Services", Value: r.DrugServices, FullMark: MaxRating},
		{Metric: "Member Experience", Value: r.MemberExperience, FullMark: MaxRating},
		{Metric: "Complaints", Value: r.Complaints, FullMark: MaxRating},
		{Metric: "Customer Service", Value: r.CustomerService, FullMark: MaxRating},
	}
}
