package domain

// Operator is a comparison used by an eligibility predicate
type Operator string

const (
	OpLessThan       Operator = "lt"
	OpLessOrEqual    Operator = "lte"
	OpGreaterThan    Operator = "gt"
	OpGreaterOrEqual Operator = "gte"
	OpEqual          Operator = "eq"
	OpNotEqual       Operator = "ne"
)

// IsValid reports whether op is a supported operator
func (op Operator) IsValid() bool {
	switch op {
	case OpLessThan, OpLessOrEqual, OpGreaterThan, OpGreaterOrEqual, OpEqual, OpNotEqual:
		return true
	}
	return false
}

// Eligibility selects which entities a job processes on a tick.
//
// A leaf compares Field against either CompareField (another column of the same
// row) or Value. A node with AllOf set ignores its own fields and matches when
// every child matches.
type Eligibility struct {
	Field        string        `json:"field,omitempty"`
	Operator     Operator      `json:"operator,omitempty"`
	CompareField string        `json:"compare_field,omitempty"`
	Value        any           `json:"value,omitempty"`
	AllOf        []Eligibility `json:"all_of,omitempty"`
}

// FieldCompare builds a field-vs-field predicate, e.g. used_slots < slots
func FieldCompare(field string, op Operator, compareField string) Eligibility {
	return Eligibility{Field: field, Operator: op, CompareField: compareField}
}

// ValueCompare builds a field-vs-literal predicate, e.g. used_slots > 0
func ValueCompare(field string, op Operator, value any) Eligibility {
	return Eligibility{Field: field, Operator: op, Value: value}
}

// All combines predicates with AND
func All(preds ...Eligibility) Eligibility {
	if preds == nil {
		preds = []Eligibility{}
	}
	return Eligibility{AllOf: preds}
}
