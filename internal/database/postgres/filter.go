package postgres

import (
	"fmt"
	"strings"

	"github.com/osse101/DarkFrame_Go/internal/domain"
)

var sqlOperators = map[domain.Operator]string{
	domain.OpLessThan:       "<",
	domain.OpLessOrEqual:    "<=",
	domain.OpGreaterThan:    ">",
	domain.OpGreaterOrEqual: ">=",
	domain.OpEqual:          "=",
	domain.OpNotEqual:       "<>",
}

// whereClause renders an eligibility predicate as a parameterized SQL condition.
// Field names are resolved through columns; anything outside it is rejected.
// Placeholders continue from len(args)+1.
func whereClause(e domain.Eligibility, columns map[string]string, args []any) (string, []any, error) {
	if e.AllOf != nil {
		if len(e.AllOf) == 0 {
			return "TRUE", args, nil
		}
		parts := make([]string, 0, len(e.AllOf))
		for _, child := range e.AllOf {
			var (
				sql string
				err error
			)
			sql, args, err = whereClause(child, columns, args)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, sql)
		}
		return "(" + strings.Join(parts, " AND ") + ")", args, nil
	}

	left, ok := columns[e.Field]
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidEligibility, e.Field)
	}
	op, ok := sqlOperators[e.Operator]
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown operator %q", domain.ErrInvalidEligibility, e.Operator)
	}

	if e.CompareField != "" {
		right, ok := columns[e.CompareField]
		if !ok {
			return "", nil, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidEligibility, e.CompareField)
		}
		return fmt.Sprintf("%s %s %s", left, op, right), args, nil
	}

	if e.Value == nil {
		return "", nil, fmt.Errorf("%w: %s needs a value or compare field", domain.ErrInvalidEligibility, e.Field)
	}
	args = append(args, e.Value)
	return fmt.Sprintf("%s %s $%d", left, op, len(args)), args, nil
}
