package schema

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/smallbiznis/domora/internal/listing/domain"
)

// Mode selects how absent fields are treated.
type Mode int

const (
	// ModeCreate enforces required rules on absent fields.
	ModeCreate Mode = iota
	// ModeUpdate skips absent fields; supplied fields must still satisfy
	// their full constraint.
	ModeUpdate
)

// Result is the aggregated validation outcome. Violations keep table order.
type Result struct {
	Violations []domain.Violation
}

func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Validate evaluates every applicable rule against the candidate. It never
// fails fast and has no side effects.
func Validate(c Candidate, mode Mode) Result {
	var result Result
	for _, rule := range Table() {
		result.Violations = append(result.Violations, evaluate(rule, c, mode)...)
	}
	return result
}

func evaluate(rule Rule, c Candidate, mode Mode) []domain.Violation {
	switch rule.Kind {
	case KindInt:
		return evaluateInt(rule, c, mode)
	default:
		return evaluateString(rule, c, mode)
	}
}

func evaluateString(rule Rule, c Candidate, mode Mode) []domain.Violation {
	raw := rule.stringValue(c)
	if raw == nil {
		if mode == ModeCreate && rule.Required {
			return violation(rule.Field, rule.RequiredMessage)
		}
		return nil
	}

	value := strings.TrimSpace(*raw)
	if value == "" {
		// A supplied empty value never satisfies a required field,
		// even on update.
		if rule.Required {
			return violation(rule.Field, rule.RequiredMessage)
		}
		return nil
	}

	var violations []domain.Violation
	// Length bounds count characters, not encoded bytes.
	if rule.MaxLen > 0 && utf8.RuneCountInString(value) > rule.MaxLen {
		violations = append(violations, domain.Violation{Field: rule.Field, Message: rule.MaxLenMessage})
	}
	if rule.Kind == KindEnum && !contains(rule.Enum, value) {
		violations = append(violations, domain.Violation{
			Field:   rule.Field,
			Message: fmt.Sprintf(rule.EnumMessage, value),
		})
	}
	return violations
}

func evaluateInt(rule Rule, c Candidate, mode Mode) []domain.Violation {
	value := rule.intValue(c)
	if value == nil {
		if mode == ModeCreate && rule.Required {
			return violation(rule.Field, rule.RequiredMessage)
		}
		return nil
	}

	var violations []domain.Violation
	if rule.Min != nil && *value < *rule.Min {
		violations = append(violations, domain.Violation{Field: rule.Field, Message: rule.MinMessage})
	}
	if rule.Max != nil && *value > *rule.Max {
		violations = append(violations, domain.Violation{Field: rule.Field, Message: rule.MaxMessage})
	}
	return violations
}

func violation(field, message string) []domain.Violation {
	return []domain.Violation{{Field: field, Message: message}}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
