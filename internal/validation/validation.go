// Package validation parses raw job posting input into normalized values.
// Every parser is pure and reports bad input as an apperr validation failure carrying the field name.
package validation

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/apperr"
	"github.com/samber/lo"
)

const (
	FieldRequirements    = "requirements"
	FieldSalary          = "salary"
	FieldDeadline        = "deadline"
	FieldPosition        = "position"
	FieldExperienceLevel = "experienceLevel"

	// MaxCount bounds integer fields so float input converts to int without overflow.
	MaxCount = math.MaxInt32
)

var (
	salaryPattern        = regexp.MustCompile(`(?i)^(\d+(\.\d+)?)(\s*LPA)?$`)
	requirementDelimiter = regexp.MustCompile(`[,;\n]`)
)

var deadlineLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseRequirements accepts a list of strings or a string separated by commas, semicolons or newlines.
func ParseRequirements(input any) ([]string, error) {
	var raw []string

	switch value := input.(type) {
	case nil:
		return []string{}, nil
	case string:
		raw = requirementDelimiter.Split(value, -1)
	case []string:
		raw = value
	case []any:
		for _, item := range value {
			str, ok := item.(string)
			if !ok {
				return nil, apperr.Validation(FieldRequirements, "Requirements must be a list of strings.")
			}
			raw = append(raw, str)
		}
	default:
		return nil, apperr.Validation(FieldRequirements, "Requirements must be a list or a delimited string.")
	}

	trimmed := lo.Map(raw, func(item string, _ int) string { return strings.TrimSpace(item) })
	return lo.Filter(trimmed, func(item string, _ int) bool { return item != "" }), nil
}

// ParseSalary accepts numbers and strings like "12", "12.5" or "12.5 LPA".
func ParseSalary(input any) (float64, error) {
	var value float64

	switch raw := input.(type) {
	case float64:
		value = raw
	case float32:
		value = float64(raw)
	case int:
		value = float64(raw)
	case int64:
		value = float64(raw)
	case json.Number:
		parsed, err := raw.Float64()
		if err != nil {
			return 0, invalidSalary()
		}
		value = parsed
	case string:
		match := salaryPattern.FindStringSubmatch(strings.TrimSpace(raw))
		if match == nil {
			return 0, invalidSalary()
		}
		parsed, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return 0, invalidSalary()
		}
		value = parsed
	default:
		return 0, invalidSalary()
	}

	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0, invalidSalary()
	}
	return value, nil
}

func invalidSalary() error {
	return apperr.Validation(FieldSalary, "Salary must be a positive number in LPA, e.g. 12 or 12.5 LPA.")
}

func ParseDeadline(input string) (time.Time, error) {
	if strings.TrimSpace(input) == "" {
		return time.Time{}, apperr.Validation(FieldDeadline, "Deadline is required.")
	}

	parsed, ok := ParseTimestamp(input)
	if !ok {
		return time.Time{}, apperr.Validation(FieldDeadline, "Deadline must be a valid date.")
	}
	return parsed, nil
}

// ParseTimestamp accepts RFC 3339 and date-only layouts and normalizes the result to UTC.
func ParseTimestamp(input string) (time.Time, bool) {
	input = strings.TrimSpace(input)
	for _, layout := range deadlineLayouts {
		if parsed, err := time.Parse(layout, input); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParsePosition truncates fractional counts.
func ParsePosition(input any) (int, error) {
	value, ok := toNumber(input)
	if !ok {
		return 0, apperr.Validation(FieldPosition, "Position must be a number.")
	}

	position := math.Trunc(value)
	if position <= 0 {
		return 0, apperr.Validation(FieldPosition, "Position must be greater than 0.")
	}
	if position > MaxCount {
		return 0, apperr.Validationf(FieldPosition, "Position must be at most %d.", MaxCount)
	}
	return int(position), nil
}

func ParseExperienceLevel(input any) (int, error) {
	value, ok := toNumber(input)
	if !ok {
		return 0, apperr.Validation(FieldExperienceLevel, "Experience level must be a number.")
	}

	level := math.Trunc(value)
	if level < 0 {
		return 0, apperr.Validation(FieldExperienceLevel, "Experience level cannot be negative.")
	}
	if level > MaxCount {
		return 0, apperr.Validationf(FieldExperienceLevel, "Experience level must be at most %d.", MaxCount)
	}
	return int(level), nil
}

func toNumber(input any) (float64, bool) {
	var value float64

	switch raw := input.(type) {
	case float64:
		value = raw
	case float32:
		value = float64(raw)
	case int:
		value = float64(raw)
	case int64:
		value = float64(raw)
	case json.Number:
		parsed, err := raw.Float64()
		if err != nil {
			return 0, false
		}
		value = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return 0, false
		}
		value = parsed
	default:
		return 0, false
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
