package iorecord

import (
	"fmt"
	"strings"

	"github.com/watertrack/jjmd/pkg/dashboard"
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string
	Message string
}

func fieldErrorSummary(fields []FieldError) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return strings.Join(parts, "; ")
}

func validateState(in dashboard.StateInput) error {
	var fields []FieldError
	if strings.TrimSpace(in.StateName) == "" {
		fields = append(fields, FieldError{
			Field:   "state_name",
			Message: "cannot be empty",
		})
	}
	if len(fields) > 0 {
		return ValidationError(fields)
	}
	return nil
}

func validateHouseholdStats(in dashboard.HouseholdStatsInput) error {
	var fields []FieldError
	if in.TotalRuralHouseholds < 1 {
		fields = append(fields, FieldError{
			Field:   "total_rural_households",
			Message: "must be at least 1",
		})
	}
	if in.HouseholdsWithTapWaterCurrent < 0 {
		fields = append(fields, FieldError{
			Field:   "households_with_tap_water_current",
			Message: "cannot be negative",
		})
	}
	fields = appendPctError(fields,
		"households_with_tap_water_current_pct",
		in.HouseholdsWithTapWaterCurrentPct)
	if len(fields) > 0 {
		return ValidationError(fields)
	}
	return nil
}

func validateWaterConnections(in dashboard.WaterConnectionsInput) error {
	var fields []FieldError
	if in.TapWaterConnectionsProvided < 0 {
		fields = append(fields, FieldError{
			Field:   "tap_water_connections_provided",
			Message: "cannot be negative",
		})
	}
	fields = appendPctError(fields,
		"tap_water_connections_provided_pct",
		in.TapWaterConnectionsProvidedPct)
	if len(fields) > 0 {
		return ValidationError(fields)
	}
	return nil
}

func validateHistoricalProgress(in dashboard.HistoricalProgressInput) error {
	var fields []FieldError
	if in.Date.IsZero() {
		fields = append(fields, FieldError{
			Field:   "year",
			Message: "date is required",
		})
	}
	if in.HouseholdsWithTapWater < 0 {
		fields = append(fields, FieldError{
			Field:   "households_with_tap_water",
			Message: "cannot be negative",
		})
	}
	fields = appendPctError(fields,
		"households_with_tap_water_pct",
		in.HouseholdsWithTapWaterPct)
	if len(fields) > 0 {
		return ValidationError(fields)
	}
	return nil
}

func appendPctError(
	fields []FieldError, name string, pct float64,
) []FieldError {
	if pct < 0 || pct > 100 {
		fields = append(fields, FieldError{
			Field:   name,
			Message: "must be between 0 and 100",
		})
	}
	return fields
}
