package repository

import (
	"strings"
	"testing"
)

func TestEmployeeDayQueryFiltersActiveStatuses(t *testing.T) {
	query := strings.ToLower(listEmployeeDayQuery)

	requiredFragments := []string{
		"where salon_id = $1",
		"employee_id = $2",
		"date = $3",
		"status in ('pending', 'confirmed', 'in_progress')",
		"id != $4",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected conflict query fragment %q to be present", fragment)
		}
	}

	// Completed, cancelled and no-show appointments must never block slots.
	for _, terminal := range []string{"completed", "cancelled", "no_show"} {
		if strings.Contains(query, "'"+terminal+"'") {
			t.Fatalf("terminal status %q must not appear in the active filter", terminal)
		}
	}
}

func TestEmployeeQueryIsTenantScoped(t *testing.T) {
	query := strings.ToLower(employeeQuery)

	if !strings.Contains(query, "salon_id = $2") {
		t.Fatal("employee lookup must be scoped to the salon")
	}
	if strings.Contains(query, "for update") {
		t.Fatal("plain employee lookup must not take a row lock")
	}
}

func TestDecodeWorkSchedule(t *testing.T) {
	schedule := decodeWorkSchedule([]byte(`{"lundi": "09:00-17:00", "mardi": ""}`))
	if schedule["lundi"] != "09:00-17:00" {
		t.Errorf("lundi = %q, want 09:00-17:00", schedule["lundi"])
	}

	// Non-string values survive as raw JSON so the engine treats them as
	// malformed entries instead of the whole schedule failing.
	loose := decodeWorkSchedule([]byte(`{"lundi": "09:00-17:00", "mardi": 42}`))
	if loose["lundi"] != "09:00-17:00" {
		t.Errorf("lundi = %q, want parsed string", loose["lundi"])
	}
	if loose["mardi"] != "42" {
		t.Errorf("mardi = %q, want raw JSON passthrough", loose["mardi"])
	}

	if decodeWorkSchedule(nil) != nil {
		t.Error("empty payload must decode to nil")
	}
}
