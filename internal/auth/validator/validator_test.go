package validator

import (
	"testing"

	platformvalidator "salon_backend/platform/validator"
)

func TestStrongPassword(t *testing.T) {
	val := platformvalidator.New()
	if err := Register(val); err != nil {
		t.Fatalf("failed to register rule: %v", err)
	}

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all character classes", "Str0ng!Pass", true},
		{"symbol counts as special", "Str0ng€Pass", true},
		{"too short", "S0g!aa", false},
		{"missing uppercase", "str0ng!pass", false},
		{"missing lowercase", "STR0NG!PASS", false},
		{"missing digit", "Strong!Pass", false},
		{"missing special", "Str0ngPass", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := val.Var(tt.password, "strongpassword")
			if tt.valid && err != nil {
				t.Errorf("expected %q to pass, got %v", tt.password, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("expected %q to fail", tt.password)
			}
		})
	}
}
