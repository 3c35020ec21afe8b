package utils

import "testing"

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid password", "abc12!@", true},
		{"too short", "a1!", false},
		{"no number", "abcdef!!", false},
		{"no special char", "abcdef12", false},
		{"numbers and symbols only", "123!@#", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePassword(tt.password); got != tt.want {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestValidateCategoryRule(t *testing.T) {
	InitValidator()

	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"known category", "sports", false},
		{"another known category", "volunteer", false},
		{"empty passes", "", false},
		{"unknown fails", "mystery", true},
		{"display name fails", "Thể thao", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate.Var(tt.code, "category")
			if tt.wantErr && err == nil {
				t.Errorf("expected %q to fail validation", tt.code)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected %q to pass, got %v", tt.code, err)
			}
		})
	}
}
