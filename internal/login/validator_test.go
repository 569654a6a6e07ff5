package login

import (
	"errors"
	"testing"

	"github.com/careerpath/advisor/internal/profile"
)

func TestSignUpValidation(t *testing.T) {
	v := DefaultValidator()

	tests := []struct {
		name  string
		input Input
		want  Kind
	}{
		{"missing name", Input{Name: "  ", Email: "a@b.com"}, MissingName},
		{"missing name wins over missing email", Input{}, MissingName},
		{"missing email", Input{Name: "Ann", Email: " \t"}, MissingEmail},
		{"no at", Input{Name: "Ann", Email: "ann.example.com"}, InvalidEmailFormat},
		{"no dot after at", Input{Name: "Ann", Email: "ann@example"}, InvalidEmailFormat},
		{"space inside", Input{Name: "Ann", Email: "an n@example.com"}, InvalidEmailFormat},
		{"double at", Input{Name: "Ann", Email: "a@b@c.com"}, InvalidEmailFormat},
		{"empty tld", Input{Name: "Ann", Email: "a@b."}, InvalidEmailFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(tt.input, "")
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Kind != tt.want {
				t.Errorf("Kind = %s, want %s", verr.Kind, tt.want)
			}
			if verr.Message() == "" {
				t.Error("empty Message()")
			}
		})
	}
}

func TestSignUpSuccessTrims(t *testing.T) {
	id, err := DefaultValidator().Validate(Input{Name: "  Ann Lee ", Email: " ann@example.com  "}, "Stored")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if want := (profile.Identity{Email: "ann@example.com", DisplayName: "Ann Lee"}); id != want {
		t.Errorf("Validate = %+v, want %+v", id, want)
	}
}

func TestInvalidFormatRegardlessOfOtherFields(t *testing.T) {
	for _, v := range []Validator{
		{Mode: ModeSignUp},
		{Mode: ModeLogin},
		{Mode: ModeLogin, RequirePassword: true},
	} {
		_, err := v.Validate(Input{Name: "Ann", Email: "nope@nowhere", Password: ""}, "")
		if !errors.Is(err, &ValidationError{Kind: InvalidEmailFormat}) {
			t.Errorf("mode %s: err = %v, want InvalidEmailFormat", v.Mode, err)
		}
	}
}

func TestLoginModeDoesNotRequireName(t *testing.T) {
	v := Validator{Mode: ModeLogin}

	tests := []struct {
		name   string
		input  Input
		stored string
		want   string
	}{
		{"email local part", Input{Email: "sam@example.com"}, "", "sam"},
		{"provided name", Input{Name: "Samuel", Email: "sam@example.com"}, "", "Samuel"},
		{"stored name wins", Input{Name: "Samuel", Email: "sam@example.com"}, "Sam S.", "Sam S."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := v.Validate(tt.input, tt.stored)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if id.DisplayName != tt.want {
				t.Errorf("DisplayName = %q, want %q", id.DisplayName, tt.want)
			}
		})
	}
}

func TestPasswordRequiredOnlyWhenConfigured(t *testing.T) {
	tests := []struct {
		name     string
		v        Validator
		password string
		wantErr  bool
	}{
		{"not required", Validator{Mode: ModeSignUp}, "", false},
		{"required and missing", Validator{Mode: ModeSignUp, RequirePassword: true}, "", true},
		{"required and given", Validator{Mode: ModeSignUp, RequirePassword: true}, "anything", false},
	}
	for _, tt := range tests {
		_, err := tt.v.Validate(Input{Name: "Ann", Email: "a@b.com", Password: tt.password}, "")
		if tt.wantErr && !errors.Is(err, &ValidationError{Kind: MissingPassword}) {
			t.Errorf("%s: err = %v, want MissingPassword", tt.name, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
	}
}

func TestResolveDisplayName(t *testing.T) {
	tests := []struct {
		stored, provided, email string
		want                    string
	}{
		{"Stored", "Given", "x@y.z", "Stored"},
		{" ", "Given", "x@y.z", "Given"},
		{"", "", "x@y.z", "x"},
	}
	for _, tt := range tests {
		if got := ResolveDisplayName(tt.stored, tt.provided, tt.email); got != tt.want {
			t.Errorf("ResolveDisplayName(%q, %q, %q) = %q, want %q", tt.stored, tt.provided, tt.email, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeSignUp, false},
		{"signup", ModeSignUp, false},
		{"LOGIN", ModeLogin, false},
		{"oauth", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidationErrorIsAnyKind(t *testing.T) {
	err := error(&ValidationError{Kind: MissingEmail})
	if !errors.Is(err, &ValidationError{}) {
		t.Error("a kindless ValidationError should match any kind")
	}
	if errors.Is(err, &ValidationError{Kind: MissingName}) {
		t.Error("MissingEmail matched MissingName")
	}
}
