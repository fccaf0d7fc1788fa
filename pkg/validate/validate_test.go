package validate_test

import (
	"errors"
	"testing"

	"github.com/rotavan/rotavan/pkg/validate"
)

func TestCPF(t *testing.T) {
	tests := []struct {
		cpf  string
		want bool
	}{
		{"52998224725", true},  // valid check digits
		{"11144477735", true},  // valid check digits
		{"52998224726", false}, // wrong second digit
		{"52998224715", false}, // wrong first digit
		{"11111111111", false}, // repeated sequence
		{"00000000000", false},
		{"5299822472", false},    // too short
		{"529982247250", false},  // too long
		{"5299822472a", false},   // non-digit
		{"529.982.247", false},   // punctuation
		{"", false},
	}

	for _, tt := range tests {
		if got := validate.CPF(tt.cpf); got != tt.want {
			t.Errorf("CPF(%q) = %v, want %v", tt.cpf, got, tt.want)
		}
	}
}

func TestStruct_FieldErrors(t *testing.T) {
	type form struct {
		Name string `validate:"required"`
		CPF  string `validate:"omitempty,cpf"`
	}

	if err := validate.Struct(form{Name: "ok"}); err != nil {
		t.Fatalf("valid struct: %v", err)
	}
	if err := validate.Struct(form{Name: "ok", CPF: "52998224725"}); err != nil {
		t.Fatalf("valid cpf: %v", err)
	}

	err := validate.Struct(form{CPF: "123"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr *validate.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validate.Error, got %T", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(verr.Fields), verr)
	}
}
