package converters

import (
	"path/filepath"
	"testing"

	"github.com/calperum/textkit/core/errors"
)

func TestInt(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "42", want: 42},
		{input: "-7", want: -7},
		{input: "0", want: 0},
		{input: "", wantErr: true},
		{input: "4.5", wantErr: true},
		{input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Int(tt.input)
			if tt.wantErr {
				requireConversionError(t, err, tt.input)
				return
			}
			if err != nil {
				t.Fatalf("Int(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Int(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestInt64(t *testing.T) {
	got, err := Int64("9223372036854775807")
	if err != nil {
		t.Fatalf("Int64 failed: %v", err)
	}
	if got != 9223372036854775807 {
		t.Errorf("Int64 = %d", got)
	}

	_, err = Int64("not-a-number")
	requireConversionError(t, err, "not-a-number")
}

func TestFloat32(t *testing.T) {
	got, err := Float32("2.5")
	if err != nil {
		t.Fatalf("Float32 failed: %v", err)
	}
	if got != 2.5 {
		t.Errorf("Float32 = %v, want 2.5", got)
	}

	_, err = Float32("1.2.3")
	requireConversionError(t, err, "1.2.3")
}

func TestFloat64(t *testing.T) {
	got, err := Float64("0.485714")
	if err != nil {
		t.Fatalf("Float64 failed: %v", err)
	}
	if got != 0.485714 {
		t.Errorf("Float64 = %v, want 0.485714", got)
	}

	_, err = Float64("")
	requireConversionError(t, err, "")
}

func TestBool(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{input: "true", want: true},
		{input: "TRUE", want: true},
		{input: "1", want: true},
		{input: "false", want: false},
		{input: "0", want: false},
		{input: "yes", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Bool(tt.input)
			if tt.wantErr {
				requireConversionError(t, err, tt.input)
				return
			}
			if err != nil {
				t.Fatalf("Bool(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Bool(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIdentity(t *testing.T) {
	got, err := Identity("ENG_DF_000170")
	if err != nil {
		t.Fatalf("Identity failed: %v", err)
	}
	if got != "ENG_DF_000170" {
		t.Errorf("Identity = %q", got)
	}
}

func TestPath(t *testing.T) {
	got, err := Path("corpora//ere/../ere/doc.xml")
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	want := filepath.Join("corpora", "ere", "doc.xml")
	if got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}

	_, err = Path("")
	requireConversionError(t, err, "")
}

// Func values must be assignable from the concrete converters.
func TestFuncAssignment(t *testing.T) {
	var f Func[int] = Int
	got, err := f("3")
	if err != nil || got != 3 {
		t.Errorf("Func[int](\"3\") = (%d, %v), want (3, nil)", got, err)
	}

	var g Func[string] = Identity
	if s, _ := g("x"); s != "x" {
		t.Errorf("Func[string](\"x\") = %q", s)
	}
}

func requireConversionError(t *testing.T, err error, input string) {
	t.Helper()
	if err == nil {
		t.Fatalf("conversion of %q succeeded, want error", input)
	}
	var convErr *errors.ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("error = %T, want *errors.ConversionError", err)
	}
	if convErr.Value != input {
		t.Errorf("ConversionError.Value = %q, want %q", convErr.Value, input)
	}
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}
