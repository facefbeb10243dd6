package errors

import "testing"

func TestParseTrackID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "simple", input: "42", want: 42},
		{name: "zero", input: "0", want: 0},
		{name: "surrounding space", input: " 7 ", want: 7},
		{name: "empty", input: "", wantErr: true},
		{name: "negative", input: "-3", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "control char", input: "1\x002", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTrackID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTrackID(%q) = %d, want error", tt.input, got)
				}
				if !Is(err, ErrCodeInvalidInput) {
					t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTrackID(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTrackID(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	supported := []string{"svg", "json"}

	if err := ValidateFormats([]string{"svg", "json"}, supported); err != nil {
		t.Errorf("ValidateFormats(svg,json) = %v, want nil", err)
	}
	if err := ValidateFormats(nil, supported); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormats(nil) = %v, want %v", err, ErrCodeInvalidFormat)
	}
	if err := ValidateFormats([]string{"gif"}, supported); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormats(gif) = %v, want %v", err, ErrCodeInvalidFormat)
	}
}
