package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestJSONTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"RFC3339", `"2025-08-15T10:30:00Z"`, false},
		{"RFC3339 with offset", `"2025-08-15T10:30:00+05:30"`, false},
		{"fractional seconds with zone", `"2025-08-15T10:30:00.123Z"`, false},
		{"microseconds no zone", `"2025-08-15T10:30:00.123456"`, false},
		{"milliseconds no zone", `"2025-08-15T10:30:00.000"`, false},
		{"seconds no zone", `"2025-08-15T10:30:00"`, false},
		{"date only", `"2025-08-15"`, false},
		{"null", `null`, false},
		{"empty string", `""`, false},
		{"garbage", `"next tuesday"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var jt JSONTime
			err := json.Unmarshal([]byte(tt.input), &jt)
			if (err != nil) != tt.wantErr {
				t.Errorf("Unmarshal(%s) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestJSONTimeMarshal(t *testing.T) {
	jt := JSONTime(time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC))
	out, err := json.Marshal(jt)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(out) != `"2025-08-15T10:30:00Z"` {
		t.Errorf("Marshal = %s", out)
	}

	var zero JSONTime
	out, err = json.Marshal(zero)
	if err != nil {
		t.Fatalf("Marshal zero error: %v", err)
	}
	if string(out) != "null" {
		t.Errorf("Marshal zero = %s, want null", out)
	}
}

func TestJSONTimeDateOnlyRoundTrip(t *testing.T) {
	var jt JSONTime
	if err := json.Unmarshal([]byte(`"2025-08-15"`), &jt); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	got := jt.Time()
	want := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parsed %v, want %v", got, want)
	}
}
