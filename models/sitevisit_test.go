package models

import "testing"

func checklist(material, safety, workmanship, timeline bool) QCChecklist {
	return QCChecklist{
		"materialQuality":   material,
		"safetyCompliance":  safety,
		"workmanship":       workmanship,
		"timelineAdherence": timeline,
	}
}

func TestQCChecklistValidate(t *testing.T) {
	tests := []struct {
		name    string
		qc      QCChecklist
		wantErr bool
	}{
		{"all keys present", checklist(true, true, false, false), false},
		{"empty checklist", QCChecklist{}, true},
		{"nil checklist", nil, true},
		{"missing key", QCChecklist{"materialQuality": true, "safetyCompliance": true, "workmanship": true}, true},
		{"extra key", QCChecklist{
			"materialQuality":   true,
			"safetyCompliance":  true,
			"workmanship":       true,
			"timelineAdherence": true,
			"cleanliness":       true,
		}, true},
		{"wrong key substituted", QCChecklist{
			"materialQuality":  true,
			"safetyCompliance": true,
			"workmanship":      true,
			"punctuality":      true,
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.qc.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestQCChecklistScoring(t *testing.T) {
	tests := []struct {
		name    string
		qc      QCChecklist
		score   int
		pct     float64
		band    string
	}{
		{"all passed", checklist(true, true, true, true), 4, 100, QCBandExcellent},
		{"three passed", checklist(true, true, true, false), 3, 75, QCBandGood},
		{"two passed", checklist(true, true, false, false), 2, 50, QCBandNeedsAttention},
		{"one passed", checklist(true, false, false, false), 1, 25, QCBandNeedsAttention},
		{"none passed", checklist(false, false, false, false), 0, 0, QCBandNeedsAttention},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.qc.Score(); got != tt.score {
				t.Errorf("Score() = %d, want %d", got, tt.score)
			}
			if got := tt.qc.Percentage(); got != tt.pct {
				t.Errorf("Percentage() = %v, want %v", got, tt.pct)
			}
			if got := tt.qc.Band(); got != tt.band {
				t.Errorf("Band() = %q, want %q", got, tt.band)
			}
		})
	}
}

func TestQCChecklistRoundTrip(t *testing.T) {
	qc := checklist(true, false, true, false)

	value, err := qc.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}

	var scanned QCChecklist
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if err := scanned.Validate(); err != nil {
		t.Errorf("scanned checklist failed validation: %v", err)
	}
	if scanned.Score() != 2 {
		t.Errorf("scanned Score() = %d, want 2", scanned.Score())
	}
}
