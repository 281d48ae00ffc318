package utils

import (
	"math"
	"testing"
)

const unitSquare = `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`

func TestParseBoundary(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid polygon", unitSquare, false},
		{"not json", `{"type":`, true},
		{"point geometry rejected", `{"type":"Point","coordinates":[1,2]}`, true},
		{"too few points", `{"type":"Polygon","coordinates":[[[0,0],[1,0],[0,0]]]}`, true},
		{"longitude out of range", `{"type":"Polygon","coordinates":[[[200,0],[1,0],[1,1],[200,0]]]}`, true},
		{"latitude out of range", `{"type":"Polygon","coordinates":[[[0,95],[1,0],[1,1],[0,95]]]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBoundary([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseBoundary(%s) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestBoundaryStats(t *testing.T) {
	poly, err := ParseBoundary([]byte(unitSquare))
	if err != nil {
		t.Fatalf("ParseBoundary: %v", err)
	}

	area, centroid := BoundaryStats(poly)
	if math.Abs(area-1.0) > 1e-9 {
		t.Errorf("area = %f, expected 1.0", area)
	}
	if math.Abs(centroid.Lon()-0.5) > 1e-9 || math.Abs(centroid.Lat()-0.5) > 1e-9 {
		t.Errorf("centroid = %v, expected (0.5, 0.5)", centroid)
	}
}
