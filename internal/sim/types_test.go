package sim

import (
	"math"
	"testing"

	"github.com/san-kum/attractors/internal/dynamo"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		valid bool
	}{
		{"default", DefaultConfig(), true},
		{"negative dt", Config{Dt: -0.01, Steps: 1}, true},
		{"nan dt", Config{Dt: float32(math.NaN()), Steps: 1}, false},
		{"inf dt", Config{Dt: float32(math.Inf(1)), Steps: 1}, false},
		{"zero dt", Config{Dt: 0, Steps: 1}, false},
		{"zero steps", Config{Dt: 0.01}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err == nil) != tt.valid {
				t.Errorf("Validate() = %v, want valid=%v", err, tt.valid)
			}
		})
	}
}

func TestResult_Axis(t *testing.T) {
	r := &Result{Series: []dynamo.Point{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}}

	tests := []struct {
		axis int
		want []float64
	}{
		{0, []float64{1, 4}},
		{1, []float64{2, 5}},
		{2, []float64{3, 6}},
	}

	for _, tt := range tests {
		got := r.Axis(tt.axis)
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("Axis(%d)[%d] = %v, want %v", tt.axis, i, got[i], tt.want[i])
			}
		}
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Step: 3, Message: "boom"}
	if err.Error() != "step 3: boom" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
