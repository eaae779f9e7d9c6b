package utility

import (
	"reflect"
	"testing"
)

func TestToFloat(t *testing.T) {
	if got := ToFloat("28.61", 0); got != 28.61 {
		t.Errorf("ToFloat = %v", got)
	}
	if got := ToFloat("", 10); got != 10 {
		t.Errorf("fallback not used: %v", got)
	}
	if got := ToFloat("abc", -1); got != -1 {
		t.Errorf("fallback not used: %v", got)
	}
}

func TestToInt(t *testing.T) {
	if got := ToInt("150", 0); got != 150 {
		t.Errorf("ToInt = %v", got)
	}
	// float notation is accepted and truncated
	if got := ToInt("25.9", 0); got != 25 {
		t.Errorf("ToInt(25.9) = %v, want 25", got)
	}
	if got := ToInt("x", 7); got != 7 {
		t.Errorf("fallback not used: %v", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(0, 1, 50); got != 1 {
		t.Errorf("Clamp low = %v", got)
	}
	if got := Clamp(400, 1, 300); got != 300 {
		t.Errorf("Clamp high = %v", got)
	}
	if got := Clamp(25, 1, 50); got != 25 {
		t.Errorf("Clamp mid = %v", got)
	}
}

func TestClampFloat(t *testing.T) {
	if got := ClampFloat(0.2, 1, 50); got != 1 {
		t.Errorf("ClampFloat low = %v", got)
	}
	if got := ClampFloat(999, 1, 50); got != 50 {
		t.Errorf("ClampFloat high = %v", got)
	}
	if got := ClampFloat(2.5, 1, 50); got != 2.5 {
		t.Errorf("ClampFloat mid = %v", got)
	}
}

func TestSplitCSV(t *testing.T) {
	got := SplitCSV(" ccs , type 2,,chademo ")
	want := []string{"ccs", "type 2", "chademo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitCSV = %v, want %v", got, want)
	}
	if got := SplitCSV(""); got != nil {
		t.Errorf("SplitCSV(empty) = %v, want nil", got)
	}
}
