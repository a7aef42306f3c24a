package types

import "testing"

func TestParseEasingCurve(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   EasingCurve
		wantOK bool
	}{
		{"精确匹配", "OutQuad", EaseOutQuad, true},
		{"忽略大小写", "inoutbounce", EaseInOutBounce, true},
		{"首尾空白", "  InBack ", EaseInBack, true},
		{"未知名称回退线性", "Wobble", EaseLinear, false},
		{"空字符串", "", EaseLinear, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEasingCurve(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseEasingCurve(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestEasingCurveNamesRoundTrip(t *testing.T) {
	curves := AllEasingCurves()
	if len(curves) != 31 {
		t.Fatalf("expected 31 curves, got %d", len(curves))
	}
	for _, c := range curves {
		parsed, ok := ParseEasingCurve(c.String())
		if !ok || parsed != c {
			t.Errorf("curve %d: name %q parsed back as (%v, %v)", int(c), c.String(), parsed, ok)
		}
	}
}

func TestEasingCurveString_OutOfRange(t *testing.T) {
	if got := EasingCurve(-1).String(); got != "Linear" {
		t.Errorf("EasingCurve(-1).String() = %q, want Linear", got)
	}
	if got := EasingCurve(999).String(); got != "Linear" {
		t.Errorf("EasingCurve(999).String() = %q, want Linear", got)
	}
}

func TestOvershoots(t *testing.T) {
	if !EaseOutBack.Overshoots() || !EaseInOutElastic.Overshoots() {
		t.Error("Back and Elastic curves should report overshoot")
	}
	if EaseOutBounce.Overshoots() || EaseLinear.Overshoots() {
		t.Error("Bounce and Linear curves stay within [0,1]")
	}
}
