package ui

import (
	"math"
	"testing"
)

func TestSlider_SetValue(t *testing.T) {
	tests := []struct {
		name        string
		in          float64
		want        float64
		wantChanged bool
	}{
		{"inside range", 2.5, 2.5, true},
		{"below min", -3, 0, true},
		{"above max", 12, 5, true},
		{"unchanged", 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSlider(0, 0, 100, "Cohesion", 0, 5, 1)
			var got []float64
			s.OnChange = func(v float64) { got = append(got, v) }

			if changed := s.SetValue(tt.in); changed != tt.wantChanged {
				t.Errorf("SetValue(%v) changed = %v; want %v", tt.in, changed, tt.wantChanged)
			}
			if s.Value != tt.want {
				t.Errorf("Value = %v; want %v", s.Value, tt.want)
			}
			if tt.wantChanged && (len(got) != 1 || got[0] != tt.want) {
				t.Errorf("OnChange calls = %v; want [%v]", got, tt.want)
			}
			if !tt.wantChanged && len(got) != 0 {
				t.Errorf("OnChange called for an unchanged value: %v", got)
			}
		})
	}
}

func TestSlider_ValueAtCursor(t *testing.T) {
	s := NewSlider(10, 0, 200, "Separation", 0, 4, 1)

	cases := map[float64]float64{10: 0, 60: 1, 110: 2, 210: 4, 500: 4, -5: 0}
	for mx, want := range cases {
		if got := s.valueAt(mx); math.Abs(got-want) > 1e-9 {
			t.Errorf("valueAt(%v) = %v; want %v", mx, got, want)
		}
	}
	if r := s.Ratio(); math.Abs(r-0.25) > 1e-9 {
		t.Errorf("Ratio() = %v; want 0.25", r)
	}
}

func TestNewSlider_ClampsInitialValue(t *testing.T) {
	s := NewSlider(0, 0, 100, "Alignment", 0, 3, 9)
	if s.Value != 3 {
		t.Errorf("Value = %v; want 3", s.Value)
	}
	if s.Caption() != "Alignment: 3.00" {
		t.Errorf("Caption() = %q", s.Caption())
	}
}

func TestButton_FiresOncePerPress(t *testing.T) {
	clicks := 0
	b := NewButton(0, 0, 50, 20, "Restart", func() { clicks++ })

	b.press(true, true)
	b.press(true, true) // held
	b.press(true, false)
	b.press(true, true)
	b.press(false, true) // dragged outside

	if clicks != 2 {
		t.Errorf("clicks = %d; want 2", clicks)
	}
}

func TestCheckbox_TogglesOncePerPress(t *testing.T) {
	c := NewCheckbox(0, 0, "Show perception", false)
	var seen []bool
	c.OnChange = func(v bool) { seen = append(seen, v) }

	c.press(true, true)
	c.press(true, true)
	c.press(false, false)
	c.press(true, true)

	if c.Value {
		t.Errorf("Value = true after two toggles")
	}
	if len(seen) != 2 || !seen[0] || seen[1] {
		t.Errorf("OnChange calls = %v; want [true false]", seen)
	}
}

func TestPanel_LayoutStacksWidgets(t *testing.T) {
	p := NewPanel("Flock", 10, 10, 200, 400)
	p.AddSection("Weights")
	s1 := p.AddSlider("Alignment", 0, 3, 1)
	s2 := p.AddSlider("Cohesion", 0, 3, 1)
	p.AddSection("Session")
	b := p.AddButton("Pause", nil)

	// title, section, label
	if want := 10 + titleHeight + sectionHeight + labelHeight; s1.Y != want {
		t.Errorf("first slider Y = %v; want %v", s1.Y, want)
	}
	if want := s1.Y + s1.Height() + labelHeight; s2.Y != want {
		t.Errorf("second slider Y = %v; want %v", s2.Y, want)
	}
	// buttons have no caption
	if want := s2.Y + s2.Height() + sectionHeight; b.Y != want {
		t.Errorf("button Y = %v; want %v", b.Y, want)
	}
	if s1.X != 20 || s1.W != 180 {
		t.Errorf("slider geometry = (%v, %v); want (20, 180)", s1.X, s1.W)
	}
}

func TestPanel_ScrollIsClamped(t *testing.T) {
	p := NewPanel("Flock", 0, 0, 200, 100)
	p.AddSection("Weights")
	first := p.AddSlider("Alignment", 0, 3, 1)
	for _, l := range []string{"Cohesion", "Separation", "Speed", "Force"} {
		p.AddSlider(l, 0, 3, 1)
	}
	y0 := first.Y

	p.Scroll(-50)
	if p.ScrollOffset != 0 {
		t.Errorf("ScrollOffset = %v after scrolling up at the top", p.ScrollOffset)
	}

	p.Scroll(30)
	if p.ScrollOffset != 30 || first.Y != y0-30 {
		t.Errorf("ScrollOffset = %v, Y = %v; want 30, %v", p.ScrollOffset, first.Y, y0-30)
	}

	p.Scroll(1e6)
	if want := p.ContentHeight() - p.Height + margin; p.ScrollOffset != want {
		t.Errorf("ScrollOffset = %v; want %v", p.ScrollOffset, want)
	}
}
