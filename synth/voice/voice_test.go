package voice

import (
	"fmt"
	"testing"
)

func TestStyleLookup(t *testing.T) {
	for _, name := range StyleNames() {
		if got := Style(name).Name; got != name {
			t.Fatalf("Style(%q).Name = %q", name, got)
		}
	}
	if got := Style("nope"); got.Name != StyleOff || got.DryMix != 1 || got.FormantMix != 0 {
		t.Fatalf("unknown style = %+v, want off", got)
	}
	if HasStyle("nope") || !HasStyle("robot") {
		t.Fatal("HasStyle mismatch")
	}
}

func TestStyleValues(t *testing.T) {
	robot := Style("robot")
	if robot.Q != 12 || robot.Glide != 0.025 || robot.NoiseGain != 0.03 || robot.NF2 != 900 {
		t.Fatalf("robot = %+v", robot)
	}
	if cute := Style("cute"); cute.FormantMix != 0.8 || cute.Sustain != 0.75 {
		t.Fatalf("cute = %+v", cute)
	}
}

func TestVowelFallback(t *testing.T) {
	if got := Vowel("i"); got != (VowelFormant{300, 2200, 3000}) {
		t.Fatalf("Vowel(i) = %+v", got)
	}
	if got := Vowel("x"); got != Vowel("a") {
		t.Fatalf("Vowel(x) = %+v, want a", got)
	}
}

func TestSyllableTypes(t *testing.T) {
	tests := []struct {
		name  string
		nasal bool
		noise bool
		vowel string
	}{
		{"na", true, false, "a"},
		{"da", false, true, "a"},
		{"sa", false, true, "a"},
		{"shi", false, true, "i"},
		{"ma", true, false, "a"},
		{"la", false, false, "e"},
	}
	for _, tt := range tests {
		st := Type(tt.name)
		if st.Nasal() != tt.nasal || (st.Noise != nil) != tt.noise || st.Vowel != tt.vowel {
			t.Fatalf("Type(%q) = %+v", tt.name, st)
		}
	}
	if Type("zz").Name != TypeNa {
		t.Fatal("unknown type should fall back to na")
	}
	if len(TypeNames()) != 6 {
		t.Fatalf("TypeNames = %v", TypeNames())
	}
}

func TestNamesAreCopies(t *testing.T) {
	names := StyleNames()
	names[0] = "mutated"
	if StyleNames()[0] != StyleOff {
		t.Fatal("StyleNames exposes internal slice")
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		in   int
		want Preset
		mix  float64
	}{
		{-4, 0, 0.35},
		{0, 0, 0.35},
		{1, 1, 1},
		{2, 2, 1.25},
		{9, 2, 1.25},
	}
	for _, tt := range tests {
		p := ClampPreset(tt.in)
		if p != tt.want || p.VoiceMix() != tt.mix {
			t.Fatalf("ClampPreset(%d) = %d mix %v", tt.in, p, p.VoiceMix())
		}
	}
	if DefaultPreset.Look().Outline != 0.9 {
		t.Fatalf("default look = %+v", DefaultPreset.Look())
	}
}

func ExampleType() {
	st := Type("sa")
	fmt.Println(st.Consonant, st.Vowel, st.Noise.Center, st.Nasal())
	// Output:
	// s a 7200 false
}
