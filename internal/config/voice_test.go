package config

import (
	"flag"
	"testing"
)

func TestVoiceFlags(t *testing.T) {
	v := DefaultVoice()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	v.RegisterFlags(fs)
	if err := fs.Parse([]string{"-style", "cute", "-syllable", "ma", "-count", "3", "-preset", "2", "-speed", "1.5", "-crush", "0.25"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := v.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	s := v.Syllables()
	if !s.Enabled || s.Style != "cute" || s.Type != "ma" || s.Count != 3 {
		t.Fatalf("syllables = %+v", s)
	}

	opts := Default().RenderOptions(v)
	if opts.SampleRate != 48000 || opts.Speed != 1.5 || opts.Preset != 2 || opts.Syllables != s || opts.Crush != 0.25 {
		t.Fatalf("render options = %+v", opts)
	}
}

func TestDefaultVoiceDisablesSyllables(t *testing.T) {
	v := DefaultVoice()
	if err := v.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if v.Syllables().Enabled {
		t.Fatal("default voice has syllables")
	}
}

func TestVoiceValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Voice)
	}{
		{"style", func(v *Voice) { v.Style = "yodel" }},
		{"type", func(v *Voice) { v.Type = "zz" }},
		{"count low", func(v *Voice) { v.Count = 0 }},
		{"count high", func(v *Voice) { v.Count = 9 }},
		{"preset", func(v *Voice) { v.Preset = 3 }},
		{"speed", func(v *Voice) { v.Speed = 0 }},
		{"crush", func(v *Voice) { v.Crush = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := DefaultVoice()
			tt.edit(&v)
			if err := v.Validate(); err == nil {
				t.Fatalf("accepted %+v", v)
			}
		})
	}
}
