package utils

import (
	"strings"
	"testing"
)

func TestNewNameGeneratorDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  NamingConfig
	}{
		{
			name: "disabled",
			cfg:  NamingConfig{Enabled: false, Type: "petname"},
		},
		{
			name: "unknown type",
			cfg:  NamingConfig{Enabled: true, Type: "uuid"},
		},
		{
			name: "empty type",
			cfg:  NamingConfig{Enabled: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewNameGenerator(tt.cfg)
			if name, ok := gen.Generate(); ok {
				t.Errorf("Generate() = (%q, true), want no name", name)
			}
		})
	}
}

func TestAlphanumericGenerator(t *testing.T) {
	gen := NewNameGenerator(NamingConfig{Enabled: true, Type: "alphanumeric", Length: 10})
	for i := 0; i < 100; i++ {
		name, ok := gen.Generate()
		if !ok {
			t.Fatalf("Generate() returned no name")
		}
		if len(name) != 10 {
			t.Fatalf("Generate() length = %d, want 10", len(name))
		}
		for _, char := range name {
			if !strings.ContainsRune(alphanumericCharset, char) {
				t.Errorf("unexpected character %c in %q", char, name)
			}
		}
	}
}

func TestAlphanumericGeneratorDefaultLength(t *testing.T) {
	gen := NewNameGenerator(NamingConfig{Enabled: true, Type: "alphanumeric"})
	name, ok := gen.Generate()
	if !ok {
		t.Fatalf("Generate() returned no name")
	}
	if len(name) != 8 {
		t.Errorf("Generate() length = %d, want default 8", len(name))
	}
}

func TestPetNameGenerator(t *testing.T) {
	gen := NewNameGenerator(NamingConfig{Enabled: true, Type: "petname", Words: 3, Separator: "-"})
	name, ok := gen.Generate()
	if !ok {
		t.Fatalf("Generate() returned no name")
	}
	if parts := strings.Split(name, "-"); len(parts) != 3 {
		t.Errorf("Generate() = %q, want 3 words separated by '-'", name)
	}
}

func TestAlphanumericGeneratorUniqueness(t *testing.T) {
	gen := NewNameGenerator(NamingConfig{Enabled: true, Type: "alphanumeric", Length: 12})
	seen := make(map[string]bool)
	duplicates := 0
	for i := 0; i < 1000; i++ {
		name, ok := gen.Generate()
		if !ok {
			t.Fatalf("Generate() returned no name")
		}
		if seen[name] {
			duplicates++
		}
		seen[name] = true
	}
	if duplicates > 0 {
		t.Errorf("generated %d duplicate names out of 1000", duplicates)
	}
}
