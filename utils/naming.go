package utils

import (
	"crypto/rand"
	"math/big"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
)

// NameGenerator produces replacement base names for stored pastes.
// Generate reports false when no replacement should be used, in which case
// the caller keeps the submitted name.
type NameGenerator interface {
	Generate() (string, bool)
}

// NamingConfig selects and parameterizes a name generator.
type NamingConfig struct {
	Enabled   bool
	Type      string // "petname" or "alphanumeric"
	Words     int    // pet name word count
	Separator string // pet name separator
	Length    int    // alphanumeric length
}

const alphanumericCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewNameGenerator builds a generator from config. A disabled or unknown
// configuration yields a generator that never produces a name.
func NewNameGenerator(cfg NamingConfig) NameGenerator {
	if !cfg.Enabled {
		return disabledGenerator{}
	}
	switch strings.ToLower(cfg.Type) {
	case "petname":
		words := cfg.Words
		if words <= 0 {
			words = 2
		}
		return &petNameGenerator{words: words, separator: cfg.Separator}
	case "alphanumeric":
		length := cfg.Length
		if length <= 0 {
			length = 8
		}
		return &alphanumericGenerator{length: length}
	default:
		return disabledGenerator{}
	}
}

type disabledGenerator struct{}

func (disabledGenerator) Generate() (string, bool) { return "", false }

type petNameGenerator struct {
	words     int
	separator string
}

func (g *petNameGenerator) Generate() (string, bool) {
	return petname.Generate(g.words, g.separator), true
}

type alphanumericGenerator struct {
	length int
}

func (g *alphanumericGenerator) Generate() (string, bool) {
	result := make([]byte, g.length)
	for i := range result {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphanumericCharset))))
		if err != nil {
			return "", false
		}
		result[i] = alphanumericCharset[idx.Int64()]
	}
	return string(result), true
}
