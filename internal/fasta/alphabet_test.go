package fasta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := map[string]struct {
		seq  string
		want Alphabet
	}{
		"plain dna":           {"ATCGATCG", AlphabetNucleotide},
		"lowercase dna":       {"atcg", AlphabetNucleotide},
		"rna":                 {"AUGGCU", AlphabetNucleotide},
		"dna with n":          {"ACGTN", AlphabetNucleotide},
		"iupac ambiguity":     {"ACGTRYSWKMBDHV", AlphabetNucleotide},
		"protein":             {"MKTVL", AlphabetProtein},
		"lowercase protein":   {"mktvl", AlphabetProtein},
		"protein with stop":   {"MKTVL*", AlphabetProtein},
		"protein ambiguity":   {"MKXZJ", AlphabetProtein},
		"empty":               {"", AlphabetUnknown},
		"digits":              {"1234", AlphabetUnknown},
		"gap characters":      {"ATC-G", AlphabetUnknown},
		"mixed with protein":  {"MKTVL!", AlphabetUnknown},
		"nucleotide wins tie": {"ACGT", AlphabetNucleotide},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.seq))
		})
	}
}

func TestAlphabetString(t *testing.T) {
	assert.Equal(t, "Nucleotide", AlphabetNucleotide.String())
	assert.Equal(t, "Protein", AlphabetProtein.String())
	assert.Equal(t, "Unknown", AlphabetUnknown.String())
	assert.Equal(t, "Unknown", Alphabet(42).String())
}
