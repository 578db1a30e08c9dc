package fasta

// Alphabet is the detected character class of a sequence body.
type Alphabet int

const (
	AlphabetUnknown Alphabet = iota
	AlphabetNucleotide
	AlphabetProtein
)

func (a Alphabet) String() string {
	switch a {
	case AlphabetNucleotide:
		return "Nucleotide"
	case AlphabetProtein:
		return "Protein"
	default:
		return "Unknown"
	}
}

// Symbol sets are matched case-insensitively and must cover the whole body.
// Nucleotides are ACGTUN plus the IUPAC ambiguity codes; proteins are the 20
// amino acids plus ambiguity letters and the '*' stop.
const (
	nucleotideSymbols = "ACGTUNRYSWKMBDHV"
	proteinSymbols    = "ACDEFGHIKLMNPQRSTVWYBJOUXZ*"
)

// Classify reports whether seq is a nucleotide sequence, a protein sequence,
// or neither. The nucleotide set is checked first since it is almost entirely
// contained in the protein set. An empty sequence classifies as Unknown.
func Classify(seq string) Alphabet {
	if seq == "" {
		return AlphabetUnknown
	}
	if within(seq, nucleotideSymbols) {
		return AlphabetNucleotide
	}
	if within(seq, proteinSymbols) {
		return AlphabetProtein
	}
	return AlphabetUnknown
}

func within(seq, symbols string) bool {
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		ok := false
		for j := 0; j < len(symbols); j++ {
			if c == symbols[j] {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
