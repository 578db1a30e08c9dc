// Package fasta decodes FASTA formatted text into records. It keeps parsing
// conservative: headers open records, sequence lines are concatenated, blank
// lines are ignored, and anything else is reported with its line number.
package fasta

import "io"

// Record is a single FASTA entry: the header text after '>' and the sequence
// body with line breaks removed. Records are plain values; nothing mutates
// them after the Reader hands them out.
type Record struct {
	Header   string
	Sequence string
}

// Len returns the number of characters in the sequence body.
func (r Record) Len() int {
	return len(r.Sequence)
}

// Alphabet classifies the sequence body. See Classify.
func (r Record) Alphabet() Alphabet {
	return Classify(r.Sequence)
}

// Fasta renders the record in canonical FASTA form with a single sequence
// line. The body is not re-wrapped to a fixed width.
func (r Record) Fasta() string {
	return ">" + r.Header + "\n" + r.Sequence + "\n"
}

// ReadAll decodes every record from r. It is a convenience for small inputs;
// use a Reader directly to stream large files one record at a time.
func ReadAll(r io.Reader) ([]Record, error) {
	fr := NewReader(r)
	var records []Record
	for {
		rec, err := fr.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
