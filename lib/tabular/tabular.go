package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Row is one line of the flattened output: one detected entity joined with
// the text it was found in.
type Row struct {
	OriginalIndex int
	OriginalText  string
	Species       string
	Confidence    float64
	StartPosition int
	EndPosition   int
	Status        string
}

// MissingColumnError is returned when the configured text column does not
// exist in the input file.
type MissingColumnError struct {
	Column string
}

func (e MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found in file", e.Column)
}

// ReadColumn extracts a single named column from a delimited file,
// preserving row order. The first record is treated as the header.
func ReadColumn(r io.Reader, column string) ([]string, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, MissingColumnError{Column: column}
	} else if err != nil {
		return nil, err
	}

	index := -1
	for i, name := range header {
		if name == column {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, MissingColumnError{Column: column}
	}

	var texts []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		texts = append(texts, record[index])
	}

	return texts, nil
}

// WriteRows writes the flattened results as CSV, header included.
func WriteRows(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)

	err := writer.Write([]string{
		"original_index", "original_text", "species", "confidence",
		"start_position", "end_position", "status",
	})
	if err != nil {
		return err
	}

	for _, row := range rows {
		err := writer.Write([]string{
			strconv.Itoa(row.OriginalIndex),
			row.OriginalText,
			row.Species,
			strconv.FormatFloat(row.Confidence, 'f', -1, 64),
			strconv.Itoa(row.StartPosition),
			strconv.Itoa(row.EndPosition),
			row.Status,
		})
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
