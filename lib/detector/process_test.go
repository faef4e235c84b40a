package detector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/openmed/species-detect/lib"
	"github.com/openmed/species-detect/lib/tabular"
)

type processSuite struct {
	suite.Suite
}

func TestProcessSuite(t *testing.T) {
	suite.Run(t, new(processSuite))
}

func (s *processSuite) writeFile(contents string) string {
	path := filepath.Join(s.T().TempDir(), "input.csv")
	s.Require().NoError(os.WriteFile(path, []byte(contents), 0644))
	return path
}

func (s *processSuite) TestProcessFile() {
	path := s.writeFile("id,text\n1,infection with E. coli\n2,no species here\n")

	client := invokerFunc(func(ctx context.Context, text string) ([]lib.Entity, error) {
		if text == "infection with E. coli" {
			return []lib.Entity{
				{Word: "E. coli", Score: 0.95, Start: 15, End: 22},
			}, nil
		}
		return []lib.Entity{}, nil
	})

	d := New(client)
	rows, err := d.ProcessFile(context.Background(), path, "text")
	s.Require().NoError(err)

	// The second text had no entities so it contributes no rows.
	s.Require().Len(rows, 1)
	s.Equal(tabular.Row{
		OriginalIndex: 0,
		OriginalText:  "infection with E. coli",
		Species:       "E. coli",
		Confidence:    0.95,
		StartPosition: 15,
		EndPosition:   22,
		Status:        StatusSuccess,
	}, rows[0])
}

func (s *processSuite) TestProcessFileMissingColumn() {
	path := s.writeFile("id,body\n1,some text\n")

	client := invokerFunc(func(ctx context.Context, text string) ([]lib.Entity, error) {
		s.Fail("no inference call expected for a missing column")
		return nil, nil
	})

	d := New(client)
	rows, err := d.ProcessFile(context.Background(), path, "text")
	s.Nil(rows)

	var missing tabular.MissingColumnError
	s.Require().True(errors.As(err, &missing))
	s.Equal("text", missing.Column)
}

func (s *processSuite) TestProcessFileNotFound() {
	d := New(&mockInvoker{})
	_, err := d.ProcessFile(context.Background(), filepath.Join(s.T().TempDir(), "nope.csv"), "text")
	s.Error(err)
}

func (s *processSuite) TestFlattenMultipleEntities() {
	results := []BatchResult{
		{
			Index: 3,
			Text:  "mixed culture",
			Entities: []lib.Entity{
				{Word: "E. coli", Score: 0.95, Start: 0, End: 7},
				{Word: "S. aureus", Score: 0.91, Start: 12, End: 21},
				{Word: "C. albicans", Score: 0.88, Start: 26, End: 37},
			},
			SpeciesCount: 3,
			Status:       StatusSuccess,
		},
	}

	rows := Flatten(results)
	s.Require().Len(rows, 3)
	for _, row := range rows {
		s.Equal(3, row.OriginalIndex)
		s.Equal("mixed culture", row.OriginalText)
		s.Equal(StatusSuccess, row.Status)
	}
}
