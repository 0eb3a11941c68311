package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/septivank/danube-levels-bot/internal/model"
)

// RowSelector matches the body rows of the water level table
const RowSelector = "table.local tbody tr"

// Cell positions within a row. The source page is unversioned, these are
// assumed, not discovered.
const (
	stationCell = 1
	valueCell   = 2
	deltaCell   = 3
	minCells    = deltaCell + 1
)

// ParseError is returned when the document does not have the expected structure
type ParseError struct {
	Row   int // zero-based body row index, -1 when the document itself is unreadable
	Cells int
	Err   error
}

func (e *ParseError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("parse document: %v", e.Err)
	}
	return fmt.Sprintf("parse row %d: has %d cells, want at least %d", e.Row, e.Cells, minCells)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LocalTable extracts readings from the "local" levels table
type LocalTable struct{}

// NewLocalTable creates a new extractor
func NewLocalTable() LocalTable {
	return LocalTable{}
}

// Extract returns one reading per body row, in document order. A row with fewer
// than four cells fails the whole extraction.
func (LocalTable) Extract(body string) (model.ReadingSet, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, &ParseError{Row: -1, Err: err}
	}

	readings := model.ReadingSet{}
	var parseErr error
	doc.Find(RowSelector).EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < minCells {
			parseErr = &ParseError{Row: i, Cells: cells.Length()}
			return false
		}

		readings = append(readings, model.Reading{
			Station: strings.TrimSpace(cells.Eq(stationCell).Text()),
			Value:   strings.TrimSpace(cells.Eq(valueCell).Find("a").Text()),
			Delta:   strings.TrimSpace(cells.Eq(deltaCell).Text()),
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return readings, nil
}
