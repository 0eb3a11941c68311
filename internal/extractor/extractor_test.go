package extractor

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/septivank/danube-levels-bot/internal/model"
	"github.com/stretchr/testify/require"
)

func page(rows ...string) string {
	return `<html><body>
<table class="header"><tbody><tr><td>ignored</td></tr></tbody></table>
<table class="local">
  <thead><tr><th>#</th><th>Станция</th><th>Ниво</th><th>Изменение</th></tr></thead>
  <tbody>` + strings.Join(rows, "\n") + `</tbody>
</table>
</body></html>`
}

func row(n int, station, value, delta string) string {
	return fmt.Sprintf(`<tr><td>%d</td><td> %s </td><td><a href="/bg/station.php?id=%d">%s</a> cm</td><td>
	%s
	</td><td>extra</td></tr>`, n, station, n, value, delta)
}

func TestExtract_Rows(t *testing.T) {
	body := page(
		row(1, "Lom", "448", "-9"),
		row(2, "Ruse", "389", "+10"),
	)

	readings, err := NewLocalTable().Extract(body)
	require.NoError(t, err)
	require.Equal(t, model.ReadingSet{
		{Station: "Lom", Value: "448", Delta: "-9"},
		{Station: "Ruse", Value: "389", Delta: "+10"},
	}, readings)
}

func TestExtract_DocumentOrderAndDuplicates(t *testing.T) {
	stations := []string{"Ново село", "Видин", "Лом", "Оряхово", "Никопол", "Свищов", "Русе", "Силистра", "Лом"}
	rows := make([]string, len(stations))
	for i, s := range stations {
		rows[i] = row(i+1, s, fmt.Sprint(300+i), fmt.Sprintf("+%d", i))
	}

	readings, err := NewLocalTable().Extract(page(rows...))
	require.NoError(t, err)
	require.Len(t, readings, len(stations))
	for i, s := range stations {
		require.Equal(t, s, readings[i].Station)
		require.Equal(t, fmt.Sprint(300+i), readings[i].Value)
	}
}

func TestExtract_TrimOnly(t *testing.T) {
	body := page(`<tr><td>1</td><td>  Ново   Село
	</td><td><a> 354 </a></td><td> -33 </td></tr>`)

	readings, err := NewLocalTable().Extract(body)
	require.NoError(t, err)
	require.Equal(t, "Ново   Село", readings[0].Station)
	require.Equal(t, "354", readings[0].Value)
	require.Equal(t, "-33", readings[0].Delta)
}

func TestExtract_EmptyTable(t *testing.T) {
	readings, err := NewLocalTable().Extract(page())
	require.NoError(t, err)
	require.NotNil(t, readings)
	require.Empty(t, readings)
}

func TestExtract_NoTable(t *testing.T) {
	readings, err := NewLocalTable().Extract("<html><body><p>maintenance</p></body></html>")
	require.NoError(t, err)
	require.Empty(t, readings)
}

func TestExtract_ShortRowFails(t *testing.T) {
	body := page(
		row(1, "Lom", "448", "-9"),
		`<tr><td>2</td><td>Ruse</td><td><a>389</a></td></tr>`,
		row(3, "Silistra", "396", "+4"),
	)

	readings, err := NewLocalTable().Extract(body)
	require.Nil(t, readings)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, 1, parseErr.Row)
	require.Equal(t, 3, parseErr.Cells)
}

func TestExtract_MissingAnchorGivesEmptyValue(t *testing.T) {
	body := page(`<tr><td>1</td><td>Lom</td><td>448</td><td>-9</td></tr>`)

	readings, err := NewLocalTable().Extract(body)
	require.NoError(t, err)
	require.Equal(t, model.Reading{Station: "Lom", Value: "", Delta: "-9"}, readings[0])
}
