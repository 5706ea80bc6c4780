package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuild(t *testing.T) {
	content, err := Build(
		Sheet{
			Name:    "Summary",
			Headers: []string{"Code", "Name", "Minutes"},
			Rows: [][]interface{}{
				{"EMP-001", "Alice Khan", 570},
				{"EMP-002", "Bob Malik", 0},
			},
		},
		Sheet{
			Name:    "Totals",
			Headers: []string{"Hours"},
			Rows:    [][]interface{}{{"9.50"}},
		},
	)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Totals"}, f.GetSheetList())

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Code", "Name", "Minutes"}, rows[0])
	assert.Equal(t, []string{"EMP-001", "Alice Khan", "570"}, rows[1])
	assert.Equal(t, []string{"EMP-002", "Bob Malik", "0"}, rows[2])

	totals, err := f.GetRows("Totals")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Hours"}, {"9.50"}}, totals)
}

func TestBuildHeaderOnly(t *testing.T) {
	content, err := Build(Sheet{Name: "Empty", Headers: []string{"A", "B"}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Empty")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B"}}, rows)
}

func TestBuildWithoutSheets(t *testing.T) {
	_, err := Build()
	assert.ErrorIs(t, err, ErrNoSheets)
}
