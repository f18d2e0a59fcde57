package pricefeed

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func exportRecords() []Record {
	return []Record{
		{
			Name:                "A Light in the Attic",
			OriginalCurrency:    "GBP",
			OriginalPrice:       51.77,
			ConvertedCurrency:   "KES",
			ConvertedPrice:      9059.75,
			ConversionRate:      175,
			ConversionTimestamp: "2023-11-14 22:13:20",
		},
		{
			// comma in the name exercises delimiter escaping
			Name:                "Poems, Collected and New",
			OriginalCurrency:    "GBP",
			OriginalPrice:       23.89,
			ConvertedCurrency:   "KES",
			ConvertedPrice:      4180.75,
			ConversionRate:      175,
			ConversionTimestamp: "2023-11-14 22:13:20",
		},
	}
}

// readCsvRecords parses an exported csv file back into records.
func readCsvRecords(t *testing.T, filename string) []Record {
	file, err := os.Open(filename)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	require.Equal(t, recordHeader, rows[0])

	parseFloat := func(s string) float64 {
		value, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err)
		return value
	}

	records := []Record{}
	for _, row := range rows[1:] {
		require.Len(t, row, len(recordHeader))
		records = append(records, Record{
			Name:                row[0],
			OriginalCurrency:    row[1],
			OriginalPrice:       parseFloat(row[2]),
			ConvertedCurrency:   row[3],
			ConvertedPrice:      parseFloat(row[4]),
			ConversionRate:      parseFloat(row[5]),
			ConversionTimestamp: row[6],
		})
	}
	return records
}

func TestExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	csvFile := filepath.Join(dir, "out.csv")
	jsonFile := filepath.Join(dir, "out.json")
	records := exportRecords()

	require.NoError(t, WriteCsv(records, csvFile))
	require.NoError(t, WriteJson(records, jsonFile))

	fromCsv := readCsvRecords(t, csvFile)

	contents, err := os.ReadFile(jsonFile)
	require.NoError(t, err)
	var fromJson []Record
	require.NoError(t, json.Unmarshal(contents, &fromJson))

	if diff := cmp.Diff(records, fromCsv); diff != "" {
		t.Fatalf("csv round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(records, fromJson); diff != "" {
		t.Fatalf("json round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJsonIndentation(t *testing.T) {
	jsonFile := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJson(exportRecords(), jsonFile))

	contents, err := os.ReadFile(jsonFile)
	require.NoError(t, err)
	require.Contains(t, string(contents), "\n    {")
	require.Contains(t, string(contents), `"name": "A Light in the Attic"`)
}

func TestWriteSkipsEmptyRecordList(t *testing.T) {
	dir := t.TempDir()
	csvFile := filepath.Join(dir, "out.csv")
	jsonFile := filepath.Join(dir, "out.json")

	require.NoError(t, WriteCsv(nil, csvFile))
	require.NoError(t, WriteJson(nil, jsonFile))

	_, err := os.Stat(csvFile)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(jsonFile)
	require.True(t, os.IsNotExist(err))
}

func TestWriteCsvOverwrites(t *testing.T) {
	csvFile := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, os.WriteFile(csvFile, []byte("stale contents\n"), 0644))
	require.NoError(t, WriteCsv(exportRecords(), csvFile))

	records := readCsvRecords(t, csvFile)
	require.Len(t, records, 2)
}
