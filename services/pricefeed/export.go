package pricefeed

import (
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"os"
)

// WriteCsv exports the records as delimited text, one row per record,
// header row first. An empty record list writes nothing, not even the
// header.
func WriteCsv(records []Record, filename string) error {
	if len(records) == 0 {
		slog.Warn("no records to export, skipping", "file", filename)
		return nil
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	err = writer.Write(recordHeader)
	if err != nil {
		return err
	}
	for _, record := range records {
		err = writer.Write(record.row())
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJson exports the records as an indented array of objects. An
// empty record list writes nothing.
func WriteJson(records []Record, filename string) error {
	if len(records) == 0 {
		slog.Warn("no records to export, skipping", "file", filename)
		return nil
	}

	contents, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, contents, 0644)
}
