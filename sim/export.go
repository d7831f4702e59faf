// Renders retained log samples as a fixed-column tabular record set,
// serializable to CSV or a sequence of JSON records. Export is read-only
// with respect to the log.

package sim

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// ExportColumns is the fixed header of the tabular export.
var ExportColumns = []string{"Time", "RPM", "Speed", "Temp", "FuelLevel"}

// sampleTimeLayout formats timestamps with sub-second precision in local time.
const sampleTimeLayout = "15:04:05.000000"

// Records renders samples as string rows under ExportColumns. RPM is an
// integer column; the float columns carry one decimal place.
func Records(samples []TelemetrySample) [][]string {
	rows := make([][]string, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, []string{
			s.Time.Format(sampleTimeLayout),
			strconv.Itoa(s.RPM),
			strconv.FormatFloat(s.Speed, 'f', 1, 64),
			strconv.FormatFloat(s.Temp, 'f', 1, 64),
			strconv.FormatFloat(s.FuelLevel, 'f', 1, 64),
		})
	}
	return rows
}

// WriteCSV writes the header and one row per sample to w.
func WriteCSV(w io.Writer, samples []TelemetrySample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}
	for _, row := range Records(samples) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing export row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// exportRecord is the JSON shape of one sample.
type exportRecord struct {
	Time      string  `json:"time"`
	RPM       int     `json:"rpm"`
	Speed     float64 `json:"speed"`
	Temp      float64 `json:"temp"`
	FuelLevel float64 `json:"fuel_level"`
}

// WriteJSON writes samples to w as an array of records with the same
// rounding as the CSV export.
func WriteJSON(w io.Writer, samples []TelemetrySample) error {
	records := make([]exportRecord, 0, len(samples))
	for _, s := range samples {
		records = append(records, exportRecord{
			Time:      s.Time.Format(sampleTimeLayout),
			RPM:       s.RPM,
			Speed:     s.Speed,
			Temp:      s.Temp,
			FuelLevel: s.FuelLevel,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding export records: %w", err)
	}
	return nil
}
