package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fieldsales-backend/internal/analytics"
	"github.com/xuri/excelize/v2"
)

var (
	coverageHeader   = []string{"City", "Visits", "Sales", "Revenue", "Conversion %", "Contribution %"}
	commissionHeader = []string{"Salesperson", "Email", "Revenue", "Units", "Tier", "Units To Next Tier", "Objective Reached"}
)

func coverageRecords(rows []analytics.CityStats) [][]any {
	out := make([][]any, 0, len(rows))
	for _, s := range rows {
		out = append(out, []any{s.City, s.Visits, s.Sales, s.Revenue, s.ConversionPct, fmt.Sprintf("%.1f", s.ContributionPct)})
	}
	return out
}

func commissionRecords(rows []analytics.SalespersonStats) [][]any {
	out := make([][]any, 0, len(rows))
	for _, s := range rows {
		out = append(out, []any{s.Name, s.Email, s.Revenue, s.Units, string(s.Tier), s.UnitsToNext, s.ObjectiveReached})
	}
	return out
}

// writeExport renders the rows as csv (default) or xlsx.
func writeExport(w http.ResponseWriter, r *http.Request, name string, header []string, records [][]any) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	suffix := time.Now().Format("20060102")

	switch format {
	case "csv":
		data, err := exportCSV(header, records)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s.csv\"", name, suffix))
		_, _ = w.Write(data)
	case "xlsx", "excel":
		data, err := exportXLSX(name, header, records)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s.xlsx\"", name, suffix))
		_, _ = w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use csv or xlsx)")
	}
}

func exportCSV(header []string, records [][]any) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write(header)
	for _, rec := range records {
		row := make([]string, len(rec))
		for i, v := range rec {
			row[i] = csvCell(v)
		}
		_ = w.Write(row)
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func csvCell(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', 2, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func exportXLSX(name string, header []string, records [][]any) ([]byte, error) {
	f := excelize.NewFile()
	sheet := name
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, rec := range records {
		for c, v := range rec {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", last, style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
