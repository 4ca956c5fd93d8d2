package export

import (
	"bytes"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/academic-events/eventhub/internal/domain/dto"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	recordsSheet = "Records"
)

// ReportToXLSX writes a report as a workbook with a summary sheet (total and
// grouping) and a records sheet with one row per record.
func ReportToXLSX(report *dto.Report) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(recordsSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Report")
	_ = f.SetCellValue(summarySheet, "B1", string(report.Type))
	_ = f.SetCellValue(summarySheet, "A2", "Generated at")
	_ = f.SetCellValue(summarySheet, "B2", report.GeneratedAt.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A3", "Generated by")
	_ = f.SetCellValue(summarySheet, "B3", report.GeneratedBy)
	_ = f.SetCellValue(summarySheet, "A4", "Total")
	_ = f.SetCellValue(summarySheet, "B4", report.Data.Total)

	groups := report.Groups()
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		row := strconv.Itoa(i + 6)
		_ = f.SetCellValue(summarySheet, "A"+row, k)
		_ = f.SetCellValue(summarySheet, "B"+row, groups[k])
	}

	header, rows := records(report)
	writeRow(f, 1, header)
	for i, r := range rows {
		writeRow(f, i+2, r)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

func records(report *dto.Report) ([]string, [][]interface{}) {
	var rows [][]interface{}
	switch report.Type {
	case dto.ReportEvents:
		for _, e := range report.Data.Events {
			limit := ""
			if e.MaxParticipants.Limited() {
				limit = strconv.Itoa(int(e.MaxParticipants))
			}
			rows = append(rows, []interface{}{e.ID, e.Title, string(e.Type), e.Date, e.Time, e.Location, e.OrganizerName, limit, strings.Join(e.Tags, ", ")})
		}
		return []string{"ID", "Title", "Type", "Date", "Time", "Location", "Organizer", "Max participants", "Tags"}, rows
	case dto.ReportRegistrations:
		for _, r := range report.Data.Registrations {
			rows = append(rows, []interface{}{r.ID, r.EventID, r.UserName, r.UserEmail, string(r.Status), r.RegisteredAt.Format(time.RFC3339)})
		}
		return []string{"ID", "Event", "Name", "Email", "Status", "Registered at"}, rows
	case dto.ReportUsers:
		for _, u := range report.Data.Users {
			rows = append(rows, []interface{}{u.ID, u.Name, u.Email, string(u.Role), u.Institution, u.IsActive})
		}
		return []string{"ID", "Name", "Email", "Role", "Institution", "Active"}, rows
	}
	return nil, nil
}

func writeRow(f *excelize.File, row int, values interface{}) {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return
	}
	switch v := values.(type) {
	case []string:
		_ = f.SetSheetRow(recordsSheet, cell, &v)
	case []interface{}:
		_ = f.SetSheetRow(recordsSheet, cell, &v)
	}
}
