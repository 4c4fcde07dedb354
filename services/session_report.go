package services

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"unicode"

	"cabinet_avocat_go/models"
)

// SessionReportData is the view model for the session report template
type SessionReportData struct {
	Title      string
	Direction  string // "rtl" when the report contains Arabic script
	LawyerName string
	FirmName   string
	LogoURL    string
	Date       string
	Sessions   []SessionReportRow
}

// SessionReportRow is one hearing in the report table
type SessionReportRow struct {
	OrderNumber string
	ClientName  string
	CaseNumber  string
	StartTime   string
	EndTime     string
	Location    string
	Outcome     string
}

// ContainsArabic reports whether s contains Arabic script. Reports with
// Arabic content are rendered right-to-left; the print engine handles the
// text shaping.
func ContainsArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}

// BuildSessionReportData assembles the view model for one or more hearings
// of a single day
func BuildSessionReportData(lawyer *models.Lawyer, date string, sessions []models.Session) SessionReportData {
	data := SessionReportData{
		Title:      "Session report",
		Direction:  "ltr",
		LawyerName: lawyer.FullName(),
		FirmName:   lawyer.FirmName,
		LogoURL:    lawyer.LogoURL,
		Date:       date,
	}

	for _, s := range sessions {
		row := SessionReportRow{
			OrderNumber: s.OrderNumber,
			ClientName:  s.Client.FullName(),
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			Location:    s.Location,
			Outcome:     s.Outcome,
		}
		if s.Case != nil {
			row.CaseNumber = s.Case.CaseNumber
		}
		data.Sessions = append(data.Sessions, row)

		if ContainsArabic(row.ClientName) || ContainsArabic(row.Location) || ContainsArabic(row.Outcome) {
			data.Direction = "rtl"
		}
	}

	if ContainsArabic(data.LawyerName) || ContainsArabic(data.FirmName) {
		data.Direction = "rtl"
	}

	return data
}

// RenderSessionReportHTML executes the report template with the view model
func RenderSessionReportHTML(data SessionReportData) (string, error) {
	path := filepath.Join("templates", "reports", "session_report.html")
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read report template: %w", err)
	}

	tmpl, err := template.New("session_report").Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}

	return buf.String(), nil
}

// GenerateSessionReportPDF renders the report HTML to PDF bytes
func GenerateSessionReportPDF(data SessionReportData) ([]byte, error) {
	html, err := RenderSessionReportHTML(data)
	if err != nil {
		return nil, err
	}
	return GeneratePDF(html, DefaultPDFOptions())
}
