// Package report renders printable PDF sheets for medications.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"medgpt-backend/internal/models"

	"github.com/jung-kurt/gofpdf"
)

const disclaimer = "This information is for educational purposes only and does not replace advice from a healthcare professional."

// sheet wraps gofpdf with the cp1252 translator the core fonts need.
type sheet struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newSheet(orientation string) *sheet {
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	return &sheet{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (s *sheet) header(title, subtitle string) {
	s.pdf.SetFont("Arial", "B", 16)
	s.pdf.SetTextColor(37, 99, 235) // MedGPT blue
	s.pdf.CellFormat(0, 10, "MedGPT", "", 1, "C", false, 0, "")
	s.pdf.SetTextColor(0, 0, 0)
	s.pdf.SetFont("Arial", "B", 13)
	s.pdf.CellFormat(0, 8, s.tr(title), "", 1, "C", false, 0, "")
	if subtitle != "" {
		s.pdf.SetFont("Arial", "I", 10)
		s.pdf.CellFormat(0, 6, s.tr(subtitle), "", 1, "C", false, 0, "")
	}
	s.pdf.Ln(4)
}

func (s *sheet) section(title string) {
	s.pdf.Ln(2)
	s.pdf.SetFont("Arial", "B", 12)
	s.pdf.SetFillColor(240, 240, 240)
	s.pdf.CellFormat(0, 8, s.tr(title), "1", 1, "L", true, 0, "")
	s.pdf.SetFont("Arial", "", 10)
}

func (s *sheet) paragraph(text string) {
	s.pdf.MultiCell(0, 5, s.tr(text), "", "L", false)
}

func (s *sheet) bullets(items []string) {
	for _, item := range items {
		s.pdf.MultiCell(0, 5, s.tr("• "+item), "", "L", false)
	}
}

func (s *sheet) detail(label, value string) {
	s.pdf.SetFont("Arial", "B", 10)
	s.pdf.CellFormat(50, 7, s.tr(label), "1", 0, "", false, 0, "")
	s.pdf.SetFont("Arial", "", 10)
	s.pdf.CellFormat(0, 7, s.tr(value), "1", 1, "", false, 0, "")
}

func (s *sheet) output() ([]byte, error) {
	s.pdf.Ln(6)
	s.pdf.SetFont("Arial", "I", 8)
	s.pdf.MultiCell(0, 4, s.tr(disclaimer), "", "C", false)

	var buf bytes.Buffer
	if err := s.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// MedicationSheet renders the full detail page of one medication.
func MedicationSheet(med *models.Medication) ([]byte, error) {
	s := newSheet("P")
	subtitle := med.GenericName
	if med.BrandName != "" {
		subtitle = fmt.Sprintf("%s (%s)", med.GenericName, med.BrandName)
	}
	s.header(med.Name, subtitle)

	s.detail("Category", med.Category)
	s.detail("Drug class", med.DrugClass)
	s.detail("Pregnancy", med.PregnancyCategory)
	s.detail("Breastfeeding", med.BreastfeedingSafety)
	s.detail("Prescription", yesNo(med.Profile.PrescriptionRequired))

	s.section("Description")
	s.paragraph(med.Description)

	if len(med.Ingredients) > 0 {
		s.section("Ingredients")
		s.bullets(med.Ingredients)
	}

	s.section("Dosage")
	for _, d := range med.Dosages {
		s.paragraph(fmt.Sprintf("%s %s: %s", d.Strength, strings.ToLower(d.Form), d.Instructions))
	}

	s.section("Side effects")
	s.bullets(med.SideEffects.Common)
	if len(med.SideEffects.Serious) > 0 {
		s.pdf.SetFont("Arial", "B", 10)
		s.paragraph("Seek medical help for:")
		s.pdf.SetFont("Arial", "", 10)
		s.bullets(med.SideEffects.Serious)
	}

	if len(med.KnownInteractions) > 0 {
		s.section("Interactions")
		for _, in := range med.KnownInteractions {
			s.paragraph(fmt.Sprintf("%s (%s): %s", in.Medication, in.Severity, in.Description))
		}
	}

	if len(med.Contraindications) > 0 {
		s.section("Contraindications")
		s.bullets(med.Contraindications)
	}

	if med.StorageInstructions != "" {
		s.section("Storage")
		s.paragraph(med.StorageInstructions)
	}

	return s.output()
}

// ComparisonSheet renders the side-by-side comparison table.
func ComparisonSheet(cmp *models.CompareResponse) ([]byte, error) {
	s := newSheet("L")
	names := make([]string, len(cmp.Medications))
	for i, m := range cmp.Medications {
		names[i] = m.Name
	}
	s.header("Medication comparison", strings.Join(names, " vs. "))

	labelWidth := 55.0
	colWidth := (277.0 - labelWidth) / float64(max(len(cmp.Medications), 1))

	row := func(label string, value func(models.ComparisonEntry) string) {
		s.pdf.SetFont("Arial", "B", 10)
		s.pdf.CellFormat(labelWidth, 8, s.tr(label), "1", 0, "", true, 0, "")
		s.pdf.SetFont("Arial", "", 10)
		for _, m := range cmp.Medications {
			s.pdf.CellFormat(colWidth, 8, s.tr(value(m)), "1", 0, "", false, 0, "")
		}
		s.pdf.Ln(-1)
	}

	s.pdf.SetFillColor(240, 240, 240)
	row("Medication", func(m models.ComparisonEntry) string { return m.Name })
	row("Generic name", func(m models.ComparisonEntry) string { return m.GenericName })
	row("Drug class", func(m models.ComparisonEntry) string { return m.DrugClass })
	row("Effectiveness", func(m models.ComparisonEntry) string { return m.Effectiveness })
	row("Side effect severity", func(m models.ComparisonEntry) string { return string(m.SideEffects.Severity) })
	row("Known interactions", func(m models.ComparisonEntry) string { return fmt.Sprintf("%d", m.Interactions) })
	row("Cost", func(m models.ComparisonEntry) string { return m.Cost })
	row("Administration", func(m models.ComparisonEntry) string { return m.AdministrationRoute })
	row("Prescription required", func(m models.ComparisonEntry) string { return yesNo(m.PrescriptionRequired) })

	s.section("Common side effects")
	for _, m := range cmp.Medications {
		s.paragraph(fmt.Sprintf("%s: %s", m.Name, strings.Join(m.SideEffects.Common, ", ")))
	}

	if len(cmp.Interactions) > 0 {
		s.section("Interactions between these medications")
		for _, in := range cmp.Interactions {
			s.paragraph(fmt.Sprintf("%s + %s (%s): %s", in.Medications[0], in.Medications[1], in.Severity, in.Description))
		}
	}

	return s.output()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
