package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/user/fin-planner-api/internal/models"
	"github.com/user/fin-planner-api/internal/services/eligibility"
)

const fontFamily = "Plan"

// PDFGenerator - генератор PDF-отчёта по паре планов
type PDFGenerator struct {
	// fontPath - TTF с поддержкой ₹ и деванагари; пусто - встроенный Helvetica
	fontPath string
	now      func() time.Time
}

// NewPDFGenerator создаёт новый генератор
func NewPDFGenerator(fontPath string) *PDFGenerator {
	return &PDFGenerator{fontPath: fontPath, now: time.Now}
}

// pdfWriter оборачивает fpdf и приводит текст к возможностям шрифта
type pdfWriter struct {
	*fpdf.Fpdf
	family string
	text   func(string) string
}

// GeneratePlanPDF рисует отчёт: профиль (если передан) и оба сценария
func (g *PDFGenerator) GeneratePlanPDF(plan models.PlanPair, profile *models.FinancialProfile) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle("Financial Plan", true)
	pdf.SetCreator("fin-planner-api", true)

	w := &pdfWriter{Fpdf: pdf}
	if g.fontPath != "" {
		pdf.AddUTF8Font(fontFamily, "", g.fontPath)
		pdf.AddUTF8Font(fontFamily, "B", g.fontPath)
		w.family = fontFamily
		w.text = func(s string) string { return s }
	} else {
		tr := pdf.UnicodeTranslatorFromDescriptor("")
		w.family = "Helvetica"
		w.text = func(s string) string { return tr(latin1(s)) }
	}

	pdf.AddPage()

	g.drawHeader(w)
	if profile != nil {
		g.drawProfile(w, *profile)
	}

	var surplus *int64
	if profile != nil {
		s := eligibility.Surplus(*profile)
		surplus = &s
	}
	g.drawScenario(w, "Aggressive", plan.Aggressive, surplus)
	g.drawScenario(w, "Balanced", plan.Balanced, surplus)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawHeader — заголовок и дата формирования
func (g *PDFGenerator) drawHeader(w *pdfWriter) {
	w.SetFont(w.family, "B", 16)
	w.CellFormat(180, 10, w.text("Your Financial Plan"), "", 1, "L", false, 0, "")

	w.SetFont(w.family, "", 9)
	w.CellFormat(180, 5, w.text("Generated on "+g.now().Format("2 January 2006")), "", 1, "L", false, 0, "")

	y := w.GetY()
	w.SetLineWidth(0.3)
	w.Line(15, y+1, 195, y+1)
	w.SetLineWidth(0.2)
	w.Ln(5)
}

// drawProfile — исходные данные и статус классификатора
func (g *PDFGenerator) drawProfile(w *pdfWriter, p models.FinancialProfile) {
	a := eligibility.Assess(p)

	w.SetFont(w.family, "B", 11)
	w.CellFormat(180, 7, w.text("Monthly snapshot"), "", 1, "L", false, 0, "")

	rows := [][2]string{
		{"Income", FormatRupees(p.Income)},
		{"Expenses", FormatRupees(p.Expenses)},
		{"EMI", FormatRupees(p.MonthlyEMI)},
		{"Surplus", FormatRupees(a.MonthlySurplus)},
		{"Total debt", FormatRupees(p.TotalDebt)},
		{"Savings", FormatRupees(p.Savings)},
		{"Debt-to-income", fmt.Sprintf("%.0f%%", a.DebtToIncomeRatio*100)},
		{"Status", string(a.Status)},
	}

	w.SetFont(w.family, "", 9)
	for _, row := range rows {
		w.CellFormat(50, 6, w.text(row[0]), "1", 0, "L", false, 0, "")
		w.CellFormat(60, 6, w.text(row[1]), "1", 1, "R", false, 0, "")
	}
	w.Ln(6)
}

// drawScenario — сценарий: заголовок, описание, распределение, шаги
func (g *PDFGenerator) drawScenario(w *pdfWriter, label string, s models.PlanScenario, surplus *int64) {
	w.SetFillColor(240, 240, 240)
	w.SetFont(w.family, "B", 12)
	title := label
	if s.Title != "" {
		title = fmt.Sprintf("%s: %s", label, s.Title)
	}
	w.CellFormat(180, 8, w.text(title), "", 1, "L", true, 0, "")

	if s.Desc != "" {
		w.SetFont(w.family, "", 10)
		w.MultiCell(180, 5, w.text(s.Desc), "", "L", false)
	}
	w.Ln(2)

	// Таблица распределения
	w.SetFont(w.family, "B", 9)
	w.CellFormat(90, 6, w.text("Allocation"), "1", 0, "L", false, 0, "")
	w.CellFormat(60, 6, w.text("Per month"), "1", 1, "R", false, 0, "")

	w.SetFont(w.family, "", 9)
	w.CellFormat(90, 6, w.text("Extra debt payment"), "1", 0, "L", false, 0, "")
	w.CellFormat(60, 6, w.text(FormatRupees(int64(s.Allocation.ExtraDebt))), "1", 1, "R", false, 0, "")
	w.CellFormat(90, 6, w.text("Investment"), "1", 0, "L", false, 0, "")
	w.CellFormat(60, 6, w.text(FormatRupees(int64(s.Allocation.Invest))), "1", 1, "R", false, 0, "")

	// Остаток показываем только когда известен профиль
	if surplus != nil {
		liquid := *surplus - int64(s.Allocation.ExtraDebt) - int64(s.Allocation.Invest)
		if liquid > 0 {
			w.CellFormat(90, 6, w.text("Kept liquid"), "1", 0, "L", false, 0, "")
			w.CellFormat(60, 6, w.text(FormatRupees(liquid)), "1", 1, "R", false, 0, "")
		}
	}

	committed := int64(s.Allocation.ExtraDebt) + int64(s.Allocation.Invest)
	w.SetFont(w.family, "", 8)
	w.CellFormat(150, 5, w.text("Committed monthly: "+AmountToWords(committed)), "", 1, "L", false, 0, "")
	w.Ln(3)

	if len(s.Steps) > 0 {
		w.SetFont(w.family, "B", 10)
		w.CellFormat(180, 6, w.text("Steps"), "", 1, "L", false, 0, "")
		w.SetFont(w.family, "", 10)
		for i, step := range s.Steps {
			w.MultiCell(180, 5, w.text(fmt.Sprintf("%d. %s", i+1, step)), "", "L", false)
		}
	}
	w.Ln(6)
}
