package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"net/http"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	portssvc "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/services"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/middleware"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	exportDateLayout = "02/01/2006"
	typeLabelIncome  = "รายรับ"
	typeLabelExpense = "รายจ่าย"
)

// exportHandler renders the selected month as downloadable documents. Both
// surfaces are derived from the same month window and summary the dashboard
// uses; nothing is computed here beyond formatting.
type exportHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newExportHandler(rs portssvc.ReportingSvcFacade) *exportHandler {
	return &exportHandler{reportingService: rs}
}

// registerExportRoutes registers the report export routes.
func registerExportRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newExportHandler(reportingService)

	exports := rg.Group("/reports/export")
	{
		exports.GET("/tsv", h.exportTSV)
		exports.GET("/print", h.exportPrintView)
	}
}

// exportTSV godoc
// @Summary Export month as TSV
// @Description Downloads the selected month's transactions as a tab-separated report with a summary footer.
// @Tags reports
// @Produce plain
// @Param month query string false "Reference month (YYYY-MM), defaults to current"
// @Success 200 {string} string "TSV document"
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/export/tsv [get]
func (h *exportHandler) exportTSV(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	refMonth, ok := parseMonthParam(c)
	if !ok {
		return
	}

	txns, summary, err := h.reportingService.MonthTransactions(c.Request.Context(), userID, refMonth)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	// UTF-8 BOM so spreadsheet applications detect Thai text correctly.
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	w.Comma = '\t'
	_ = w.Write([]string{"วันที่", "ประเภท", "รายการ", "หมวดหมู่", "จำนวนเงิน"})
	for _, t := range txns {
		amount := t.Amount
		label := typeLabelIncome
		if t.Type == domain.Expense {
			amount = amount.Neg()
			label = typeLabelExpense
		}
		_ = w.Write([]string{
			t.Date.Format(exportDateLayout),
			label,
			t.Description,
			t.Category,
			amount.StringFixed(2),
		})
	}
	_ = w.Write(nil)
	_ = w.Write([]string{"", "", "รวมรายรับ", "", summary.Income.StringFixed(2)})
	_ = w.Write([]string{"", "", "รวมรายจ่าย", "", summary.Expense.StringFixed(2)})
	_ = w.Write([]string{"", "", "กำไรสุทธิ", "", summary.Balance.StringFixed(2)})
	w.Flush()
	if err := w.Error(); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("shop-report-%s.tsv", refMonth.Format("2006-01"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/tab-separated-values; charset=utf-8", buf.Bytes())
}

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html lang="th">
<head>
<meta charset="utf-8">
<title>รายงานประจำเดือน {{.Month}}</title>
<style>
body { font-family: Arial, sans-serif; }
table { width: 100%; border-collapse: collapse; margin: 20px 0; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; }
td.amount { text-align: right; }
.summary { margin-top: 20px; font-weight: bold; }
@media print { body { margin: 20px; } }
</style>
</head>
<body>
<h1>รายงานประจำเดือน {{.Month}}</h1>
<table>
<thead>
<tr><th>วันที่</th><th>ประเภท</th><th>รายการ</th><th>หมวดหมู่</th><th>จำนวนเงิน</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr><td>{{.Date}}</td><td>{{.TypeLabel}}</td><td>{{.Description}}</td><td>{{.Category}}</td><td class="amount">{{.Amount}}</td></tr>
{{end}}</tbody>
</table>
<div class="summary">
<p>รวมรายรับ: ฿{{.Income}}</p>
<p>รวมรายจ่าย: ฿{{.Expense}}</p>
<p>กำไรสุทธิ: ฿{{.Balance}}</p>
</div>
</body>
</html>
`))

type printRow struct {
	Date        string
	TypeLabel   string
	Description string
	Category    string
	Amount      string
}

type printViewData struct {
	Month   string
	Rows    []printRow
	Income  string
	Expense string
	Balance string
}

// exportPrintView godoc
// @Summary Export month as printable HTML
// @Description Renders the selected month as a print-formatted HTML report.
// @Tags reports
// @Produce html
// @Param month query string false "Reference month (YYYY-MM), defaults to current"
// @Success 200 {string} string "HTML document"
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/export/print [get]
func (h *exportHandler) exportPrintView(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	refMonth, ok := parseMonthParam(c)
	if !ok {
		return
	}

	txns, summary, err := h.reportingService.MonthTransactions(c.Request.Context(), userID, refMonth)
	if err != nil {
		respondError(c, err)
		return
	}

	data := printViewData{
		Month:   refMonth.Format("2006-01"),
		Rows:    make([]printRow, 0, len(txns)),
		Income:  utils.FormatBaht(summary.Income),
		Expense: utils.FormatBaht(summary.Expense),
		Balance: utils.FormatBaht(summary.Balance),
	}
	for _, t := range txns {
		label := typeLabelIncome
		amount := "฿" + utils.FormatBaht(t.Amount)
		if t.Type == domain.Expense {
			label = typeLabelExpense
			amount = "-" + amount
		}
		data.Rows = append(data.Rows, printRow{
			Date:        t.Date.Format(exportDateLayout),
			TypeLabel:   label,
			Description: t.Description,
			Category:    t.Category,
			Amount:      amount,
		})
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, data); err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
