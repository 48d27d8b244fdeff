package billing

import (
	"bytes"
	"fmt"
	"html/template"
)

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"rate":  func(v float64) string { return fmt.Sprintf("%g", v) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; font-size: 12px; margin: 24px; }
  .title { text-align: center; font-size: 18px; font-weight: bold; }
  .sub { text-align: center; font-size: 11px; margin-bottom: 12px; }
  table { width: 100%; border-collapse: collapse; margin-top: 10px; }
  th, td { border: 1px solid #444; padding: 4px 6px; }
  th { background: #eee; }
  .right { text-align: right; }
  .center { text-align: center; }
  .bold { font-weight: bold; }
  .parties td { border: none; vertical-align: top; padding: 2px 0; }
  .footer { margin-top: 16px; font-size: 11px; }
</style>
</head>
<body>
  <div class="title">{{.FirmName}}</div>
  <div class="sub">{{.FirmAddress}}<br>GSTIN/UIN: {{.FirmGSTIN}} &nbsp; State: {{.FirmState}}</div>
  <div class="sub bold">{{if .IsPurchase}}PURCHASE VOUCHER{{else}}TAX INVOICE{{end}} | No. {{.InvoiceNumber}} | Date: {{.Date}}</div>

  <table class="parties">
    <tr>
      <td><b>{{if .IsPurchase}}Supplier{{else}}Buyer{{end}}:</b> {{.PartyName}}<br>
          GSTIN/UIN: {{.PartyGSTIN}}<br>State: {{.PartyState}}</td>
    </tr>
  </table>

  <table>
    <tr>
      <th>Sr</th><th>Item</th><th>Bags</th><th>Bharti</th><th>Qty (QTL)</th><th>Rate</th><th>Amount</th>
    </tr>
    {{range .Lines}}
    <tr>
      <td class="center">{{.SrNo}}</td>
      <td>{{.GrainName}}{{if .HindiName}} ({{.HindiName}}){{end}}</td>
      <td class="center">{{.Bags}}</td>
      <td class="center">{{if .Bharti}}{{money .Bharti}}{{else}}-{{end}}</td>
      <td class="right">{{money .Quantity}}</td>
      <td class="right">{{money .Rate}}</td>
      <td class="right">{{money .Amount}}</td>
    </tr>
    {{end}}
    {{if .Tax.Lines}}
    <tr><td colspan="6" class="right">Taxable Value</td><td class="right">{{money .Tax.TaxableAmount}}</td></tr>
    {{range .Tax.Lines}}
    <tr><td colspan="6" class="right bold">{{.Name}} ({{rate .Rate}}%)</td><td class="right">{{money .Amount}}</td></tr>
    {{end}}
    {{end}}
    <tr><td colspan="6" class="right bold">Grand Total</td><td class="right bold">{{money .GrandTotal}}</td></tr>
    {{range .Payments}}
    <tr><td colspan="6" class="right">Paid {{.Date}}</td><td class="right">{{money .Amount}}</td></tr>
    {{end}}
    <tr><td colspan="6" class="right bold">Balance</td><td class="right bold">{{money .Pending}}</td></tr>
  </table>

  <div class="footer">
    Amount in words: <b>INR {{.AmountWords}} Only</b><br><br>
    {{if .BankName}}Bank: {{.BankName}}<br>A/C No.: {{.BankAccountNo}}<br>IFSC Code: {{.BankIFSC}}<br>Holder: {{.BankHolder}}<br>{{end}}
    <br>Generated {{.GeneratedAt}}. This is a computer generated document.
  </div>
</body>
</html>`))

// RenderHTML renders the invoice for print/share. It consumes only the
// party-facing Invoice view model.
func RenderHTML(inv Invoice) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, inv); err != nil {
		return "", err
	}
	return buf.String(), nil
}
