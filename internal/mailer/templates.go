package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/cometcontrol/comet-backend/pkg/enums"
	"github.com/cometcontrol/comet-backend/pkg/types"
)

// Rendering goes through html/template so every interpolated user field is
// escaped; no document may embed raw submitter text.

var contactTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Contact Message</title>
</head>
<body style="margin:0;padding:0;background:#f0f2f5;font-family:'DM Sans',Arial,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" style="background:#f0f2f5;padding:40px 20px;">
    <tr>
      <td align="center">
        <table width="640" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:16px;overflow:hidden;">
          <tr>
            <td style="background:linear-gradient(135deg,#00389e,#0052cc);padding:32px 40px;">
              <h1 style="margin:0;color:#ffffff;font-size:24px;font-weight:700;">Comet Control</h1>
              <p style="margin:4px 0 0;color:rgba(255,255,255,0.7);font-size:13px;">New Message: {{.Message.Subject}} — {{.Date}}</p>
            </td>
          </tr>
          <tr>
            <td style="padding:32px 40px 0;">
              <table width="100%" cellpadding="0" cellspacing="0" style="background:#f8fafc;border-radius:12px;">
                <tr>
                  <td style="padding:10px 20px;border-bottom:1px solid #e2e8f0;width:40%;">
                    <span style="color:#64748b;font-size:12px;font-weight:600;text-transform:uppercase;">Name</span>
                  </td>
                  <td style="padding:10px 20px;border-bottom:1px solid #e2e8f0;">
                    <span style="color:#0a0f1c;font-size:14px;font-weight:500;">{{.Message.Name}}</span>
                  </td>
                </tr>
                <tr>
                  <td style="padding:10px 20px;border-bottom:1px solid #e2e8f0;width:40%;">
                    <span style="color:#64748b;font-size:12px;font-weight:600;text-transform:uppercase;">Email</span>
                  </td>
                  <td style="padding:10px 20px;border-bottom:1px solid #e2e8f0;">
                    <span style="color:#0a0f1c;font-size:14px;font-weight:500;">{{.Message.Email}}</span>
                  </td>
                </tr>
                <tr>
                  <td style="padding:10px 20px;width:40%;">
                    <span style="color:#64748b;font-size:12px;font-weight:600;text-transform:uppercase;">Subject</span>
                  </td>
                  <td style="padding:10px 20px;">
                    <span style="color:#0a0f1c;font-size:14px;font-weight:500;">{{.Message.Subject}}</span>
                  </td>
                </tr>
              </table>
            </td>
          </tr>
          <tr>
            <td style="padding:24px 40px 32px;">
              <div style="background:#eff6ff;border-radius:12px;padding:20px;border-left:4px solid #00389e;">
                <p style="margin:0 0 8px;color:#64748b;font-size:12px;font-weight:600;text-transform:uppercase;">Message</p>
                <p style="margin:0;color:#0a0f1c;font-size:14px;line-height:1.7;white-space:pre-wrap;">{{.Message.Message}}</p>
              </div>
            </td>
          </tr>
          <tr>
            <td style="background:#f8fafc;padding:20px 40px;border-top:1px solid #e2e8f0;">
              <p style="margin:0;color:#94a3b8;font-size:12px;text-align:center;">Sent via the Comet Control website contact form.</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))

var quoteTemplate = template.Must(template.New("quote").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Quote Request</title>
</head>
<body style="margin:0;padding:0;background:#f0f2f5;font-family:'DM Sans',Arial,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" style="background:#f0f2f5;padding:40px 20px;">
    <tr>
      <td align="center">
        <table width="640" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:16px;overflow:hidden;">
          <tr>
            <td style="background:linear-gradient(135deg,#00389e,#0052cc);padding:32px 40px;">
              <h1 style="margin:0;color:#ffffff;font-size:24px;font-weight:700;">Comet Control</h1>
              <p style="margin:4px 0 0;color:rgba(255,255,255,0.7);font-size:13px;">New Quote Request — {{.Date}}</p>
            </td>
          </tr>
          <tr>
            <td style="padding:32px 40px 0;">
              <h2 style="margin:0 0 20px;color:#0a0f1c;font-size:18px;font-weight:700;">Customer Details</h2>
              <table width="100%" cellpadding="0" cellspacing="0" style="background:#f8fafc;border-radius:12px;">
                {{- range .ContactRows}}
                <tr>
                  <td style="padding:10px 20px;border-bottom:1px solid #e2e8f0;width:40%;">
                    <span style="color:#64748b;font-size:12px;font-weight:600;text-transform:uppercase;">{{.Label}}</span>
                  </td>
                  <td style="padding:10px 20px;border-bottom:1px solid #e2e8f0;">
                    <span style="color:#0a0f1c;font-size:14px;font-weight:500;">{{.Value}}</span>
                  </td>
                </tr>
                {{- end}}
              </table>
            </td>
          </tr>
          <tr>
            <td style="padding:24px 40px 0;">
              <div style="background:#eff6ff;border-radius:12px;padding:20px;border-left:4px solid #00389e;">
                <p style="margin:0 0 8px;color:#64748b;font-size:12px;font-weight:600;text-transform:uppercase;">Project Description</p>
                <p style="margin:0;color:#0a0f1c;font-size:14px;line-height:1.7;white-space:pre-wrap;">{{.Contact.ProjectDescription}}</p>
              </div>
            </td>
          </tr>
          <tr>
            <td style="padding:24px 40px 0;">
              <h2 style="margin:0 0 16px;color:#0a0f1c;font-size:18px;font-weight:700;">Requested Products ({{len .Items}} lines)</h2>
              <table width="100%" cellpadding="0" cellspacing="0" style="border:1px solid #e2e8f0;border-radius:12px;overflow:hidden;">
                <thead>
                  <tr style="background:#f8fafc;">
                    <th style="padding:12px 16px;text-align:left;color:#64748b;font-size:12px;font-weight:600;text-transform:uppercase;">Product</th>
                    <th style="padding:12px 16px;text-align:center;color:#64748b;font-size:12px;font-weight:600;text-transform:uppercase;">Qty</th>
                    <th style="padding:12px 16px;text-align:right;color:#64748b;font-size:12px;font-weight:600;text-transform:uppercase;">Total</th>
                  </tr>
                </thead>
                <tbody>
                  {{- range .Items}}
                  <tr>
                    <td style="padding:12px 16px;border-bottom:1px solid #e2e8f0;">
                      <strong style="color:#0a0f1c;font-size:14px;">{{.Name}}</strong><br>
                      <span style="color:#64748b;font-size:12px;font-family:monospace;">{{.SKU}}</span>
                      {{- if .Notes}}<br><span style="color:#94a3b8;font-size:12px;font-style:italic;">{{.Notes}}</span>{{- end}}
                    </td>
                    <td style="padding:12px 16px;border-bottom:1px solid #e2e8f0;text-align:center;color:#0a0f1c;font-weight:600;">{{.Quantity}}</td>
                    <td style="padding:12px 16px;border-bottom:1px solid #e2e8f0;text-align:right;color:#00389e;font-weight:600;">{{.LineTotal}}</td>
                  </tr>
                  {{- end}}
                </tbody>
              </table>
            </td>
          </tr>
          <tr>
            <td style="padding:32px 40px;">
              <a href="mailto:{{.Contact.Email}}" style="display:inline-block;background:#00f26f;color:#0a0f1c;padding:14px 28px;border-radius:10px;font-size:14px;font-weight:700;text-decoration:none;">Reply to Customer →</a>
            </td>
          </tr>
          <tr>
            <td style="background:#f8fafc;padding:20px 40px;border-top:1px solid #e2e8f0;">
              <p style="margin:0;color:#94a3b8;font-size:12px;text-align:center;">Sent via the Comet Control website quote form.</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))

type contactDocument struct {
	Message types.ContactMessage
	Date    string
}

type contactRow struct {
	Label string
	Value string
}

type quoteItemRow struct {
	Name      string
	SKU       string
	Notes     string
	Quantity  int
	LineTotal string
}

type quoteDocument struct {
	Contact     types.QuoteContact
	ContactRows []contactRow
	Items       []quoteItemRow
	Date        string
}

func renderContactEmail(msg types.ContactMessage, now time.Time) (string, error) {
	var buf bytes.Buffer
	err := contactTemplate.Execute(&buf, contactDocument{
		Message: msg,
		Date:    now.Format("January 2, 2006"),
	})
	if err != nil {
		return "", fmt.Errorf("render contact email: %w", err)
	}
	return buf.String(), nil
}

func renderQuoteEmail(req types.QuoteRequest, now time.Time) (string, error) {
	rows := []contactRow{
		{Label: "Company", Value: req.Contact.CompanyName},
		{Label: "Contact Person", Value: req.Contact.ContactPerson},
	}
	if req.Contact.Position != "" {
		rows = append(rows, contactRow{Label: "Position", Value: req.Contact.Position})
	}
	rows = append(rows,
		contactRow{Label: "Email", Value: req.Contact.Email},
		contactRow{Label: "Phone", Value: req.Contact.Phone},
		contactRow{Label: "Preferred Contact", Value: contactMethodLabel(req.Contact.PreferredContactMethod)},
	)
	if req.Contact.Deadline != "" {
		rows = append(rows, contactRow{Label: "Deadline", Value: req.Contact.Deadline})
	}

	items := make([]quoteItemRow, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, quoteItemRow{
			Name:      item.ProductName.EN,
			SKU:       item.ProductSKU,
			Notes:     item.Notes,
			Quantity:  item.Quantity,
			LineTotal: lineTotal(item),
		})
	}

	var buf bytes.Buffer
	err := quoteTemplate.Execute(&buf, quoteDocument{
		Contact:     req.Contact,
		ContactRows: rows,
		Items:       items,
		Date:        now.Format("January 2, 2006"),
	})
	if err != nil {
		return "", fmt.Errorf("render quote email: %w", err)
	}
	return buf.String(), nil
}

func contactMethodLabel(method enums.ContactMethod) string {
	if method == enums.ContactMethodPhone {
		return "Phone"
	}
	return "Email"
}
