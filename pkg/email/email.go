package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// InvoiceEmailData holds the fields rendered into an invoice notification
type InvoiceEmailData struct {
	RecipientName string
	InvoiceNo     string
	Description   string
	Amount        string
	DueDate       string
	AppName       string
	PortalURL     string
}

// SendInvoiceIssuedEmail notifies a member that a new invoice has been issued
func (s *EmailService) SendInvoiceIssuedEmail(toEmail string, data InvoiceEmailData) error {
	if data.AppName == "" {
		data.AppName = s.config.FromName
	}
	if data.PortalURL == "" {
		data.PortalURL = s.config.FrontendURL
	}

	htmlContent, err := renderTemplate("invoice_issued", invoiceIssuedTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Invoice %s - %s", data.InvoiceNo, data.AppName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// LowStockItem is a single line in the low stock digest
type LowStockItem struct {
	Name      string
	Stock     int
	Threshold int
}

// SendLowStockDigest sends the daily low stock summary to a supervisor
func (s *EmailService) SendLowStockDigest(toEmail string, items []LowStockItem) error {
	if len(items) == 0 {
		return nil
	}

	data := struct {
		Items   []LowStockItem
		AppName string
	}{
		Items:   items,
		AppName: s.config.FromName,
	}

	htmlContent, err := renderTemplate("low_stock_digest", lowStockDigestTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Low Stock Alert: %d item(s) below threshold", len(items))
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

func renderTemplate(name, text string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// invoiceIssuedTemplate is the HTML template for invoice notifications
const invoiceIssuedTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>New Invoice</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <tr>
                        <td style="background: linear-gradient(135deg, #2b5876 0%, #4e4376 100%); padding: 40px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 600;">{{.AppName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 40px 30px;">
                            <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 24px; font-weight: 600;">Invoice {{.InvoiceNo}}</h2>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                Hello {{.RecipientName}},
                            </p>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                A new invoice has been issued to you: <strong>{{.Description}}</strong>.
                            </p>
                            <table role="presentation" style="width: 100%; margin: 0 0 30px 0; border-collapse: collapse;">
                                <tr>
                                    <td style="padding: 12px; background-color: #f8fafc; border: 1px solid #e2e8f0; color: #4a5568;">Amount due</td>
                                    <td style="padding: 12px; background-color: #f8fafc; border: 1px solid #e2e8f0; color: #1a1a2e; font-weight: 600; text-align: right;">{{.Amount}}</td>
                                </tr>
                                <tr>
                                    <td style="padding: 12px; border: 1px solid #e2e8f0; color: #4a5568;">Due date</td>
                                    <td style="padding: 12px; border: 1px solid #e2e8f0; color: #1a1a2e; font-weight: 600; text-align: right;">{{.DueDate}}</td>
                                </tr>
                            </table>
                            <table role="presentation" style="margin: 0 auto 30px auto;">
                                <tr>
                                    <td style="background: linear-gradient(135deg, #2b5876 0%, #4e4376 100%); border-radius: 8px;">
                                        <a href="{{.PortalURL}}" style="display: inline-block; padding: 16px 32px; color: #ffffff; text-decoration: none; font-size: 16px; font-weight: 600;">
                                            View Invoice
                                        </a>
                                    </td>
                                </tr>
                            </table>
                            <p style="color: #718096; font-size: 14px; line-height: 1.6; margin: 0;">
                                If you believe this invoice was issued in error, please contact the treasurer.
                            </p>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0;">
                                This email was sent by {{.AppName}}
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`

// lowStockDigestTemplate is the HTML template for the low stock digest
const lowStockDigestTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Low Stock Alert</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <tr>
                        <td style="background-color: #c53030; padding: 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 24px; font-weight: 600;">Low Stock Alert</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 40px 30px;">
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                The following cafeteria items are at or below their restock threshold:
                            </p>
                            <table role="presentation" style="width: 100%; border-collapse: collapse;">
                                <tr>
                                    <th style="padding: 10px; background-color: #f8fafc; border: 1px solid #e2e8f0; color: #4a5568; text-align: left;">Item</th>
                                    <th style="padding: 10px; background-color: #f8fafc; border: 1px solid #e2e8f0; color: #4a5568; text-align: right;">In stock</th>
                                    <th style="padding: 10px; background-color: #f8fafc; border: 1px solid #e2e8f0; color: #4a5568; text-align: right;">Threshold</th>
                                </tr>
                                {{range .Items}}
                                <tr>
                                    <td style="padding: 10px; border: 1px solid #e2e8f0; color: #1a1a2e;">{{.Name}}</td>
                                    <td style="padding: 10px; border: 1px solid #e2e8f0; color: #c53030; font-weight: 600; text-align: right;">{{.Stock}}</td>
                                    <td style="padding: 10px; border: 1px solid #e2e8f0; color: #1a1a2e; text-align: right;">{{.Threshold}}</td>
                                </tr>
                                {{end}}
                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0;">
                                This email was sent by {{.AppName}}
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
