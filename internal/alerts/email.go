package alerts

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"inventory-service/internal/config"
	"inventory-service/internal/domain"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// MailSender is satisfied by *gomail.Dialer
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer renders and sends low stock emails
type Mailer struct {
	sender MailSender
	from   string
	to     []string
	logger *zap.Logger
	now    func() time.Time
}

// NewMailer creates a mailer backed by an SMTP dialer
func NewMailer(cfg *config.Config, logger *zap.Logger) *Mailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	return newMailer(dialer, cfg.AlertEmailFrom, cfg.AlertEmailTo, logger)
}

func newMailer(sender MailSender, from string, to []string, logger *zap.Logger) *Mailer {
	return &Mailer{
		sender: sender,
		from:   from,
		to:     to,
		logger: logger,
		now:    time.Now,
	}
}

// Send delivers one alert email
func (m *Mailer) Send(ctx context.Context, item domain.InventoryItem) error {
	body, err := renderAlertEmail(item, m.now())
	if err != nil {
		return fmt.Errorf("failed to render alert email: %w", err)
	}

	msg := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to...)
	msg.SetHeader("Subject", "🚨 LOW STOCK ALERT: "+item.ProductName)
	msg.SetBody("text/html", body)

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send alert email for product %d: %w", item.ID, err)
	}

	m.logger.Info("Email notification sent", zap.String("product", item.ProductName), zap.Strings("to", m.to))
	return nil
}

type alertEmailData struct {
	ProductName  string
	ProductID    uint
	Quantity     int
	PricePerUnit string
	TotalPrice   string
	Status       string
	Critical     bool
	Timestamp    string
}

func renderAlertEmail(item domain.InventoryItem, at time.Time) (string, error) {
	data := alertEmailData{
		ProductName:  item.ProductName,
		ProductID:    item.ID,
		Quantity:     item.Quantity,
		PricePerUnit: item.PricePerUnit.StringFixed(2),
		TotalPrice:   totalString(item),
		Status:       string(item.Status),
		Critical:     item.Quantity == 0,
		Timestamp:    at.Format("2006-01-02 15:04:05"),
	}

	var buf bytes.Buffer
	if err := alertEmailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var alertEmailTemplate = template.Must(template.New("low-stock").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; background-color: #f5f5f5; }
    .container { max-width: 600px; margin: 20px auto; background-color: #fff; border-radius: 8px; }
    .header { background: #dc2626; color: #fff; padding: 30px; text-align: center; border-radius: 8px 8px 0 0; }
    .content { padding: 30px; }
    .info-box { background-color: #f9fafb; padding: 15px; border-left: 4px solid #dc2626; margin: 10px 0; }
    .info-label { color: #6b7280; font-size: 12px; font-weight: bold; text-transform: uppercase; }
    .info-value { color: #1f2937; font-size: 18px; font-weight: bold; }
    .status-critical { color: #dc2626; font-weight: bold; }
    .status-warning { color: #f59e0b; font-weight: bold; }
    .footer { background-color: #f3f4f6; padding: 20px; text-align: center; font-size: 12px; color: #6b7280; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>🚨 INVENTORY ALERT</h1>
      <p>Low stock detected</p>
    </div>
    <div class="content">
      <div class="info-box"><div class="info-label">Product</div><div class="info-value">{{.ProductName}} (ID: {{.ProductID}})</div></div>
      <div class="info-box"><div class="info-label">Current Quantity</div>
        <div class="info-value {{if .Critical}}status-critical{{else}}status-warning{{end}}">{{.Quantity}}{{if .Critical}} (OUT OF STOCK){{end}}</div></div>
      <div class="info-box"><div class="info-label">Price Per Unit</div><div class="info-value">{{.PricePerUnit}}</div></div>
      <div class="info-box"><div class="info-label">Total Stock Value</div><div class="info-value">{{.TotalPrice}}</div></div>
      <div class="info-box"><div class="info-label">Status</div><div class="info-value">{{.Status}}</div></div>
      <p>Please reorder this product to replenish stock.</p>
    </div>
    <div class="footer">
      <p>Generated at {{.Timestamp}}</p>
      <p>Inventory Service automated notification</p>
    </div>
  </div>
</body>
</html>
`))
