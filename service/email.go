package service

import (
	"fmt"

	"github.com/normie1221/Sanchay/config"
	"github.com/normie1221/Sanchay/models"

	"gopkg.in/gomail.v2"
)

// EmailService sends budget alert mails over SMTP.
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates an email service.
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled reports whether sending is configured.
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

// SendBudgetAlert notifies the user that a budget crossed its alert
// threshold or went over the limit.
func (s *EmailService) SendBudgetAlert(toEmail, username string, budget models.Budget) error {
	if !s.Enabled() {
		return fmt.Errorf("email sending is not enabled")
	}
	if toEmail == "" {
		return fmt.Errorf("user has no email address")
	}

	subject := fmt.Sprintf("Budget alert: %s at %.0f%%", budget.Category, budget.Utilization())
	if budget.IsOverBudget() {
		subject = fmt.Sprintf("Budget exceeded: %s", budget.Category)
	}

	return s.sendEmail(toEmail, subject, s.generateBudgetAlertBody(username, budget))
}

func (s *EmailService) generateBudgetAlertBody(username string, budget models.Budget) string {
	headline := "Budget threshold reached"
	detail := fmt.Sprintf("Your %s budget has reached %.0f%% of its %.2f limit (%.2f spent).",
		budget.Category, budget.Utilization(), budget.Limit, budget.Spent)
	if budget.IsOverBudget() {
		headline = "Budget exceeded"
		detail = fmt.Sprintf("Your %s budget is over its %.2f limit: %.2f spent.",
			budget.Category, budget.Limit, budget.Spent)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #dc2626, #b91c1c); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .warning { background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0; border-radius: 4px; }
        .warning p { margin: 0; color: #856404; font-size: 14px; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>%s</h1>
        </div>
        <div class="content">
            <p>Hi <strong>%s</strong>,</p>
            <p>%s</p>
            <div class="warning">
                <p>Review your recent transactions or adjust the budget if the limit no longer fits.</p>
            </div>
        </div>
        <div class="footer">
            <p>This is an automated message, please do not reply</p>
        </div>
    </div>
</body>
</html>
`, headline, username, detail)
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
