package email

import (
	"context"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/gomail.v2"

	"iops/internal/domain/usage"
	"iops/internal/domain/user"
)

var titleCaser = cases.Title(language.English)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string
	UpgradeURL  string
}

// SMTPEmailService sends transactional mail over SMTP. It implements the
// quota notifier consumed by the usage ledger.
type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

// NotifyQuotaReached sends the upgrade nudge when a user consumes the last
// unit of a capped resource for the month.
func (s *SMTPEmailService) NotifyQuotaReached(ctx context.Context, account *user.User, resource usage.ResourceType, limit int) error {
	upgradeURL := s.config.BaseURL + s.config.UpgradeURL
	tierName := titleCaser.String(account.Tier().String())

	subject := fmt.Sprintf("You've used all your monthly %ss", resource.DisplayName())
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Monthly limit reached</h2>
			<p>Hi %s,</p>
			<p>You've used all %d %ss included in your %s plan this month.</p>
			<p>Your counters reset at the start of next month, or you can upgrade now for unlimited usage:</p>
			<p><a href="%s">View plans</a></p>
		</body>
		</html>
	`, account.Username(), limit, resource.DisplayName(), tierName, upgradeURL)

	plainBody := fmt.Sprintf(`
Hi %s,

You've used all %d %ss included in your %s plan this month.

Your counters reset at the start of next month, or you can upgrade now for unlimited usage:
%s
	`, account.Username(), limit, resource.DisplayName(), tierName, upgradeURL)

	return s.sendEmail(account.Email().String(), subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
