package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/config"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/gateway"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type smtpSender struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg config.SMTPConfig, logger *zap.Logger) (gateway.EmailSender, error) {
	if cfg.Host == "" || cfg.Port == 0 || cfg.SenderEmail == "" {
		return nil, fmt.Errorf("SMTP host, port, and sender email must be configured")
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	serverName := cfg.ServerName
	if serverName == "" {
		serverName = cfg.Host
	}
	switch strings.ToLower(cfg.Encryption) {
	case "ssl":
		dialer.SSL = true
		dialer.TLSConfig = &tls.Config{ServerName: serverName, MinVersion: tls.VersionTLS12}
	case "tls", "starttls":
		dialer.TLSConfig = &tls.Config{ServerName: serverName, MinVersion: tls.VersionTLS12}
	}

	return &smtpSender{
		cfg:    cfg,
		logger: logger.Named("SMTPSender"),
		dialer: dialer,
	}, nil
}

func (s *smtpSender) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if to == "" {
		return fmt.Errorf("no recipient provided for email")
	}

	m := gomail.NewMessage()
	if s.cfg.SenderName != "" {
		m.SetAddressHeader("From", s.cfg.SenderEmail, s.cfg.SenderName)
	} else {
		m.SetHeader("From", s.cfg.SenderEmail)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	if textBody != "" {
		m.SetBody("text/plain", textBody)
		m.AddAlternative("text/html", htmlBody)
	} else {
		m.SetBody("text/html", htmlBody)
	}

	// gomail has no context support; honor cancellation before dialing.
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("Failed to send email", zap.Error(err), zap.String("to", to), zap.String("subject", subject))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Email sent successfully", zap.String("to", to), zap.String("subject", subject))
	return nil
}
