// Package service contains background services and outbound
// collaborators of the API
package service

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer is the outbound mail contract. Delivery failures are
// reported to the caller, never retried here.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer delivers mail through the SMTP relay configured under
// mail.* at startup.
type SMTPMailer struct {
	host     string
	port     int
	sender   string
	password string
}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		host:     viper.GetString("mail.host"),
		port:     viper.GetInt("mail.port"),
		sender:   viper.GetString("mail.sender"),
		password: viper.GetString("mail.password"),
	}
}

func (s *SMTPMailer) Send(to, subject, htmlBody string) error {
	if to == s.sender {
		return fmt.Errorf("invalid email address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.host, s.port, s.sender, s.password)

	return d.DialAndSend(m)
}

// SendVerificationMail delivers the verification link for token to
// sendTo through m.
func SendVerificationMail(m Mailer, sendTo, token string) error {
	var s string
	if viper.GetBool("host.ssl.enabled") {
		s = "s"
	}

	verifLink := fmt.Sprintf("http%v://%v/api/users/verify/%v",
		s, viper.GetString("host.domain"), token)

	body := fmt.Sprintf("Click <a href='%v'>here</a> to verify your account.", verifLink)

	return m.Send(sendTo, "Verify your email to start using your contact book", body)
}
