package mailing

import (
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"html/template"

	"github.com/crediflow/crediflow/config"
	"github.com/crediflow/crediflow/i18n"
	"github.com/go-mail/mail"
	"github.com/jaytaylor/html2text"
	"go.uber.org/zap"
)

// Mailer sends transactional emails. With SMTP disabled it degrades to
// a noop that only logs.
type Mailer struct {
	noop          bool
	client        *mail.Dialer
	log           *zap.Logger
	cfg           *config.Configuration
	registry      *i18n.TranslationRegistry
	emailTemplate *template.Template
}

func (m *Mailer) baseModel(title string, message string) map[string]interface{} {
	b := make(map[string]interface{})
	b["service_name"] = m.cfg.Behaviour.Name
	b["date"] = time.Now().Format("2006-01-02 15:04")
	b["site"] = m.cfg.Behaviour.Site
	b["title"] = title
	b["message"] = message
	return b
}

// SendPasswordRecoverMail mails the reset link for an outstanding
// recovery token.
func (m *Mailer) SendPasswordRecoverMail(email string, token string, language string) error {
	if m.noop {
		m.log.Info(
			"skipping email `PasswordRecovery` because smtp is disabled",
			zap.String("email", email),
		)
		return nil
	}
	t, err := m.registry.TranslatorFor(language, "email.reset_password")
	if err != nil {
		t = m.registry.CreateVoidTranslator(language, "email.reset_password")
	}
	base := m.baseModel(t.T("title"), t.T("message"))
	base["link_text"] = t.T("link_text")
	base["link"] = fmt.Sprintf(
		"%s?recovery_token=%s&email=%s",
		m.cfg.Behaviour.ResetPasswordURL,
		url.QueryEscape(token),
		url.QueryEscape(email),
	)
	base["token_text"] = t.T("token_text")
	base["token"] = token
	base["subject"] = t.T("subject")
	return m.send(email, t.T("subject"), base)
}

func (m *Mailer) SendTestEmail(email string) error {
	base := m.baseModel("This is a test", "hey your email configuration seems to be fine.")
	base["subject"] = "Your test email is here!"
	base["token"] = "test"
	base["token_text"] = "test"
	base["link"] = m.cfg.Behaviour.Site
	base["link_text"] = "test"
	return m.send(email, "Your test email is here!", base)
}

func (m *Mailer) send(email string, subject string, viewModel map[string]interface{}) error {
	buffer := new(strings.Builder)
	err := m.emailTemplate.Execute(buffer, viewModel)
	if err != nil {
		return err
	}
	html := buffer.String()
	text, err := html2text.FromString(html, html2text.Options{PrettyTables: true})
	if err != nil {
		return err
	}
	msg := mail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.SMTP.Address, m.cfg.SMTP.DisplayName)
	msg.SetAddressHeader("To", email, "")
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)
	return m.client.DialAndSend(msg)
}

func NewMailer(
	log *zap.Logger,
	cfg *config.Configuration,
	registry *i18n.TranslationRegistry,
	files fs.FS,
) (*Mailer, error) {

	t, err := template.ParseFS(files, "template.html")
	if err != nil {
		return nil, err
	}
	s := &Mailer{
		noop:          !cfg.SMTP.Enabled,
		log:           log,
		registry:      registry,
		emailTemplate: t,
		cfg:           cfg,
	}
	if !s.noop {
		s.client = mail.NewDialer(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
		)
	}
	return s, nil
}

func NewNoOpMailer(log *zap.Logger) *Mailer {
	return &Mailer{
		noop: true,
		log:  log,
	}
}
