package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"path"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/gommon/log"

	"github.com/divyesh350/Skill-Swap-Platform/internal/boot"
)

// Mailer renders the verification and reset messages from html templates and
// delivers them over SMTP. Outside production the template directory is
// watched so edits apply without a restart.
type Mailer struct {
	config    *boot.Config
	templates *template.Template
	watcher   *fsnotify.Watcher
}

func New(config *boot.Config) (*Mailer, error) {
	templates, err := template.ParseGlob(path.Join(config.SMTP.TemplateDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parsing mail templates: %w", err)
	}

	m := &Mailer{
		config:    config,
		templates: templates,
	}

	if !config.IsProduction() {
		if err := m.watch(); err != nil {
			return nil, fmt.Errorf("watching mail templates: %w", err)
		}
	}

	return m, nil
}

func (m *Mailer) watch() error {
	var err error

	m.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case event, ok := <-m.watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) {
					log.Infof("reloading mail templates: %s", event.Name)
					templates, err := template.ParseGlob(path.Join(m.config.SMTP.TemplateDir, "*.html"))
					if err != nil {
						log.Errorf("reparsing mail templates: %+v", err)
						continue
					}
					m.templates = templates
				}
			case err, ok := <-m.watcher.Errors:
				if !ok {
					return
				}
				log.Errorf("template watcher: %+v", err)
			}
		}
	}()

	return m.watcher.Add(m.config.SMTP.TemplateDir)
}

func (m *Mailer) Close() error {
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}

type templateData struct {
	Link string
}

func (m *Mailer) SendVerification(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.config.FrontendURL, token)
	return m.send(ctx, to, "Verify your Skill Swap account", "verify.html", templateData{Link: link})
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.config.FrontendURL, token)
	return m.send(ctx, to, "Skill Swap password reset", "reset.html", templateData{Link: link})
}

func (m *Mailer) send(ctx context.Context, to, subject, templateName string, data templateData) error {
	if m.config.SMTP.Host == "" {
		log.Warnf("smtp not configured, dropping mail to %s", to)
		return nil
	}

	body := &bytes.Buffer{}
	if err := m.templates.ExecuteTemplate(body, templateName, data); err != nil {
		return fmt.Errorf("rendering %s: %w", templateName, err)
	}

	message := &bytes.Buffer{}
	fmt.Fprintf(message, "From: %s\r\n", m.config.SMTP.From)
	fmt.Fprintf(message, "To: %s\r\n", to)
	fmt.Fprintf(message, "Subject: %s\r\n", subject)
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	message.WriteString("\r\n")
	message.Write(body.Bytes())

	addr := m.config.SMTP.Host + ":" + m.config.SMTP.Port
	var auth smtp.Auth
	if m.config.SMTP.Username != "" {
		auth = smtp.PlainAuth("", m.config.SMTP.Username, m.config.SMTP.Password, m.config.SMTP.Host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.config.SMTP.From, []string{to}, message.Bytes())
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("sending mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
