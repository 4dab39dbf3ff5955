package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/devfolio/portfolio-backend/config"
	"github.com/devfolio/portfolio-backend/errors"
	"github.com/devfolio/portfolio-backend/logger"
	"github.com/devfolio/portfolio-backend/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/resend/resend-go/v2"
)

// Notifier announces a new submission. The result reports whether delivery
// was attempted and accepted; callers are free to ignore it.
type Notifier interface {
	Notify(ctx context.Context, sub *types.ContactSubmission) bool
}

// emailSender is the part of the Resend emails API the notifier uses.
type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type EmailMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// EmailNotifier sends a notification mail for every submission through
// Resend. Without credentials it is inert.
type EmailNotifier struct {
	config  *config.EmailConfig
	sender  emailSender
	metrics *EmailMetrics
	tmpl    *template.Template
}

var _ Notifier = (*EmailNotifier)(nil)

func NewEmailNotifier(cfg *config.EmailConfig) *EmailNotifier {
	return NewEmailNotifierWithRegistry(cfg, prometheus.DefaultRegisterer)
}

func NewEmailNotifierWithRegistry(cfg *config.EmailConfig, reg prometheus.Registerer) *EmailNotifier {
	log := logger.GetLogger()
	metrics := &EmailMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "portfolio_email_send_duration_seconds",
			Help:    "Time taken to send contact notification emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_email_errors_total",
			Help: "Total number of contact notification errors",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_email_sent_total",
			Help: "Total number of contact notifications sent",
		}),
	}

	reg.MustRegister(metrics.sendLatency)
	reg.MustRegister(metrics.errorCount)
	reg.MustRegister(metrics.sentCount)

	n := &EmailNotifier{
		config:  cfg,
		metrics: metrics,
		tmpl:    template.Must(template.New("contact").Parse(contactEmailTemplate)),
	}

	if !cfg.Configured() {
		log.Warn("Email notifier disabled: RESEND_API_KEY, EMAIL_FROM_ADDRESS and CONTACT_NOTIFY_TO are all required")
		return n
	}

	log.Infow("Initializing email notifier",
		"from", cfg.FromAddress,
		"to", logger.MaskEmail(cfg.NotifyTo),
		"apikey", logger.MaskSensitiveString(cfg.ResendAPIKey, 3, 0))
	n.sender = resend.NewClient(cfg.ResendAPIKey).Emails
	return n
}

// Enabled reports whether the notifier has a transport to send through.
func (n *EmailNotifier) Enabled() bool {
	return n.sender != nil
}

// Notify sends the notification mail. Every failure is logged and reported
// as false; nothing is retried.
func (n *EmailNotifier) Notify(ctx context.Context, sub *types.ContactSubmission) bool {
	if !n.Enabled() || sub == nil {
		return false
	}

	log := logger.GetLogger()
	startTime := time.Now()
	defer func() {
		n.metrics.sendLatency.Observe(time.Since(startTime).Seconds())
	}()

	timeout := time.Duration(n.config.SendTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	params, err := n.buildRequest(sub)
	if err != nil {
		n.metrics.errorCount.Inc()
		log.Errorw("Failed to render contact notification", "error", err, "contact_id", sub.ID)
		return false
	}

	resp, err := n.sender.SendWithContext(ctx, params)
	if err != nil {
		n.metrics.errorCount.Inc()
		log.Errorw("Failed to send contact notification",
			"error", errors.NewDeliveryError(err),
			"contact_id", sub.ID,
			"reply_to", logger.MaskEmail(sub.Email))
		return false
	}

	n.metrics.sentCount.Inc()
	messageID := ""
	if resp != nil {
		messageID = resp.Id
	}
	log.Infow("Contact notification sent",
		"contact_id", sub.ID,
		"message_id", messageID,
		"reply_to", logger.MaskEmail(sub.Email))
	return true
}

func (n *EmailNotifier) buildRequest(sub *types.ContactSubmission) (*resend.SendEmailRequest, error) {
	data := map[string]string{
		"Name":     sub.Name,
		"Email":    sub.Email,
		"Message":  sub.Message,
		"Received": sub.CreatedAt.UTC().Format(time.RFC1123),
	}

	var html bytes.Buffer
	if err := n.tmpl.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	from := n.config.FromAddress
	if n.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", n.config.FromName, n.config.FromAddress)
	}

	return &resend.SendEmailRequest{
		From:    from,
		To:      []string{n.config.NotifyTo},
		ReplyTo: sub.Email,
		Subject: fmt.Sprintf("New portfolio message from %s", sub.Name),
		Html:    html.String(),
		Text: fmt.Sprintf("Name: %s\nEmail: %s\nReceived: %s\n\n%s\n",
			data["Name"], data["Email"], data["Received"], data["Message"]),
	}, nil
}

const contactEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New portfolio message</title>
    <style>
        body { font-family: sans-serif; background-color: #f7f7f7; color: #333333; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 24px; border-radius: 8px; }
        .label { color: #777777; font-size: 13px; text-transform: uppercase; }
        .message { white-space: pre-wrap; border-left: 3px solid #4f46e5; padding-left: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <h2>New message from your portfolio</h2>
        <p><span class="label">Name</span><br/>{{.Name}}</p>
        <p><span class="label">Email</span><br/><a href="mailto:{{.Email}}">{{.Email}}</a></p>
        <p><span class="label">Received</span><br/>{{.Received}}</p>
        <p class="label">Message</p>
        <p class="message">{{.Message}}</p>
    </div>
</body>
</html>`
