// Package notify sends the staff and customer emails that follow a public
// form submission. Delivery is best effort: a failed send is logged and
// never reaches the HTTP caller.
package notify

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"time"

	"github.com/rakesh3649/Fitness/bg"
	"github.com/rakesh3649/Fitness/models"
)

const sendTimeout = 30 * time.Second

var (
	contactThanksTmpl = template.Must(template.New("contact-thanks").Parse(`
<h2>Dear {{.Name}},</h2>
<p>Thank you for contacting FitnessGym. We have received your message and will get back to you within 24 hours.</p>
<p><strong>Your Message:</strong></p>
<p style="background-color: #f5f5f5; padding: 15px; border-radius: 5px;">{{.Message}}</p>
<br>
<p>Best regards,</p>
<p><strong>The FitnessGym Team</strong></p>
`))

	contactStaffTmpl = template.Must(template.New("contact-staff").Parse(`
<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p><strong>Message:</strong></p>
<p style="background-color: #f5f5f5; padding: 15px; border-radius: 5px;">{{.Message}}</p>
<p><strong>Submitted:</strong> {{.CreatedAt.Format "02 Jan 2006 15:04 MST"}}</p>
`))

	callbackStaffTmpl = template.Must(template.New("callback-staff").Parse(`
<h2>New Callback Request Received</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Requested at:</strong> {{.CreatedAt.Format "02 Jan 2006 15:04 MST"}}</p>
<p style="color: #ff6b35; font-weight: bold;">Please contact the customer within 30 minutes.</p>
<br>
<p>Best regards,</p>
<p>FitnessGym System</p>
`))
)

// Notifier renders the emails and hands them to a Mailer on a bg.Runner.
// A nil Notifier, or one without a Mailer, sends nothing.
type Notifier struct {
	mailer Mailer
	runner bg.Runner
	staff  string
	logger *slog.Logger
}

// New returns a Notifier that mails staff notices to staffAddr.
func New(mailer Mailer, runner bg.Runner, staffAddr string, logger *slog.Logger) *Notifier {
	if runner == nil {
		runner = bg.Async{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{mailer: mailer, runner: runner, staff: staffAddr, logger: logger}
}

// ContactSubmitted thanks the sender, then tells staff. The staff notice is
// skipped when the first send fails.
func (n *Notifier) ContactSubmitted(c models.Contact) {
	if n == nil || n.mailer == nil {
		return
	}
	n.runner.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		thanks, err := render(contactThanksTmpl, c)
		if err != nil {
			n.warn("contact", c.ID.Hex(), err)
			return
		}
		staff, err := render(contactStaffTmpl, c)
		if err != nil {
			n.warn("contact", c.ID.Hex(), err)
			return
		}

		msgs := []Message{
			{To: []string{c.Email}, Subject: "Thank you for contacting FitnessGym", HTML: thanks},
			{To: []string{n.staff}, Subject: "New Contact Form: " + c.Subject, HTML: staff},
		}
		for _, msg := range msgs {
			if err := n.mailer.Send(ctx, msg); err != nil {
				n.warn("contact", c.ID.Hex(), err)
				return
			}
		}
	})
}

// CallbackRequested tells staff to call the customer back.
func (n *Notifier) CallbackRequested(cb models.Callback) {
	if n == nil || n.mailer == nil {
		return
	}
	n.runner.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		body, err := render(callbackStaffTmpl, cb)
		if err != nil {
			n.warn("callback", cb.ID.Hex(), err)
			return
		}
		msg := Message{To: []string{n.staff}, Subject: "New Callback Request - FitnessGym", HTML: body}
		if err := n.mailer.Send(ctx, msg); err != nil {
			n.warn("callback", cb.ID.Hex(), err)
		}
	})
}

func (n *Notifier) warn(kind, id string, err error) {
	n.logger.Warn("email sending failed, record was saved", "kind", kind, "id", id, "error", err)
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
