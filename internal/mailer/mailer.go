package mailer

import (
	"context"
	"errors"
	"fmt"
	netmail "net/mail"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// ErrMissingSetting is returned when a required SMTP setting is empty.
var ErrMissingSetting = errors.New("missing mail setting")

// InvalidAddressError reports a sender or recipient that does not parse as
// an RFC 5322 address.
type InvalidAddressError struct {
	Field   string
	Address string
	Err     error
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid %s address %q: %v", e.Field, e.Address, e.Err)
}

func (e *InvalidAddressError) Unwrap() error { return e.Err }

// ParseAddress parses s, tagging failures with the field name.
func ParseAddress(field, s string) (*netmail.Address, error) {
	addr, err := netmail.ParseAddress(strings.TrimSpace(s))
	if err != nil {
		return nil, &InvalidAddressError{Field: field, Address: s, Err: err}
	}
	return addr, nil
}

// TLS modes accepted in Settings.TLS.
const (
	TLSOpportunistic = "opportunistic"
	TLSMandatory     = "mandatory"
	TLSImplicit      = "ssl"
	TLSNone          = "none"
)

// Settings describe the SMTP relay. The sender address doubles as the
// login name.
type Settings struct {
	Server   string
	Port     uint16
	Sender   string
	Password string
	TLS      string
	Timeout  time.Duration
}

// Message is a single-part plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Transport delivers built messages. *gomail.Client satisfies it.
type Transport interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// Dispatcher sends reports over SMTP.
type Dispatcher struct {
	settings  Settings
	newClient func(Settings) (Transport, error)
}

// New returns a Dispatcher for the given relay.
func New(s Settings) *Dispatcher {
	return &Dispatcher{settings: s, newClient: newClient}
}

// WithTransport returns a copy of d that delivers through t.
func (d *Dispatcher) WithTransport(t Transport) *Dispatcher {
	cp := *d
	cp.newClient = func(Settings) (Transport, error) { return t, nil }
	return &cp
}

// Send validates addresses, then authenticates to the relay and transmits
// msg. Address problems are returned as *InvalidAddressError before any
// network I/O.
func (d *Dispatcher) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(d.settings.Server) == "" {
		return fmt.Errorf("%w: mailserver", ErrMissingSetting)
	}
	if d.settings.Port == 0 {
		return fmt.Errorf("%w: port", ErrMissingSetting)
	}

	m, err := Build(d.settings.Sender, msg)
	if err != nil {
		return err
	}

	client, err := d.newClient(d.settings)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail via %s:%d: %w", d.settings.Server, d.settings.Port, err)
	}
	return nil
}

// Build turns msg into a go-mail message after validating both addresses.
func Build(sender string, msg Message) (*gomail.Msg, error) {
	from, err := ParseAddress("sender", sender)
	if err != nil {
		return nil, err
	}
	to, err := ParseAddress("recipient", msg.To)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMsg()
	if err := m.From(from.String()); err != nil {
		return nil, &InvalidAddressError{Field: "sender", Address: sender, Err: err}
	}
	if err := m.To(to.String()); err != nil {
		return nil, &InvalidAddressError{Field: "recipient", Address: msg.To, Err: err}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return m, nil
}

func newClient(s Settings) (Transport, error) {
	opts := []gomail.Option{
		gomail.WithPort(int(s.Port)),
		gomail.WithSMTPAuthCustom(newCredentialsAuth(s)),
	}
	if s.Timeout > 0 {
		opts = append(opts, gomail.WithTimeout(s.Timeout))
	}

	switch normalizeTLS(s.TLS) {
	case TLSMandatory:
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	case TLSImplicit:
		opts = append(opts, gomail.WithSSL())
	case TLSNone:
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	default:
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	return gomail.NewClient(s.Server, opts...)
}

func normalizeTLS(mode string) string {
	return strings.ToLower(strings.TrimSpace(mode))
}
