package mailer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail/smtp"
)

// ErrNoAuthMechanism is returned when the relay advertises neither PLAIN nor
// LOGIN.
var ErrNoAuthMechanism = errors.New("relay offers no supported auth mechanism")

// credentialsAuth logs in with PLAIN when the relay offers it and falls back
// to LOGIN. Cleartext credentials are refused on unencrypted non-local
// connections unless allowUnencrypted is set.
type credentialsAuth struct {
	username         string
	password         string
	host             string
	allowUnencrypted bool

	mech smtp.Auth
}

func newCredentialsAuth(s Settings) *credentialsAuth {
	return &credentialsAuth{
		username:         s.Sender,
		password:         s.Password,
		host:             s.Server,
		allowUnencrypted: normalizeTLS(s.TLS) == TLSNone,
	}
}

func (a *credentialsAuth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	switch {
	case offers(server.Auth, "PLAIN"):
		a.mech = smtp.PlainAuth("", a.username, a.password, a.host, a.allowUnencrypted)
	case offers(server.Auth, "LOGIN"):
		a.mech = smtp.LoginAuth(a.username, a.password, a.host, a.allowUnencrypted)
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrNoAuthMechanism, strings.Join(server.Auth, " "))
	}
	return a.mech.Start(server)
}

func (a *credentialsAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if a.mech == nil {
		return nil, ErrNoAuthMechanism
	}
	return a.mech.Next(fromServer, more)
}

func offers(mechs []string, name string) bool {
	for _, m := range mechs {
		if strings.EqualFold(strings.TrimSpace(m), name) {
			return true
		}
	}
	return false
}
