package session

import "regexp"

// emailPattern accepts the common mailbox@domain.tld shape; the backend does
// the authoritative validation, this only catches obvious typos before a
// network round-trip.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateCredentials(c Credentials) string {
	if c.Email == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(c.Email) {
		return "Invalid email address"
	}
	if c.Password == "" {
		return "Password is required"
	}
	return ""
}

func validateRegistration(r Registration) string {
	if r.Name == "" {
		return "Name is required"
	}
	if msg := validateCredentials(Credentials{Email: r.Email, Password: r.Password}); msg != "" {
		return msg
	}
	if len(r.Password) < 6 {
		return "Password must be at least 6 characters"
	}
	return ""
}
