package types

// SecretPlaceholder is what gets shown in place of a secret whenever a
// credential record is redisplayed or logged.
const SecretPlaceholder = "********"

// CredentialRecord pairs a username and secret with the subject they
// authenticate against: a URL for WebDAV, //host/share for SMB.
type CredentialRecord struct {
	Subject  string
	Username string
	Secret   string
}

// Masked returns a copy with the secret replaced by the fixed
// placeholder, safe for redisplay and structured logs.
func (c CredentialRecord) Masked() CredentialRecord {
	if c.Secret != "" {
		c.Secret = SecretPlaceholder
	}
	return c
}

// Complete reports whether every required field is non-empty. The
// collector's prompt loop may only terminate once this holds.
func (c CredentialRecord) Complete() bool {
	return c.Subject != "" && c.Username != "" && c.Secret != ""
}
