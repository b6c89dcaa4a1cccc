package config

// MailConfig describes the outbound SMTP relay used for reservation
// notifications.  The sender address defaults to the relay username, which
// is how most hosted relays expect to be addressed.
type MailConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromName    string
	FromAddress string
	// Disabled is true when no relay host is configured; notifications are
	// then logged instead of sent.
	Disabled bool
}

func LoadMailConfig() MailConfig {
	user := envStr("EMAIL_USER", "")
	cfg := MailConfig{
		Host:        envStr("EMAIL_HOST", ""),
		Port:        envInt("EMAIL_PORT", 587),
		Username:    user,
		Password:    envStr("EMAIL_PASS", ""),
		FromName:    envStr("EMAIL_FROM_NAME", "EcoWash"),
		FromAddress: envStr("EMAIL_FROM", user),
	}
	cfg.Disabled = cfg.Host == ""
	return cfg
}
