package config

type SMSConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Twilio       *TwilioConfig `yaml:"twilio"`
	OnCallNumber string        `yaml:"on_call_number"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

func loadSMSConfig() *SMSConfig {
	return &SMSConfig{
		Enabled: getEnvAsBool("SMS_ENABLED", false),
		Twilio: &TwilioConfig{
			AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			FromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
		},
		OnCallNumber: getEnv("SOS_ON_CALL_NUMBER", ""),
	}
}
