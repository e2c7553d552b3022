package config

import "time"

// Config holds the registration client settings
type Config struct {
	Tel                       string              `yaml:"tel" validate:"omitempty,e164"`                        // Our telephone number
	Server                    string              `yaml:"server" validate:"required,url"`                       // The registration server URL
	RootCA                    string              `yaml:"rootCA"`                                               // PEM file with the TLS signing certificate of the server, system roots when empty
	ProxyServer               string              `yaml:"proxy" validate:"omitempty,url"`                       // HTTP Proxy URL if one is being used
	VerificationType          string              `yaml:"verificationType" validate:"required,oneof=sms voice"` // Code delivery method during registration
	ClientType                string              `yaml:"clientType" validate:"required"`                       // Client identifier sent when requesting a code
	LogLevel                  string              `yaml:"loglevel"`                                             // Verbosity of the logging messages
	UserAgent                 string              `yaml:"userAgent"`                                            // Override for the default HTTP User Agent header field
	Timeout                   time.Duration       `yaml:"timeout" validate:"gt=0"`                              // Upper bound for every single HTTP round trip
	RequestInterval           time.Duration       `yaml:"requestInterval" validate:"gte=0"`                     // Minimum spacing between two requests to the server
	Name                      string              `yaml:"name"`                                                 // Encrypted device name, empty for the primary device
	DiscoverableByPhoneNumber bool                `yaml:"discoverableByPhoneNumber"`                            // If the user should be found by his phone number
	AccountCapabilities       AccountCapabilities `yaml:"accountCapabilities"`                                  // Capabilities announced at registration
}

// AccountCapabilities describes what functions the registering client supports
type AccountCapabilities struct {
	PNI               bool `json:"pni" yaml:"pni"`
	PaymentActivation bool `json:"paymentActivation" yaml:"paymentActivation"`
}

const (
	DefaultServer           = "https://chat.signal.org:443"
	DefaultVerificationType = "sms"
	DefaultClientType       = "android-ng"
	DefaultUserAgent        = "Signal-Android/6.34.0"
	DefaultTimeout          = 15 * time.Second
)
