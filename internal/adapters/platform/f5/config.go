package f5

import (
	"time"
)

// Product identifies the management-API flavor on the other end of the
// connection. BIG-IQ and iWorkflow expose the same iControl REST surface as
// BIG-IP but differ in the login provider used for token auth.
type Product string

const (
	ProductBigIP     Product = "bigip"
	ProductBigIQ     Product = "bigiq"
	ProductIWorkflow Product = "iworkflow"
)

func (p Product) Valid() bool {
	switch p {
	case ProductBigIP, ProductBigIQ, ProductIWorkflow:
		return true
	}
	return false
}

// LoginProvider returns the token-auth provider name the product expects.
func (p Product) LoginProvider() string {
	if p == ProductIWorkflow {
		return "local"
	}
	return "tmos"
}

const (
	DefaultPort              = 443
	DefaultRetries           = 3
	DefaultRetryInterval     = 10 * time.Second
	DefaultRequestsPerSecond = 20
)

// Config carries the device connection settings. Password is never logged.
type Config struct {
	Product           Product       `mapstructure:"product" yaml:"product" validate:"required"`
	Hostname          string        `mapstructure:"hostname" yaml:"hostname" validate:"required,hostname|ip"`
	Username          string        `mapstructure:"username" yaml:"username" validate:"required"`
	Password          string        `mapstructure:"password" yaml:"password" validate:"required"`
	Port              int           `mapstructure:"port" yaml:"port" validate:"omitempty,min=1,max=65535"`
	ValidateCerts     bool          `mapstructure:"validate_certs" yaml:"validate_certs"`
	Retries           int           `mapstructure:"retries" yaml:"retries" validate:"omitempty,min=1"`
	RetryInterval     time.Duration `mapstructure:"retry_interval" yaml:"retry_interval"`
	RequestsPerSecond int           `mapstructure:"requests_per_second" yaml:"requests_per_second"`
}

// ApplyDefaults fills the zero-valued optional settings.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Retries == 0 {
		c.Retries = DefaultRetries
	}
	if c.RetryInterval == 0 {
		c.RetryInterval = DefaultRetryInterval
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = DefaultRequestsPerSecond
	}
}
