package events

import "strings"

// Config holds configuration for the price-change publisher.
type Config struct {
	// Enabled turns on publishing. When false a no-op publisher is used.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Brokers is a comma-separated list of Kafka bootstrap addresses.
	Brokers string `mapstructure:"brokers" default:"localhost:9092"`
	// Topic receives one message per price change.
	Topic string `mapstructure:"topic" default:"catalog.price-changes"`
	// ClientID identifies the producer to the brokers.
	ClientID string `mapstructure:"client_id" default:"catalog-aggregator"`
}

// BrokerList splits Brokers, dropping blanks.
func (c Config) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(c.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
