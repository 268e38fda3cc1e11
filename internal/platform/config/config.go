package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything the monitor reads from the environment.
// Exactly one notification channel should be configured: TopicARN selects
// SNS, KafkaBrokers selects the security-events topic.
type Config struct {
	Addr string

	// SNS channel
	TopicARN string

	// Kafka channel
	KafkaBrokers []string
	KafkaTopic   string

	// Severity taxonomy override; empty means the seed tables.
	SeverityTablePath string

	// Static account alias directory ("id=alias,id=alias"). When set, it
	// replaces live IAM lookups.
	AccountAliases map[string]string

	AliasLookupTimeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:               getenv("MONITOR_ADDR", ":8080"),
		TopicARN:           os.Getenv("SNS_TOPIC_ARN"),
		KafkaTopic:         getenv("KAFKA_TOPIC", "security.root-activity"),
		SeverityTablePath:  os.Getenv("SEVERITY_TABLE_PATH"),
		AliasLookupTimeout: 3 * time.Second,
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if d, err := time.ParseDuration(os.Getenv("ALIAS_LOOKUP_TIMEOUT")); err == nil && d > 0 {
		cfg.AliasLookupTimeout = d
	}
	cfg.AccountAliases = parseAliases(os.Getenv("ACCOUNT_ALIASES"))

	return cfg
}

// parseAliases reads "123456789012=prod-payments,210987654321=staging".
func parseAliases(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	aliases := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		id, alias, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || id == "" || alias == "" {
			continue
		}
		aliases[id] = alias
	}
	if len(aliases) == 0 {
		return nil
	}
	return aliases
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
