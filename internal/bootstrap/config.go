package bootstrap

import (
	"log"

	"github.com/jiheejiheekim/monarch-Mobile/internal/config"
)

// validateAllConfiguration validates all configuration settings
func validateAllConfiguration(cfg *config.Config) {
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.IsProduction && cfg.SessionSecret == config.DefaultSessionSecret {
		log.Println("WARNING: SESSION_SECRET is the built-in default; set a unique value in production")
	}
	if len(cfg.BypassUsers) > 0 {
		log.Printf("WARNING: %d identifier(s) bypass credential checks: %v", len(cfg.BypassUsers), cfg.BypassUsers)
	}
}
