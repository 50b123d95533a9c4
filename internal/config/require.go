package config

import "log"

func MustValid(c Config) {
	if err := c.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
}
