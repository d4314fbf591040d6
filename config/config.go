package config

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL        string
	RedisAddress string
	Port         string
	CORSOrigin   string
}

// GetCORSOrigin returns the allowed frontend origin from the config
func (c *AppConfig) GetCORSOrigin() string {
	return c.CORSOrigin
}
