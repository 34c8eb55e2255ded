package constants

const (
	ConfigName   = "config"
	ConfigFormat = "yaml"
	EnvPrefix    = "SECUREWAVE"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)
