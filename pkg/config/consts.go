package config

// EnvPrefix is passed to envconfig; individual fields carry full names so the
// prefix stays empty by convention.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "CAMRENTAL_APP_ENV"
	EnvDBDSN  = "CAMRENTAL_DB_DSN"
	EnvDBHost = "CAMRENTAL_DB_HOST"
	EnvDBUser = "CAMRENTAL_DB_USER"
	EnvDBName = "CAMRENTAL_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
