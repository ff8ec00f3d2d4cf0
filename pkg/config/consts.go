package config

// EnvPrefix is the envconfig prefix shared by every setting.
const EnvPrefix = "AQUATUTOR"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const EnvPdfFontPath = "AQUATUTOR_PDF_FONT_PATH"

const (
	EnvDBDSN  = "AQUATUTOR_DB_DSN"
	EnvDBHost = "AQUATUTOR_DB_HOST"
	EnvDBUser = "AQUATUTOR_DB_USER"
	EnvDBName = "AQUATUTOR_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
