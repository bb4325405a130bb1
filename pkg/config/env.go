package config

const EnvPrefix = "SHOPNEX"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageBackendSQLite   = "sqlite"
	StorageBackendPostgres = "postgres"
	StorageBackendRedis    = "redis"
	StorageBackendMemory   = "memory"
)

const (
	EnvAppEnv         = "SHOPNEX_APP_ENV"
	EnvPort           = "SHOPNEX_APP_PORT"
	EnvStorageBackend = "SHOPNEX_STORAGE_BACKEND"
	EnvStorageSlot    = "SHOPNEX_STORAGE_SLOT"
	EnvDBDSN          = "SHOPNEX_DB_DSN"
	EnvDBHost         = "SHOPNEX_DB_HOST"
	EnvDBUser         = "SHOPNEX_DB_USER"
	EnvDBName         = "SHOPNEX_DB_NAME"
	EnvRedisURL       = "SHOPNEX_REDIS_URL"
	EnvRedisAddr      = "SHOPNEX_REDIS_ADDR"
	EnvPricingTaxRate = "SHOPNEX_PRICING_TAX_RATE"
	EnvCORSOrigins    = "SHOPNEX_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
