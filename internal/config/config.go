package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Storage  StorageConfig
	Drive    DriveConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// DataConfig drives the sales pipeline: where the default CSV lives, how
// large an upload may be, and the analysis knobs.
type DataConfig struct {
	// Source selects where the server loads its dataset from on boot:
	// "csv" or "postgres".
	Source         string
	DefaultCSVPath string
	UploadDir      string
	MaxRows        int
	// DateFormat forces a strict date layout when set; empty means
	// permissive auto-detection.
	DateFormat      string
	TopProducts     int
	ForecastMinDays int
	ForecastMaxDays int
	ForecastDays    int
	MinHistoryDays  int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	DashboardTTLSeconds int
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// ObjectKey is the object the server boots from when DATA_SOURCE is
	// "storage"; the ingest service archives raw files under raw/.
	ObjectKey string
}

type DriveConfig struct {
	CredentialsJSON string
	FolderPath      string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})

		viper.SetDefault("DATA_SOURCE", "csv")
		viper.SetDefault("DATA_DEFAULT_CSV_PATH", "./data/sales.csv")
		viper.SetDefault("DATA_UPLOAD_DIR", "./data/uploads")
		viper.SetDefault("DATA_MAX_ROWS", 500_000)
		viper.SetDefault("DATA_DATE_FORMAT", "")
		viper.SetDefault("DATA_TOP_PRODUCTS", 5)
		viper.SetDefault("DATA_FORECAST_MIN_DAYS", 7)
		viper.SetDefault("DATA_FORECAST_MAX_DAYS", 90)
		viper.SetDefault("DATA_FORECAST_DAYS", 30)
		viper.SetDefault("DATA_MIN_HISTORY_DAYS", 14)

		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "ventas")
		viper.SetDefault("DB_SSLMODE", "disable")

		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_DASHBOARD_TTL_SECONDS", 60)

		viper.SetDefault("STORAGE_ENABLED", false)
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "")
		viper.SetDefault("STORAGE_USE_SSL", true)
		viper.SetDefault("STORAGE_OBJECT_KEY", "raw/sales.csv")

		viper.SetDefault("DRIVE_FOLDER_PATH", "")

		viper.AutomaticEnv()

		ensureDir(viper.GetString("DATA_UPLOAD_DIR"))

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Data: DataConfig{
				Source:          viper.GetString("DATA_SOURCE"),
				DefaultCSVPath:  viper.GetString("DATA_DEFAULT_CSV_PATH"),
				UploadDir:       viper.GetString("DATA_UPLOAD_DIR"),
				MaxRows:         viper.GetInt("DATA_MAX_ROWS"),
				DateFormat:      viper.GetString("DATA_DATE_FORMAT"),
				TopProducts:     viper.GetInt("DATA_TOP_PRODUCTS"),
				ForecastMinDays: viper.GetInt("DATA_FORECAST_MIN_DAYS"),
				ForecastMaxDays: viper.GetInt("DATA_FORECAST_MAX_DAYS"),
				ForecastDays:    viper.GetInt("DATA_FORECAST_DAYS"),
				MinHistoryDays:  viper.GetInt("DATA_MIN_HISTORY_DAYS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:             viper.GetBool("CACHE_ENABLED"),
				RedisURL:            viper.GetString("REDIS_URL"),
				RedisHost:           viper.GetString("REDIS_HOST"),
				RedisPort:           viper.GetString("REDIS_PORT"),
				RedisPassword:       viper.GetString("REDIS_PASSWORD"),
				RedisDB:             viper.GetInt("REDIS_DB"),
				DashboardTTLSeconds: viper.GetInt("CACHE_DASHBOARD_TTL_SECONDS"),
			},
			Storage: StorageConfig{
				Enabled:   viper.GetBool("STORAGE_ENABLED"),
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
				ObjectKey: viper.GetString("STORAGE_OBJECT_KEY"),
			},
			Drive: DriveConfig{
				CredentialsJSON: os.Getenv("GOOGLE_DRIVE_CREDENTIALS_JSON"),
				FolderPath:      viper.GetString("DRIVE_FOLDER_PATH"),
			},
		}
	})

	return instance
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
