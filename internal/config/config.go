package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the directory passed to Load.
const FileName = "customizer.cfg.json"

// EnvPrefix prefixes environment overrides, e.g. CUSTOMIZER_SERVER_ADDRESS.
const EnvPrefix = "CUSTOMIZER"

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Address         string        `json:"address" mapstructure:"address"`
	ReadTimeout     time.Duration `json:"readTimeout" mapstructure:"readTimeout"`
	WriteTimeout    time.Duration `json:"writeTimeout" mapstructure:"writeTimeout"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout" mapstructure:"shutdownTimeout"`
}

// MemoryConfig holds in-memory storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
	SeedSamples    bool   `json:"seedSamples" mapstructure:"seedSamples"`
}

// SQLiteConfig holds SQLite storage backend settings.
// An empty Path runs the database in memory and dumps it to DumpPath every DumpInterval.
type SQLiteConfig struct {
	Path         string        `json:"path" mapstructure:"path"`
	DumpPath     string        `json:"dumpPath" mapstructure:"dumpPath"`
	DumpInterval time.Duration `json:"dumpInterval" mapstructure:"dumpInterval"`
}

// DBConfig holds PostgreSQL connection settings
type DBConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// StorageConfig selects and configures the design storage backend
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`
	SQLite SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
	DB     DBConfig     `json:"-" mapstructure:"-"`
}

// OTelConfig holds OpenTelemetry log exporter settings
type OTelConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
}

// InfluxConfig holds InfluxDB valuation sink settings
type InfluxConfig struct {
	Enabled    bool   `json:"enabled" mapstructure:"enabled"`
	Host       string `json:"host" mapstructure:"host"`
	Port       string `json:"port" mapstructure:"port"`
	Protocol   string `json:"protocol" mapstructure:"protocol"`
	Token      string `json:"token" mapstructure:"token"`
	Org        string `json:"org" mapstructure:"org"`
	Bucket     string `json:"bucket" mapstructure:"bucket"`
	BackupPath string `json:"backupPath" mapstructure:"backupPath"`
}

// URL returns the server address, e.g. http://localhost:8086.
func (c InfluxConfig) URL() string {
	return fmt.Sprintf("%s://%s:%s", c.Protocol, c.Host, c.Port)
}

// S3Config holds S3-compatible export sink settings
type S3Config struct {
	Endpoint        string `json:"endpoint" mapstructure:"endpoint"`
	Region          string `json:"region" mapstructure:"region"`
	Bucket          string `json:"bucket" mapstructure:"bucket"`
	Prefix          string `json:"prefix" mapstructure:"prefix"`
	AccessKeyID     string `json:"accessKeyId" mapstructure:"accessKeyId"`
	SecretAccessKey string `json:"secretAccessKey" mapstructure:"secretAccessKey"`
	UseSSL          bool   `json:"useSSL" mapstructure:"useSSL"`
}

// ExportConfig selects where exported designs are written
type ExportConfig struct {
	Type string   `json:"type" mapstructure:"type"`
	Dir  string   `json:"dir" mapstructure:"dir"`
	S3   S3Config `json:"s3" mapstructure:"s3"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
// Defaults and environment overrides stay in effect when the file is missing.
func Load(configDir string) error {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("server.address", ":3000")
	viper.SetDefault("server.readTimeout", "10s")
	viper.SetDefault("server.writeTimeout", "10s")
	viper.SetDefault("server.shutdownTimeout", "5s")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./designs")
	viper.SetDefault("storage.memory.compressOutput", false)
	viper.SetDefault("storage.memory.seedSamples", true)
	viper.SetDefault("storage.sqlite.path", "")
	viper.SetDefault("storage.sqlite.dumpPath", "./designs/customizer.db")
	viper.SetDefault("storage.sqlite.dumpInterval", "3m")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "customizer")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "customizer")
	viper.SetDefault("influx.bucket", "customizer_metrics")
	viper.SetDefault("influx.backupPath", "./logs/influx_backup.lp.gz")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "vehicle-customizer")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("export.type", "directory")
	viper.SetDefault("export.dir", "./exports")
	viper.SetDefault("export.s3.endpoint", "")
	viper.SetDefault("export.s3.region", "us-east-1")
	viper.SetDefault("export.s3.bucket", "")
	viper.SetDefault("export.s3.prefix", "")
	viper.SetDefault("export.s3.accessKeyId", "")
	viper.SetDefault("export.s3.secretAccessKey", "")
	viper.SetDefault("export.s3.useSSL", true)

	viper.SetDefault("api.serverUrl", "http://localhost:3000")
}

// GetServerConfig returns the HTTP server configuration.
func GetServerConfig() ServerConfig {
	return ServerConfig{
		Address:         viper.GetString("server.address"),
		ReadTimeout:     viper.GetDuration("server.readTimeout"),
		WriteTimeout:    viper.GetDuration("server.writeTimeout"),
		ShutdownTimeout: viper.GetDuration("server.shutdownTimeout"),
	}
}

// GetStorageConfig returns the storage configuration, including the postgres connection.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
			SeedSamples:    viper.GetBool("storage.memory.seedSamples"),
		},
		SQLite: SQLiteConfig{
			Path:         viper.GetString("storage.sqlite.path"),
			DumpPath:     viper.GetString("storage.sqlite.dumpPath"),
			DumpInterval: viper.GetDuration("storage.sqlite.dumpInterval"),
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetString("db.port"),
			Username: viper.GetString("db.username"),
			Password: viper.GetString("db.password"),
			Database: viper.GetString("db.database"),
		},
	}
}

// GetOTelConfig returns the OpenTelemetry configuration.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetInfluxConfig returns the InfluxDB configuration.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:    viper.GetBool("influx.enabled"),
		Host:       viper.GetString("influx.host"),
		Port:       viper.GetString("influx.port"),
		Protocol:   viper.GetString("influx.protocol"),
		Token:      viper.GetString("influx.token"),
		Org:        viper.GetString("influx.org"),
		Bucket:     viper.GetString("influx.bucket"),
		BackupPath: viper.GetString("influx.backupPath"),
	}
}

// GetExportConfig returns the export sink configuration.
func GetExportConfig() ExportConfig {
	return ExportConfig{
		Type: viper.GetString("export.type"),
		Dir:  viper.GetString("export.dir"),
		S3: S3Config{
			Endpoint:        viper.GetString("export.s3.endpoint"),
			Region:          viper.GetString("export.s3.region"),
			Bucket:          viper.GetString("export.s3.bucket"),
			Prefix:          viper.GetString("export.s3.prefix"),
			AccessKeyID:     viper.GetString("export.s3.accessKeyId"),
			SecretAccessKey: viper.GetString("export.s3.secretAccessKey"),
			UseSSL:          viper.GetBool("export.s3.useSSL"),
		},
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
