package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Karthikk7293/social-media-handler/infrastructure/logger"

	"github.com/spf13/viper"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceMySQL    = "mysql"
	SourceMSSQL    = "mssql"
	SourceMongo    = "mongo"
)

type Config struct {
	App         App         `json:"app"`
	Data        Data        `json:"data"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	Cache       Cache       `json:"cache"`
	Logger      Logger      `json:"logger"`
	Cors        Cors        `json:"cors"`
}

type App struct {
	Port        int    `json:"port"`
	TLSEnabled  bool   `json:"tlsEnabled"`
	TLSCertFile string `json:"tlsCertFile"`
	TLSKeyFile  string `json:"tlsKeyFile"`
}

// Data selects where the dashboard snapshot is loaded from
type Data struct {
	Source     string `json:"source"`     // file | postgres | mysql | mssql | mongo
	Path       string `json:"path"`       // fixture path for the file source
	Dashboard  string `json:"dashboard"`  // document name for the mongo source
	Collection string `json:"collection"` // mongo collection
}

type Database struct {
	Psql  Db `json:"psql"`
	MySql Db `json:"mysql"`
	Mongo Db `json:"mongo"`
	Mssql Db `json:"mssql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	Username string `json:"username"`
	DB       int    `json:"db"`
}

type Cache struct {
	Enabled    bool `json:"enabled"`
	TTLSeconds int  `json:"ttlSeconds"`
}

type Logger struct {
	Format string `json:"format"`
}

type Cors struct {
	AllowOrigins []string `json:"allowOrigins"`
}

var C Config

func init() {
	LoadConfig()
	Apply(&C)
}

// Apply fills env overrides and defaults into cfg
func Apply(cfg *Config) {
	initDatabase(cfg)
	initApp(cfg)
	initData(cfg)
	initRedis(cfg)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().WithField("config", name).Warn("Config file not found, using environment and defaults")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	fill(&C.Database.Psql.Name, "DB_NAME", "")
	fill(&C.Database.Psql.Host, "DB_HOST", "localhost")
	fill(&C.Database.Psql.Port, "DB_PORT", "5432")
	fill(&C.Database.Psql.User, "DB_USER", "")
	fill(&C.Database.Psql.Password, "DB_PASSWORD", "")

	fill(&C.Database.MySql.Name, "MYSQL_DB_NAME", "")
	fill(&C.Database.MySql.Host, "MYSQL_HOST", "localhost")
	fill(&C.Database.MySql.Port, "MYSQL_PORT", "3306")
	fill(&C.Database.MySql.User, "MYSQL_USER", "")
	fill(&C.Database.MySql.Password, "MYSQL_PASSWORD", "")

	// Azure SQL in production, local container otherwise
	fill(&C.Database.Mssql.Name, "MSSQL_DB_NAME", "")
	fill(&C.Database.Mssql.Host, "MSSQL_HOST", "localhost")
	fill(&C.Database.Mssql.Port, "MSSQL_PORT", "1433")
	fill(&C.Database.Mssql.User, "MSSQL_USER", "sa")
	fill(&C.Database.Mssql.Password, "MSSQL_PASSWORD", "")

	fill(&C.Database.Mongo.Name, "MONGO_DB_NAME", "social_media")
	fill(&C.Database.Mongo.Host, "MONGO_HOST", "localhost")
	fill(&C.Database.Mongo.Port, "MONGO_PORT", "27017")
	fill(&C.Database.Mongo.User, "MONGO_USER", "")
	fill(&C.Database.Mongo.Password, "MONGO_PASSWORD", "")
}

func initApp(C *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		switch v {
		case "1", "true", "TRUE", "True":
			C.App.TLSEnabled = true
		case "0", "false", "FALSE", "False":
			C.App.TLSEnabled = false
		}
	}
	fill(&C.App.TLSCertFile, "TLS_CERT_FILE", "")
	fill(&C.App.TLSKeyFile, "TLS_KEY_FILE", "")
	if C.App.TLSEnabled {
		logger.GetLogger().WithFields(map[string]interface{}{"cert": C.App.TLSCertFile, "key": C.App.TLSKeyFile}).Info("TLS enabled via configuration")
	}
	if len(C.Cors.AllowOrigins) == 0 {
		C.Cors.AllowOrigins = []string{"http://localhost:3000", "http://localhost:4200"}
	}
}

func initData(C *Config) {
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		C.Data.Source = v
	}
	C.Data.Source = strings.ToLower(strings.TrimSpace(C.Data.Source))
	if C.Data.Source == "" {
		C.Data.Source = SourceFile
	}
	if v := os.Getenv("DATA_PATH"); v != "" {
		C.Data.Path = v
	}
	if C.Data.Path == "" {
		C.Data.Path = "data/dashboard.json"
	}
	fill(&C.Data.Dashboard, "DATA_DASHBOARD", "default")
	fill(&C.Data.Collection, "DATA_COLLECTION", "dashboards")
}

func initRedis(C *Config) {
	fill(&C.RedisClient.Host, "REDIS_HOST", "")
	fill(&C.RedisClient.Port, "REDIS_PORT", "6379")
	fill(&C.RedisClient.Username, "REDIS_USERNAME", "")
	fill(&C.RedisClient.Password, "REDIS_PASSWORD", "")
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil && db >= 0 {
			C.RedisClient.DB = db
		}
	}
	if C.Cache.TTLSeconds <= 0 {
		C.Cache.TTLSeconds = 300
	}
	// Cache only makes sense when a redis host is configured
	if C.RedisClient.Host != "" && os.Getenv("CACHE_ENABLED") != "false" {
		C.Cache.Enabled = true
	}
}

// fill sets *dst from env when empty, then from def when still empty
func fill(dst *string, env, def string) {
	if *dst == "" {
		*dst = os.Getenv(env)
	}
	if *dst == "" {
		*dst = def
	}
}
