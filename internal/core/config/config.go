package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type Log struct {
	Level      string
	JSON       bool
	File       string // 非空则同时写文件并按大小切割
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"` // 留空则不启用统计缓存
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Report 管理端报表口径
type Report struct {
	Departments  []string `mapstructure:"departments"`
	BucketMonths int      `mapstructure:"bucketMonths"`
	CacheTTLSec  int      `mapstructure:"cacheTtlSec"`
}

type Config struct {
	App    App
	Log    Log
	JWT    JWT
	Redis  Redis  `mapstructure:"redis"`
	Report Report `mapstructure:"report"`
}

func Load(path string) *Config {
	v := viper.New()
	explicit := path != ""
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// 默认路径缺文件时靠默认值+环境变量也能跑；显式指定就必须读到
		if explicit {
			log.Fatalf("read config: %v", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "certtrack")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.admin.host", "0.0.0.0")
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("jwt.secret", "dev-only-secret")
	v.SetDefault("jwt.issuer", "certtrack")
	v.SetDefault("jwt.accesstokenttlmin", 120)
	v.SetDefault("report.departments", []string{"Engineering", "Analytics", "Infrastructure", "Management"})
	v.SetDefault("report.bucketMonths", 6)
	v.SetDefault("report.cacheTtlSec", 30)
}
