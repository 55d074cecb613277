package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	Secret    string `yaml:"secret" json:"secret"`
	JwtExpire int    `yaml:"jwt_expire" json:"jwt_expire"` // hours
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "metrics"), 0755)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "pharmadmin",
		Location: "America/Mexico_City",
		Workdir:  "/var/pharmadmin",
		Debug:    false,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1816,
		Secret:    "9b6de5cc-pharmadmin-b712-7aed-0feae0b5d201",
		JwtExpire: 24,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "pharmadmin",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/pharmadmin/pharmadmin.log",
	},
}

func setEnvValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

// LoadConfig reads the YAML configuration file and applies environment
// variable overrides. A missing file yields the default configuration.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig

	if cfile != "" {
		data, err := os.ReadFile(cfile)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return nil, errors.Wrap(err, "read config file")
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrap(err, "parse config file")
			}
		}
	}

	setEnvValue("PHARMADMIN_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("PHARMADMIN_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("PHARMADMIN_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("PHARMADMIN_WEB_HOST", &cfg.Web.Host)
	setEnvValue("PHARMADMIN_WEB_SECRET", &cfg.Web.Secret)

	setEnvValue("PHARMADMIN_DB_HOST", &cfg.Database.Host)
	setEnvValue("PHARMADMIN_DB_NAME", &cfg.Database.Name)
	setEnvValue("PHARMADMIN_DB_USER", &cfg.Database.User)
	setEnvValue("PHARMADMIN_DB_PWD", &cfg.Database.Passwd)
	setEnvBoolValue("PHARMADMIN_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("PHARMADMIN_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("PHARMADMIN_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)

	cfg.initDirs()
	return cfg, nil
}
