package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	DatabaseConfig struct {
		Engine     string // postgres | sqlite3
		Host       string
		Port       int
		User       string
		Password   string
		Name       string
		DisableTLS bool
		Path       string // sqlite3 only
	}

	MockTestConfig struct {
		ExamType        string
		DurationMinutes int
		QuestionLimit   int
		BankPath        string
		TickInterval    time.Duration
	}

	MarkingConfig struct {
		Correct int
		Wrong   int
	}

	Config struct {
		Env          string // DEV (local; default), TEST, QA, PROD
		Debug        bool
		TestMode     bool
		AppName      string
		Build        string
		RollbarToken string
		Database     DatabaseConfig
		MockTest     MockTestConfig
		Marking      MarkingConfig
	}
)

func (dc DatabaseConfig) Address() string {
	if dc.Port == 0 {
		return dc.Host
	}
	return fmt.Sprintf("%s:%d", dc.Host, dc.Port)
}

// Duration returns the timed test length in seconds.
func (mc MockTestConfig) Duration() int {
	return mc.DurationMinutes * 60
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	root := ProjectRoot()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "EduTrak")
	v.SetDefault("build", "develop")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("database.engine", "sqlite3")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "edutrak")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "edutrak")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("database.path", "edutrak.db")

	v.SetDefault("mockTest.examType", "JEE Main")
	v.SetDefault("mockTest.durationMinutes", 180)
	v.SetDefault("mockTest.questionLimit", 90)
	v.SetDefault("mockTest.bankPath", filepath.Join(root, "config", "questions.yaml"))
	v.SetDefault("mockTest.tickInterval", time.Second)

	v.SetDefault("marking.correct", 4)
	v.SetDefault("marking.wrong", -1)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.Set("env", env)
	v.SetEnvPrefix(env)
	// DEV_DATABASE_ENGINE -> database.engine
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(root, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}
	// DEV_MOCKTEST_BANKPATH= switches the mock test app to the database
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	return v, nil
}

// LoadConfig reads the configuration from defaults, the optional dotenv file and the environment.
func LoadConfig() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	return &Config{
		Env:          v.GetString("env"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		RollbarToken: v.GetString("rollbarToken"),
		Database: DatabaseConfig{
			Engine:     v.GetString("database.engine"),
			Host:       v.GetString("database.host"),
			Port:       v.GetInt("database.port"),
			User:       v.GetString("database.user"),
			Password:   v.GetString("database.password"),
			Name:       v.GetString("database.name"),
			DisableTLS: v.GetBool("database.disableTLS"),
			Path:       v.GetString("database.path"),
		},
		MockTest: MockTestConfig{
			ExamType:        v.GetString("mockTest.examType"),
			DurationMinutes: v.GetInt("mockTest.durationMinutes"),
			QuestionLimit:   v.GetInt("mockTest.questionLimit"),
			BankPath:        v.GetString("mockTest.bankPath"),
			TickInterval:    v.GetDuration("mockTest.tickInterval"),
		},
		Marking: MarkingConfig{
			Correct: v.GetInt("marking.correct"),
			Wrong:   v.GetInt("marking.wrong"),
		},
	}, nil
}

// NewConfig is LoadConfig for dependency containers: a broken environment is fatal.
func NewConfig() *Config {
	conf, err := LoadConfig()
	if err != nil {
		panic(errors.Wrap(err, "loading config"))
	}
	return conf
}
