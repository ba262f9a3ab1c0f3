package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"practice-reconciliation/internal/domain"
	"practice-reconciliation/internal/logger"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "RECONCILER"

// LedgerConfig names the columns the reconciler reads from one ledger.
type LedgerConfig struct {
	// Reference is the column holding the shared payment reference.
	Reference string `mapstructure:"reference" default:"Reference"`
	// Amount is the column holding the payment amount.
	Amount string `mapstructure:"amount" default:"Amount"`
}

// Config holds all configuration for the application.
type Config struct {
	Bank      LedgerConfig  `mapstructure:"bank"`
	Practice  LedgerConfig  `mapstructure:"practice"`
	Tolerance float64       `mapstructure:"tolerance" default:"0.01"`
	Log       logger.Config `mapstructure:"log"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"bank-reference":     "bank.reference",
	"practice-reference": "practice.reference",
	"bank-amount":        "bank.amount",
	"practice-amount":    "practice.amount",
	"tolerance":          "tolerance",
	"log-level":          "log.level",
	"log-format":         "log.format",
}

// LoadConfig loads configuration from defaults, the .env file in dir (if
// any), RECONCILER_* environment variables and the given flags. Flags that
// were set explicitly win.
func LoadConfig(dir string, flags *pflag.FlagSet) (*Config, error) {
	// Ignore error if file doesn't exist
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Options converts the column bindings and tolerance into reconciler options.
func (c *Config) Options() domain.Options {
	return domain.Options{
		BankReferenceColumn:     c.Bank.Reference,
		PracticeReferenceColumn: c.Practice.Reference,
		BankAmountColumn:        c.Bank.Amount,
		PracticeAmountColumn:    c.Practice.Amount,
		Tolerance:               c.Tolerance,
	}
}

// Validate reports invalid column bindings or tolerance.
func (c *Config) Validate() error {
	return c.Options().Validate()
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
