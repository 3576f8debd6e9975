package app

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/pedigreecheck/pkg/constants"
	"github.com/agentstation/pedigreecheck/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Reconciliation
	MinChipDigits      int
	NearMatchEnabled   bool
	NearMatchThreshold int
	Workers            int

	// Inputs
	ReferenceSheet string
	SubmittedSheet string

	// Outputs
	LogDir     string
	OutputFile string

	// Logging configuration. LogLevel is the explicit --log-level flag;
	// DefaultLogLevel comes from the environment or the config file and
	// loses to -v and -q.
	LogLevel        string
	DefaultLogLevel string
	LogFormat       string
	LogOutput       string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags and the commands)
// 2. Environment variables (PEDIGREE_ prefix)
// 3. .env files
// 4. Config file (configFile, or .pedigreecheck.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "cannot read "+v.ConfigFileUsed(), err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		MinChipDigits:      v.GetInt("min_chip_digits"),
		NearMatchEnabled:   v.GetBool("near_match.enabled"),
		NearMatchThreshold: v.GetInt("near_match.threshold"),
		Workers:            v.GetInt("workers"),

		ReferenceSheet: v.GetString("reference_sheet"),
		SubmittedSheet: v.GetString("submitted_sheet"),

		LogDir:     v.GetString("log_dir"),
		OutputFile: v.GetString("output_file"),

		DefaultLogLevel: firstNonEmpty(v.GetString("log_level"), os.Getenv("LOG_LEVEL")),
		LogFormat:       firstNonEmpty(v.GetString("log_format"), os.Getenv("LOG_FORMAT"), "auto"),
		LogOutput:       firstNonEmpty(v.GetString("log_output"), os.Getenv("LOG_OUTPUT"), "stderr"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("min_chip_digits", constants.MinChipDigits)
	v.SetDefault("near_match.enabled", false)
	v.SetDefault("near_match.threshold", constants.DefaultNearMatchThreshold)
	v.SetDefault("workers", constants.DefaultWorkers)
	v.SetDefault("reference_sheet", constants.ReferenceSheet)
	v.SetDefault("submitted_sheet", constants.SubmittedSheet)
	v.SetDefault("log_dir", ".")
	v.SetDefault("output_file", constants.OutputFile)
}

// Validate checks the numeric settings.
func (c *Config) Validate() error {
	if c.MinChipDigits < 1 {
		return errors.NewConfigError("min_chip_digits", "must be at least 1", nil)
	}
	if c.NearMatchThreshold < 0 || c.NearMatchThreshold > 100 {
		return errors.NewConfigError("near_match.threshold", "must be between 0 and 100", nil)
	}
	if c.Workers < 1 || c.Workers > constants.MaxWorkers {
		return errors.NewConfigError("workers", "out of range", nil)
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded second and only fills variables still unset.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
