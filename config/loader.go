package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/restclient/logger"
)

// FileSystem abstracts the file operations of the loader for tests.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// OSFileSystem implements FileSystem on the real file system.
type OSFileSystem struct{}

func (OSFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadEnv loads a .env file. Variables already present in the process
// environment are not overridden.
func (OSFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Files are the configuration files chosen for a service.
type Files struct {
	ConfigFile string
	EnvFile    string
}

// Resolver finds the configuration files of a service.
type Resolver struct {
	FileSystem FileSystem
}

// Resolve returns the explicit paths when set, otherwise the first
// existing file of the standard search paths.
func (r *Resolver) Resolve(serviceName string, o Options) Files {
	files := Files{ConfigFile: o.ConfigFile, EnvFile: o.EnvFile}
	if files.ConfigFile == "" {
		files.ConfigFile = r.first(configCandidates(serviceName))
	}
	if files.EnvFile == "" {
		files.EnvFile = r.first(envCandidates(serviceName))
	}
	return files
}

func (r *Resolver) first(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

func configCandidates(serviceName string) []string {
	var paths []string
	for _, dir := range []string{".", "./config", "../config"} {
		if serviceName != "" {
			paths = append(paths, filepath.Join(dir, serviceName+".yml"), filepath.Join(dir, serviceName+".yaml"))
		}
		paths = append(paths, filepath.Join(dir, "config.yml"), filepath.Join(dir, "config.yaml"))
	}
	return paths
}

func envCandidates(serviceName string) []string {
	var paths []string
	for _, dir := range []string{".", "./config", ".."} {
		if serviceName != "" {
			paths = append(paths, filepath.Join(dir, ".env."+serviceName))
		}
		paths = append(paths, filepath.Join(dir, ".env"))
	}
	return paths
}

// Options configures Load.
type Options struct {
	FileSystem FileSystem
	// ConfigFile is an explicit YAML file path.
	ConfigFile string
	// EnvFile is an explicit .env file path.
	EnvFile string
	// EnvPrefix limits environment binding to variables starting with
	// PREFIX_; the prefix is stripped before mapping to keys.
	EnvPrefix string
	Logger    *logger.Logger
}

// Option is a functional option for Load.
type Option func(*Options)

// WithFileSystem sets the file system used to resolve and read files.
func WithFileSystem(fs FileSystem) Option {
	return func(o *Options) { o.FileSystem = fs }
}

// WithConfigFile sets an explicit configuration file.
func WithConfigFile(path string) Option {
	return func(o *Options) { o.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file.
func WithEnvFile(path string) Option {
	return func(o *Options) { o.EnvFile = path }
}

// WithEnvPrefix only binds environment variables with the given prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *Options) { o.EnvPrefix = strings.TrimSuffix(strings.ToUpper(prefix), "_") }
}

// WithLogger sets the logger used for loader warnings.
func WithLogger(l *logger.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Defaulter is implemented by configs that fill in their own defaults.
type Defaulter interface {
	ApplyDefaults()
}

// Validator is implemented by configs that check themselves.
type Validator interface {
	Validate() error
}

// Load reads the configuration of serviceName into cfg, a pointer to a
// struct with mapstructure tags. Sources, each overriding the previous:
// the YAML file, the .env file, the process environment. Defaults are
// applied and the result validated when cfg implements Defaulter or
// Validator.
func Load(serviceName string, cfg any, opts ...Option) error {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.FileSystem == nil {
		o.FileSystem = OSFileSystem{}
	}
	if o.Logger == nil {
		o.Logger = logger.WithComponent("config")
	}

	files := (&Resolver{FileSystem: o.FileSystem}).Resolve(serviceName, o)
	v := viper.New()

	if files.ConfigFile != "" && o.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", files.ConfigFile, err)
		}
	} else if o.ConfigFile != "" {
		o.Logger.Warn("Config file not found", logger.Fields("file", o.ConfigFile))
	}

	if files.EnvFile != "" && o.FileSystem.Exists(files.EnvFile) {
		if err := o.FileSystem.LoadEnv(files.EnvFile); err != nil {
			o.Logger.Warn("Failed to load env file", logger.Fields("file", files.EnvFile, logger.FieldError, err.Error()))
		}
	}

	bindEnv(v, o.EnvPrefix, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal %s: %w", serviceName, err)
	}

	if d, ok := cfg.(Defaulter); ok {
		d.ApplyDefaults()
	}
	if val, ok := cfg.(Validator); ok {
		if err := val.Validate(); err != nil {
			return fmt.Errorf("config: %s: %w", serviceName, err)
		}
	}
	return nil
}

// bindEnv sets every key variant of each environment variable so that
// REST_TIMEOUT reaches rest.timeout and DISCOVERY_CONSUL_ALLOW_UNHEALTHY
// reaches discovery.consul.allow_unhealthy.
func bindEnv(v *viper.Viper, prefix string, environ []string) {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		if prefix != "" {
			rest, found := strings.CutPrefix(key, prefix+"_")
			if !found {
				continue
			}
			key = rest
		}
		for _, variant := range envKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// envKeyVariants returns the candidate config keys of an environment
// variable: every split of its underscore-separated words into a dotted
// prefix and an underscored suffix.
//
//	DISCOVERY_CONSUL_TOKEN -> discovery_consul_token, discovery.consul_token,
//	                          discovery.consul.token
func envKeyVariants(envKey string) []string {
	parts := strings.Split(strings.ToLower(envKey), "_")
	variants := []string{strings.Join(parts, "_")}
	if len(parts) == 1 {
		return variants
	}

	seen := map[string]bool{variants[0]: true}
	for i := 1; i < len(parts); i++ {
		for j := i; j < len(parts); j++ {
			key := strings.Join(parts[:i], ".")
			if j > i {
				key += "." + strings.Join(parts[i:j], ".")
			}
			key += "." + strings.Join(parts[j:], "_")
			if !seen[key] {
				seen[key] = true
				variants = append(variants, key)
			}
		}
	}
	return variants
}
