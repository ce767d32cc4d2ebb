package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/social-actions-cli/internal/adapters/browser/cdp"
	"github.com/bnema/social-actions-cli/internal/adapters/content/gemini"
	greetstore "github.com/bnema/social-actions-cli/internal/adapters/greetings/toml"
	fileledger "github.com/bnema/social-actions-cli/internal/adapters/ledger/file"
	sqliteledger "github.com/bnema/social-actions-cli/internal/adapters/ledger/sqlite"
	"github.com/bnema/social-actions-cli/internal/adapters/lock/flock"
	"github.com/bnema/social-actions-cli/internal/adapters/metrics/prom"
	statusadapter "github.com/bnema/social-actions-cli/internal/adapters/render/status"
	"github.com/bnema/social-actions-cli/internal/adapters/repo/accounts"
	"github.com/bnema/social-actions-cli/internal/adapters/secrets"
	"github.com/bnema/social-actions-cli/internal/application"
	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/logging"
	"github.com/bnema/social-actions-cli/internal/ports"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	envPrefix         = "SA"
	defaultConfigPath = "~/.social-actions/config.toml"
)

type settings struct {
	Accounts struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"accounts"`
	State struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"state"`
	Ledger struct {
		Backend   string        `mapstructure:"backend"`
		Retention time.Duration `mapstructure:"retention"`
	} `mapstructure:"ledger"`
	Lock struct {
		Timeout      time.Duration `mapstructure:"timeout"`
		PollInterval time.Duration `mapstructure:"poll_interval"`
	} `mapstructure:"lock"`
	Browser struct {
		BaseURL        string        `mapstructure:"base_url"`
		ExecPath       string        `mapstructure:"exec_path"`
		Lang           string        `mapstructure:"lang"`
		PageTimeout    time.Duration `mapstructure:"page_timeout"`
		ConfirmTimeout time.Duration `mapstructure:"confirm_timeout"`
	} `mapstructure:"browser"`
	Pacing struct {
		BetweenTargets time.Duration `mapstructure:"between_targets"`
	} `mapstructure:"pacing"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		Dir    string `mapstructure:"dir"`
	} `mapstructure:"log"`
	Secrets struct {
		Backend string `mapstructure:"backend"`
		Dir     string `mapstructure:"dir"`
	} `mapstructure:"secrets"`
	Gemini struct {
		Enabled   bool   `mapstructure:"enabled"`
		Model     string `mapstructure:"model"`
		SecretRef string `mapstructure:"secret_ref"`
	} `mapstructure:"gemini"`
	Metrics struct {
		Textfile string `mapstructure:"textfile"`
	} `mapstructure:"metrics"`
}

var settingDefaults = map[string]any{
	"accounts.path":           "~/.social-actions/accounts.toml",
	"state.dir":               "~/.social-actions",
	"ledger.backend":          "file",
	"ledger.retention":        "0s",
	"lock.timeout":            "180s",
	"lock.poll_interval":      "500ms",
	"browser.base_url":        application.DefaultBaseURL,
	"browser.exec_path":       "",
	"browser.lang":            "ja-JP",
	"browser.page_timeout":    "30s",
	"browser.confirm_timeout": "8s",
	"pacing.between_targets":  "0s",
	"log.level":               "info",
	"log.format":              "console",
	"log.dir":                 "~/.social-actions/logs",
	"secrets.backend":         "chain",
	"secrets.dir":             "~/.social-actions/secrets",
	"gemini.enabled":          false,
	"gemini.model":            gemini.DefaultModel,
	"gemini.secret_ref":       gemini.DefaultSecretRef,
	"metrics.textfile":        "",
}

type app struct {
	v          *viper.Viper
	settings   settings
	configPath string
	home       string

	logger         *zap.Logger
	repo           *accounts.Repository
	ledger         ports.Ledger
	secrets        ports.SecretStore
	greetings      *application.GreetingService
	generator      ports.ReplyGenerator
	supervisor     *application.Supervisor
	service        *application.Service
	metrics        *prom.Collector
	statusRenderer func([]application.Status, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
}

func loadSettings(home string) (*viper.Viper, settings, string, error) {
	v := viper.New()
	for key, value := range settingDefaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := expandHome(defaultConfigPath, home)
	if override := os.Getenv(envPrefix + "_CONFIG"); override != "" {
		configPath = expandHome(override, home)
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, settings{}, configPath, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	var s settings
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&s, hook); err != nil {
		return nil, settings{}, configPath, fmt.Errorf("decode config: %w", err)
	}

	s.Accounts.Path = expandHome(s.Accounts.Path, home)
	s.State.Dir = expandHome(s.State.Dir, home)
	s.Log.Dir = expandHome(s.Log.Dir, home)
	s.Secrets.Dir = expandHome(s.Secrets.Dir, home)
	s.Metrics.Textfile = expandHome(s.Metrics.Textfile, home)

	return v, s, configPath, nil
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	v, s, configPath, err := loadSettings(homeDir)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{Level: s.Log.Level, Format: s.Log.Format})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	repo, err := accounts.NewRepository(s.Accounts.Path)
	if err != nil {
		return nil, fmt.Errorf("wire account repository: %w", err)
	}

	ledger, err := wireLedger(s)
	if err != nil {
		return nil, err
	}

	secretStore, err := wireSecrets(s)
	if err != nil {
		return nil, err
	}

	greetingStore, err := greetstore.NewStore(filepath.Join(s.State.Dir, "greetings.toml"))
	if err != nil {
		return nil, fmt.Errorf("wire greeting store: %w", err)
	}

	var generator ports.ReplyGenerator
	if s.Gemini.Enabled {
		generator = gemini.NewGenerator(gemini.Config{Model: s.Gemini.Model, SecretRef: s.Gemini.SecretRef}, secretStore, logger)
	}

	factory := cdp.NewFactory(cdp.Config{
		ExecPath:    s.Browser.ExecPath,
		PageTimeout: s.Browser.PageTimeout,
		Lang:        s.Browser.Lang,
	}, logger)

	clock := ports.SystemClock{}
	return &app{
		v:              v,
		settings:       s,
		configPath:     configPath,
		home:           homeDir,
		logger:         logger,
		repo:           repo,
		ledger:         ledger,
		secrets:        secretStore,
		greetings:      application.NewGreetingService(greetingStore, clock),
		generator:      generator,
		supervisor:     application.NewSupervisor(factory, flock.NewLocker(s.Lock.PollInterval), s.Lock.Timeout, logger),
		service:        application.NewService(repo, ledger, clock),
		metrics:        prom.NewCollector(logger),
		statusRenderer: statusadapter.Render,
		now:            time.Now,
	}, nil
}

func wireLedger(s settings) (ports.Ledger, error) {
	root := filepath.Join(s.State.Dir, "ledger")
	switch strings.ToLower(s.Ledger.Backend) {
	case "", "file":
		ledger, err := fileledger.NewLedger(root, ports.SystemClock{})
		if err != nil {
			return nil, fmt.Errorf("wire file ledger: %w", err)
		}
		return ledger, nil
	case "sqlite":
		ledger, err := sqliteledger.NewLedger(root, ports.SystemClock{})
		if err != nil {
			return nil, fmt.Errorf("wire sqlite ledger: %w", err)
		}
		return ledger, nil
	default:
		return nil, fmt.Errorf("ledger backend %q: %w", s.Ledger.Backend, domain.ErrInvalidConfig)
	}
}

func wireSecrets(s settings) (ports.SecretStore, error) {
	switch strings.ToLower(s.Secrets.Backend) {
	case "", "chain":
		return secrets.NewDefaultChain(s.Secrets.Dir, nil), nil
	case "file":
		return secrets.NewFileStore(s.Secrets.Dir), nil
	case "pass":
		return secrets.NewPassStore(), nil
	default:
		return nil, fmt.Errorf("secrets backend %q: %w", s.Secrets.Backend, domain.ErrInvalidConfig)
	}
}

func (a *app) executorConfig(dryRun bool) application.ExecutorConfig {
	return application.ExecutorConfig{
		BaseURL:        a.settings.Browser.BaseURL,
		PageTimeout:    a.settings.Browser.PageTimeout,
		ConfirmTimeout: a.settings.Browser.ConfirmTimeout,
		DryRun:         dryRun,
	}
}

func (a *app) newOrchestrator(dryRun bool) *application.Orchestrator {
	executor := application.NewExecutor(application.ExecutorDeps{
		Ledger:    a.ledger,
		Greetings: a.greetings,
		Generator: a.generator,
		Observer:  a.metrics,
	}, a.executorConfig(dryRun))

	logDir := a.settings.Log.Dir
	return application.NewOrchestrator(application.OrchestratorDeps{
		Accounts:   a.repo,
		Ledger:     a.ledger,
		Supervisor: a.supervisor,
		Locator:    application.NewPostLocator(a.settings.Browser.BaseURL, a.settings.Browser.PageTimeout),
		Resolver:   application.NewPolicyResolver(a.greetings, a.generator),
		Executor:   executor,
		Observer:   a.metrics,
		Logger:     a.logger,
		AccountLogger: func(account domain.AccountID, runID string) (*zap.Logger, func() error, error) {
			return logging.ForAccount(a.logger, logDir, account, runID, a.now())
		},
	}, application.OrchestratorConfig{
		Retention:      a.settings.Ledger.Retention,
		BetweenTargets: a.settings.Pacing.BetweenTargets,
	})
}

func (a *app) close() {
	if err := a.ledger.Close(); err != nil {
		a.logger.Warn("close ledger", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// effectiveSettings lists every known key with its resolved value, sorted, with the home directory
// abbreviated so the output does not depend on the machine.
func (a *app) effectiveSettings() []string {
	keys := a.v.AllKeys()
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		value := a.v.Get(key)
		if text, ok := value.(string); ok {
			if a.home != "" && strings.HasPrefix(text, a.home) {
				text = "~" + strings.TrimPrefix(text, a.home)
			}
			value = strconv.Quote(text)
		}
		lines = append(lines, fmt.Sprintf("%s = %v", key, value))
	}
	return lines
}

func expandHome(path string, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
