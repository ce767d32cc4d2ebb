package accounts

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version" yaml:"version"`
	Accounts []accountSchema `toml:"accounts" yaml:"accounts"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported accounts schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type accountSchema struct {
	ID         string           `toml:"id" yaml:"id"`
	Handle     string           `toml:"handle" yaml:"handle"`
	Browser    browserSchema    `toml:"browser" yaml:"browser"`
	Features   map[string]bool  `toml:"features" yaml:"features"`
	RateLimits rateLimitsSchema `toml:"rate_limits" yaml:"rate_limits"`
	Targets    []string         `toml:"targets" yaml:"targets"`
	Policies   policiesSchema   `toml:"policies" yaml:"policies"`
}

type browserSchema struct {
	UserDataDir string `toml:"user_data_dir" yaml:"user_data_dir"`
	Headless    bool   `toml:"headless" yaml:"headless"`
}

type rateLimitsSchema struct {
	LikePerHour        int     `toml:"like_per_hour" yaml:"like_per_hour"`
	BookmarkPerHour    int     `toml:"bookmark_per_hour" yaml:"bookmark_per_hour"`
	RetweetPerHour     int     `toml:"retweet_per_hour" yaml:"retweet_per_hour"`
	CommentPerHour     int     `toml:"comment_per_hour" yaml:"comment_per_hour"`
	MinIntervalSeconds float64 `toml:"min_interval_seconds" yaml:"min_interval_seconds"`
}

// per_target values are either a string (fixed reply shorthand) or a table decoded into targetSchema.
type policiesSchema struct {
	PerTarget map[string]any `toml:"per_target" yaml:"per_target"`
}

type targetSchema struct {
	Actions      []string `mapstructure:"actions"`
	FixedComment string   `mapstructure:"fixed_comment"`
	Greet        any      `mapstructure:"greet"`
	Nickname     string   `mapstructure:"nickname"`
}

type greetSchema struct {
	Mode string `mapstructure:"mode"`
}
