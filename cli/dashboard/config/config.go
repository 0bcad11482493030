package config

/*
Описание конфигурационного файла клиента панели мониторинга
*/

import (
	"os"
	"time"

	"github.com/daniil11ru/visla/cli/dashboard/types"
	"github.com/daniil11ru/visla/cli/dashboard/view"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

const (
	defaultApiTimeout  = 30
	defaultApiRetries  = 3
	defaultRefreshCron = "@every 10s"
	defaultLocale      = "it"
	defaultFeedPrefix  = "visla"
)

type Auth struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Token    string `yaml:"token"`
}

type Feed struct {
	URL    string `yaml:"url"`
	Prefix string `yaml:"prefix"`
}

type Filter struct {
	Keyword  string   `yaml:"keyword"`
	Statuses []string `yaml:"statuses"`
	Groups   []int64  `yaml:"groups"`
	Sort     string   `yaml:"sort"`
}

type Settings struct {
	ApiURL        string                       `yaml:"api_url"`
	ApiTimeout    int                          `yaml:"api_timeout"`
	ApiRetryCount int                          `yaml:"api_retry_count"`
	Auth          Auth                         `yaml:"auth"`
	RefreshCron   string                       `yaml:"refresh_cron"`
	Locale        string                       `yaml:"locale"`
	LogLevel      string                       `yaml:"log_level"`
	LogFilePath   string                       `yaml:"log_file_path"`
	LogMaxAgeDays int                          `yaml:"log_max_age_days"`
	Store         map[string]map[string]string `yaml:"storage"`
	Feed          Feed                         `yaml:"feed"`
	Filter        Filter                       `yaml:"filter"`
}

func New(confPath string) (Settings, error) {
	c := Settings{}
	data, err := os.ReadFile(confPath)
	if err != nil {
		return c, err
	}
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		return c, err
	}

	if c.ApiTimeout <= 0 {
		c.ApiTimeout = defaultApiTimeout
	}
	if c.ApiRetryCount < 0 {
		log.Errorf("Некорректное число повторов запросов к API (%d). Используется значение по умолчанию %d.", c.ApiRetryCount, defaultApiRetries)
		c.ApiRetryCount = defaultApiRetries
	}
	if c.RefreshCron == "" {
		c.RefreshCron = defaultRefreshCron
	}

	if c.Locale == "" {
		c.Locale = defaultLocale
	}
	if _, err := language.Parse(c.Locale); err != nil {
		log.Errorf("Некорректная локаль %q: %v. Используется значение по умолчанию %q.", c.Locale, err, defaultLocale)
		c.Locale = defaultLocale
	}

	if c.Feed.URL != "" && c.Feed.Prefix == "" {
		c.Feed.Prefix = defaultFeedPrefix
	}

	if c.Filter.Sort == "" {
		c.Filter.Sort = string(view.SortByName)
	}
	if _, err := view.ParseSortKey(c.Filter.Sort); err != nil {
		log.Errorf("%v. Используется сортировка по имени.", err)
		c.Filter.Sort = string(view.SortByName)
	}

	return c, err
}

func (s *Settings) GetLogLevel() log.Level {
	var lvl log.Level

	switch s.LogLevel {
	case "DEBUG":
		lvl = log.DebugLevel
	case "INFO":
		lvl = log.InfoLevel
	case "WARN":
		lvl = log.WarnLevel
	case "ERROR":
		lvl = log.ErrorLevel
	default:
		lvl = log.InfoLevel
	}
	return lvl
}

func (s *Settings) GetApiTimeout() time.Duration {
	return time.Duration(s.ApiTimeout) * time.Second
}

func (s *Settings) GetLocale() language.Tag {
	tag, err := language.Parse(s.Locale)
	if err != nil {
		return language.Italian
	}
	return tag
}

func (s *Settings) GetSortKey() view.SortKey {
	key, err := view.ParseSortKey(s.Filter.Sort)
	if err != nil {
		return view.SortByName
	}
	return key
}

// GetFilterStatuses статусы из конфига; неизвестные значения отбрасываются
func (s *Settings) GetFilterStatuses() []types.Status {
	statuses := make([]types.Status, 0, len(s.Filter.Statuses))
	for _, raw := range s.Filter.Statuses {
		status, err := types.ParseStatus(raw)
		if err != nil {
			log.Warnf("%v. Статус исключён из фильтра.", err)
			continue
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func (s *Settings) FeedEnabled() bool {
	return s.Feed.URL != ""
}
