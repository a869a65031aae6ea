package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderVertex = "vertex"

	StoreNotion    = "notion"
	StoreFirestore = "firestore"
)

type Config struct {
	Port           string
	LogLevel       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AuthRequired   bool
	MetricsEnabled bool
	TimeZone       string

	LLMProvider    string
	LLMTemperature float32
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string
	ProjectID      string
	Region         string
	VertexModel    string

	RecordStore          string
	NotionToken          string
	NotionScheduleDBID   string
	NotionTitleProperty  string
	NotionDateProperty   string
	NotionStatusProperty string
	FirestoreCollection  string
	DefaultStatus        string
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}
	cfg := New()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func New() *Config {
	return &Config{
		Port:           getEnv("PORT", "8000"),
		LogLevel:       os.Getenv("LOGLEVEL"),
		ReadTimeout:    getDuration("READTIMEOUT", 15*time.Second),
		WriteTimeout:   getDuration("WRITETIMEOUT", 60*time.Second),
		AuthRequired:   getBool("AUTHREQUIRED", false),
		MetricsEnabled: getBool("METRICSENABLED", true),
		TimeZone:       getEnv("TIMEZONE", "Asia/Seoul"),

		LLMProvider:    strings.ToLower(getEnv("LLMPROVIDER", ProviderOpenAI)),
		LLMTemperature: getFloat32("LLMTEMPERATURE", 0.7),
		OpenAIAPIKey:   os.Getenv("OPENAIAPIKEY"),
		OpenAIModel:    getEnv("OPENAIMODEL", "gpt-4o-mini"),
		OpenAIBaseURL:  os.Getenv("OPENAIBASEURL"),
		ProjectID:      os.Getenv("PROJECTID"),
		Region:         os.Getenv("REGION"),
		VertexModel:    os.Getenv("VERTEXMODEL"),

		RecordStore:          strings.ToLower(getEnv("RECORDSTORE", StoreNotion)),
		NotionToken:          os.Getenv("NOTIONTOKEN"),
		NotionScheduleDBID:   os.Getenv("NOTIONSCHEDULEDBID"),
		NotionTitleProperty:  getEnv("NOTIONTITLEPROPERTY", "Name"),
		NotionDateProperty:   getEnv("NOTIONDATEPROPERTY", "Date"),
		NotionStatusProperty: getEnv("NOTIONSTATUSPROPERTY", "Status"),
		FirestoreCollection:  getEnv("FIRESTORECOLLECTION", "schedules"),
		DefaultStatus:        getEnv("DEFAULTSTATUS", "시작 전"),
	}
}

// Validate reports every missing credential at once; a failure here is
// fatal at startup.
func (c *Config) Validate() error {
	var missing []string
	require := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	switch c.LLMProvider {
	case ProviderOpenAI:
		require("OPENAIAPIKEY", c.OpenAIAPIKey)
	case ProviderVertex:
		require("PROJECTID", c.ProjectID)
		require("REGION", c.Region)
		require("VERTEXMODEL", c.VertexModel)
	default:
		return fmt.Errorf("unsupported LLMPROVIDER %q", c.LLMProvider)
	}

	switch c.RecordStore {
	case StoreNotion:
		require("NOTIONTOKEN", c.NotionToken)
		require("NOTIONSCHEDULEDBID", c.NotionScheduleDBID)
	case StoreFirestore:
		require("PROJECTID", c.ProjectID)
	default:
		return fmt.Errorf("unsupported RECORDSTORE %q", c.RecordStore)
	}

	if c.AuthRequired {
		require("PROJECTID", c.ProjectID)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(dedupe(missing), ", "))
	}
	if c.LLMTemperature <= 0 {
		return fmt.Errorf("LLMTEMPERATURE must be greater than 0")
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.TimeZone, err)
	}
	return nil
}

// Location is the zone used for "today" in prompts. Validate has already
// checked it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat32(key string, fallback float32) float32 {
	v, err := strconv.ParseFloat(os.Getenv(key), 32)
	if err != nil {
		return fallback
	}
	return float32(v)
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
