package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "LOGLEVEL", "READTIMEOUT", "WRITETIMEOUT", "AUTHREQUIRED", "METRICSENABLED", "TIMEZONE",
	"LLMPROVIDER", "LLMTEMPERATURE", "OPENAIAPIKEY", "OPENAIMODEL", "OPENAIBASEURL",
	"PROJECTID", "REGION", "VERTEXMODEL", "RECORDSTORE", "NOTIONTOKEN",
	"NOTIONSCHEDULEDBID", "NOTIONTITLEPROPERTY", "NOTIONDATEPROPERTY",
	"NOTIONSTATUSPROPERTY", "FIRESTORECOLLECTION", "DEFAULTSTATUS",
}

// clearEnv blanks every config key for the test; t.Setenv restores them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestNewDefaults(t *testing.T) {
	clearEnv(t)

	cfg := New()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, StoreNotion, cfg.RecordStore)
	assert.Equal(t, float32(0.7), cfg.LLMTemperature)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "시작 전", cfg.DefaultStatus)
	assert.Equal(t, "Name", cfg.NotionTitleProperty)
	assert.Equal(t, 60*time.Second, cfg.WriteTimeout)
	assert.False(t, cfg.AuthRequired)
	assert.True(t, cfg.MetricsEnabled)
}

func TestValidateReportsAllMissingKeys(t *testing.T) {
	clearEnv(t)

	err := New().Validate()
	require.Error(t, err)
	for _, key := range []string{"OPENAIAPIKEY", "NOTIONTOKEN", "NOTIONSCHEDULEDBID"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestValidateVertexFirestore(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLMPROVIDER", "vertex")
	t.Setenv("RECORDSTORE", "firestore")
	t.Setenv("PROJECTID", "proj")
	t.Setenv("REGION", "us-central1")

	err := New().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VERTEXMODEL")
	assert.NotContains(t, err.Error(), "PROJECTID")

	t.Setenv("VERTEXMODEL", "gemini-2.0-flash")
	require.NoError(t, New().Validate())
}

func TestValidateRejectsUnknownBackends(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAIAPIKEY", "sk-test")
	t.Setenv("RECORDSTORE", "postgres")

	err := New().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RECORDSTORE")
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "OPENAIAPIKEY=sk-from-file\nNOTIONTOKEN=secret_file\nNOTIONSCHEDULEDBID=db-file\nPORT=9000\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	t.Setenv("PORT", "7000")

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "sk-from-file", cfg.OpenAIAPIKey)
	assert.Equal(t, "db-file", cfg.NotionScheduleDBID)
	assert.Equal(t, "7000", cfg.Port)
}

func TestLoadMissingDotEnvIsFine(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAIAPIKEY", "sk")
	t.Setenv("NOTIONTOKEN", "secret")
	t.Setenv("NOTIONSCHEDULEDBID", "db")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "Asia/Seoul", cfg.Location().String())
}
