package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_defaults(t *testing.T) {
	t.Setenv("ENV", "test")

	conf, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.Equal(t, "sqlite3", conf.Database.Engine)
	assert.Equal(t, "JEE Main", conf.MockTest.ExamType)
	assert.Equal(t, 180, conf.MockTest.DurationMinutes)
	assert.Equal(t, 10800, conf.MockTest.Duration())
	assert.Equal(t, 90, conf.MockTest.QuestionLimit)
	assert.Equal(t, time.Second, conf.MockTest.TickInterval)
	assert.Equal(t, MarkingConfig{Correct: 4, Wrong: -1}, conf.Marking)

	// the bank is found from any package directory
	assert.True(t, filepath.IsAbs(conf.MockTest.BankPath))
	assert.Equal(t, filepath.Join(ProjectRoot(), "config", "questions.yaml"), conf.MockTest.BankPath)
	_, err = os.Stat(conf.MockTest.BankPath)
	assert.NoError(t, err)
}

func TestLoadConfig_emptyBankPath(t *testing.T) {
	t.Setenv("ENV", "qa")
	t.Setenv("QA_MOCKTEST_BANKPATH", "")

	conf, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, conf.MockTest.BankPath)
}

func TestLoadConfig_environment(t *testing.T) {
	t.Setenv("ENV", "qa")
	t.Setenv("QA_MOCKTEST_EXAMTYPE", "NEET")
	t.Setenv("QA_MOCKTEST_DURATIONMINUTES", "200")
	t.Setenv("QA_DATABASE_ENGINE", "postgres")
	t.Setenv("QA_MARKING_WRONG", "0")

	conf, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "QA", conf.Env)
	assert.False(t, conf.TestMode)
	assert.Equal(t, "NEET", conf.MockTest.ExamType)
	assert.Equal(t, 200, conf.MockTest.DurationMinutes)
	assert.Equal(t, "postgres", conf.Database.Engine)
	assert.Equal(t, 0, conf.Marking.Wrong)
}

func TestDatabaseConfig_Address(t *testing.T) {
	assert.Equal(t, "db:5432", DatabaseConfig{Host: "db", Port: 5432}.Address())
	assert.Equal(t, "db", DatabaseConfig{Host: "db"}.Address())
}
