package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniketpandey04/EduTrak-AI/core"
	"github.com/aniketpandey04/EduTrak-AI/core/mocktest"
	"github.com/aniketpandey04/EduTrak-AI/core/question"
)

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name      string
		bankPath  string
		wantCount int
		wantErr   bool
	}{
		{name: "bank file", bankPath: filepath.Join(core.ProjectRoot(), "storage", "file", "testdata", "bank.yaml"), wantCount: 2},
		{name: "default bank", bankPath: filepath.Join(core.ProjectRoot(), "config", "questions.yaml"), wantCount: 3},
		{name: "unmigrated database", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := testConfig()
			conf.MockTest.BankPath = tt.bankPath
			conf.Database = core.DatabaseConfig{Engine: "sqlite3", Path: ":memory:"}

			c := newContainer(func() *core.Config { return conf })
			err := c.Invoke(func(repo question.Repository, closeRepo closer, svc *mocktest.Service) {
				defer func() { assert.NoError(t, closeRepo()) }()

				sess, err := svc.NewSession(context.Background(), mocktest.OptionsFromConfig(conf))
				if tt.wantErr {
					assert.Error(t, err)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.wantCount, sess.QuestionCount())
			})
			require.NoError(t, err)
		})
	}
}
