package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniketpandey04/EduTrak-AI/core"
	"github.com/aniketpandey04/EduTrak-AI/core/question"
	sqlxrepo "github.com/aniketpandey04/EduTrak-AI/storage/database/sqlx"
	"github.com/aniketpandey04/EduTrak-AI/tests"
)

func setup(t *testing.T, input string) (*commandLine, *bytes.Buffer) {
	db := testutil.PrepareDB(t)
	validate, translator := core.NewValidator()
	question.InitValidators(validate, translator)

	buf := new(bytes.Buffer)
	return &commandLine{
		db:         db,
		validate:   validate,
		translator: translator,
		in:         strings.NewReader(input),
		out:        buf,
	}, buf
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func bankPath(name string) string {
	return filepath.Join(core.ProjectRoot(), "storage", "file", "testdata", name)
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func storedIDs(t *testing.T, db *sqlx.DB) []int {
	qs, err := sqlxrepo.NewQuestionRepository(db).ListQuestions(context.Background())
	require.NoError(t, err)
	ids := make([]int, 0, len(qs))
	for _, q := range qs {
		ids = append(ids, q.ID)
	}
	return ids
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t, "")

	origMigrateFunc := migrateFunc
	t.Cleanup(func() { migrateFunc = origMigrateFunc })
	migrateFunc = func(db *sqlx.DB, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "0"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_migrate_database(t *testing.T) {
	cli, _ := setup(t, "")

	require.NoError(t, cli.run([]string{"admin", "migrate", "version"}))
	require.NoError(t, cli.run([]string{"admin", "migrate", "down"}))
	_, err := sqlxrepo.NewQuestionRepository(cli.db).ListQuestions(context.Background())
	assert.Error(t, err, "questions table dropped")
	require.NoError(t, cli.run([]string{"admin", "migrate", "up"}))
	assert.Empty(t, storedIDs(t, cli.db))
}

func Test_commandLine_validate(t *testing.T) {
	invalid := writeFile(t, "bad.yaml", `questions:
  - id: 1
    subject: Physics
    topic: Optics
    difficulty: Insane
    prompt: "?"
    options: ["a", "b"]
    correct_option: 2
`)
	empty := writeFile(t, "empty.json", `{"title": "nothing", "questions": []}`)

	tests := []struct {
		name       string
		args       []string
		wantErr    error
		wantErrStr string
		wantOut    []string
	}{
		{name: "no file", args: []string{"validate"}, wantErr: errHelp},
		{name: "valid", args: []string{"validate", "-file", bankPath("bank.json")}, wantOut: []string{"2 valid questions"}},
		{
			name:       "invalid",
			args:       []string{"validate", "-file", invalid},
			wantErrStr: "has 2 problem(s)",
			wantOut: []string{
				"questions[0].difficulty: difficulty must be one of Easy, Medium or Hard",
				"questions[0].correct_option: correct_option must point at one of the options",
			},
		},
		{name: "empty", args: []string{"validate", "-file", empty}, wantErrStr: "has no questions"},
		{name: "missing", args: []string{"validate", "-file", "nope.yaml"}, wantErr: os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, buf := setup(t, "")
			err := cli.run(append([]string{"admin"}, tt.args...))
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrStr != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrStr)
			default:
				assert.NoError(t, err)
			}
			for _, want := range tt.wantOut {
				assert.Contains(t, buf.String(), want)
			}
			assert.Empty(t, storedIDs(t, cli.db), "validate never imports")
		})
	}
}

func Test_commandLine_import(t *testing.T) {
	type extra struct {
		terminal bool
	}
	tests := []struct {
		cliTest
		input   string
		seeded  bool
		wantIDs []int
	}{
		{cliTest: cliTest{name: "no file", args: []string{"import"}, wantErr: errHelp}, wantIDs: []int{}},
		{cliTest: cliTest{name: "into empty bank", args: []string{"import", "-file", bankPath("bank.yaml")}}, wantIDs: []int{1, 2}},
		{cliTest: cliTest{name: "replace with -yes", args: []string{"import", "-file", bankPath("bank.yaml"), "-yes"}}, seeded: true, wantIDs: []int{1, 2}},
		{
			cliTest: cliTest{name: "replace without terminal", args: []string{"import", "-file", bankPath("bank.yaml")}, wantErr: errAborted},
			seeded:  true,
			wantIDs: []int{1, 2, 3},
		},
		{
			cliTest: cliTest{name: "replace confirmed", args: []string{"import", "-file", bankPath("bank.json")}, extra: extra{terminal: true}},
			input:   "y\n",
			seeded:  true,
			wantIDs: []int{1, 2},
		},
		{
			cliTest: cliTest{name: "replace declined", args: []string{"import", "-file", bankPath("bank.json")}, extra: extra{terminal: true}, wantErr: errAborted},
			input:   "\n",
			seeded:  true,
			wantIDs: []int{1, 2, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, buf := setup(t, tt.input)
			if tt.seeded {
				require.NoError(t, sqlxrepo.Import(context.Background(), cli.db, testutil.SampleQuestions()))
			}

			origIsTerminalFunc := isTerminalFunc
			t.Cleanup(func() { isTerminalFunc = origIsTerminalFunc })
			isTerminalFunc = func(fd int) bool {
				e, ok := tt.extra.(extra)
				return ok && e.terminal
			}

			err := cli.run(append([]string{"admin"}, tt.args...))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "cli.run() error = %v, wantErr %v", err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Contains(t, buf.String(), fmt.Sprintf("imported %d questions", len(tt.wantIDs)))
			}
			assert.Equal(t, tt.wantIDs, storedIDs(t, cli.db))
		})
	}
}
