package main

import (
	"bytes"
	"database/sql"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dance10/webapps/core"
	"github.com/dance10/webapps/core/schedule"
	sqlxrepos "github.com/dance10/webapps/storage/database/sqlx"
	"github.com/dance10/webapps/tests"
)

func setup(t *testing.T) (*commandLine, core.RowStore, *bytes.Buffer) {
	// set up DB & store
	db := testutil.PrepareDB(t)
	store := sqlxrepos.NewRowStore(db)
	conf := testutil.NewConfig()

	svc, err := schedule.NewService(store, core.NewLocker(conf.LockTimeout), conf, testutil.NopLogger{})
	require.NoError(t, err)

	// start CLI
	var out bytes.Buffer
	return &commandLine{db: db, svc: svc, out: &out}, store, &out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_run(t *testing.T) {
	cli, _, _ := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, cli.run(args))
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _, _ := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
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
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "0"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "teacher_index", "sql"}},
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

func Test_commandLine_audit(t *testing.T) {
	t.Run("clean schedule", func(t *testing.T) {
		cli, store, out := setup(t)
		testutil.CreateClass(t, store, "LH001", "KH001", "GV001")
		testutil.CreateSession(t, store, "SES001", "LH001", "2025-09-01", "09:00", "10:00", "")
		testutil.CreateSession(t, store, "SES002", "LH001", "2025-09-01", "10:00", "11:00", "")

		require.NoError(t, cli.run([]string{"admin", "audit"}))
		assert.Equal(t, "Không có buổi học nào bị trùng lịch.\n", out.String())
	})

	t.Run("clashes", func(t *testing.T) {
		cli, store, out := setup(t)
		testutil.CreateClass(t, store, "LH001", "KH001", "GV001")
		testutil.CreateClass(t, store, "LH002", "KH002", "GV002")
		testutil.CreateSession(t, store, "SES001", "LH001", "2025-09-01", "09:00", "10:30", "")
		testutil.CreateSession(t, store, "SES002", "LH002", "2025-09-01", "10:00", "11:00", "GV001")

		require.NoError(t, cli.run([]string{"admin", "audit"}))
		assert.Equal(t,
			"GV001: SES001 (LH001, 01/09/2025 09:00-10:30) trùng SES002 (LH002, 01/09/2025 10:00-11:00)\n"+
				"Tìm thấy 1 cặp buổi học trùng lịch.\n",
			out.String(),
		)
	})
}
