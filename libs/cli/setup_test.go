package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupEnv(t *testing.T) {
	cases := []struct {
		args     []string
		env      map[string]string
		expected string
	}{
		{nil, nil, ""},
		{[]string{"--foobar", "bang!"}, nil, "bang!"},
		// make sure reset is good
		{nil, nil, ""},
		// test both variants of the prefix
		{nil, map[string]string{"DEMO_FOOBAR": "good"}, "good"},
		{nil, map[string]string{"DEMOFOOBAR": "silly"}, "silly"},
		// and that cli overrides env...
		{
			[]string{"--foobar", "important"},
			map[string]string{"DEMO_FOOBAR": "ignored"},
			"important",
		},
	}

	for idx, tc := range cases {
		i := strconv.Itoa(idx)
		// test command that store value of foobar in local variable
		var foo string
		demo := &cobra.Command{
			Use: "demo",
			RunE: func(cmd *cobra.Command, args []string) error {
				foo = viper.GetString("foobar")
				return nil
			},
		}
		demo.Flags().String("foobar", "", "Some test value from config")
		cmd := PrepareBaseCmd(demo, "DEMO", "/qwerty/asdfgh") // some missing dir..
		cmd.Exit = func(int) {}

		viper.Reset()
		args := append([]string{cmd.Use}, tc.args...)
		err := runWithArgs(t, cmd, args, tc.env)
		require.NoError(t, err, i)
		assert.Equal(t, tc.expected, foo, i)
	}
}

func TestSetupConfig(t *testing.T) {
	cval1 := "fubble"
	conf1 := tempDir(t, "config.toml", "boo = \""+cval1+"\"\n")

	cases := []struct {
		args     []string
		env      map[string]string
		expected string
	}{
		{nil, nil, ""},
		// setting on the command line
		{[]string{"--boo", "haha"}, nil, "haha"},
		{[]string{"--home", conf1}, nil, cval1},
		// test both variants of the prefix
		{nil, map[string]string{"RD_BOO": "bang"}, "bang"},
		{nil, map[string]string{"RD_HOME": conf1}, cval1},
	}

	for idx, tc := range cases {
		i := strconv.Itoa(idx)
		var foo string
		boo := &cobra.Command{
			Use: "reader",
			RunE: func(cmd *cobra.Command, args []string) error {
				foo = viper.GetString("boo")
				return nil
			},
		}
		boo.Flags().String("boo", "", "Some test value from config")
		cmd := PrepareBaseCmd(boo, "RD", "/qwerty/asdfgh")
		cmd.Exit = func(int) {}

		viper.Reset()
		args := append([]string{cmd.Use}, tc.args...)
		err := runWithArgs(t, cmd, args, tc.env)
		require.NoError(t, err, i)
		assert.Equal(t, tc.expected, foo, i)
	}
}

type exitError struct{ code int }

func (e exitError) Error() string { return "exit " + strconv.Itoa(e.code) }
func (e exitError) ExitCode() int { return e.code }

func TestExecutorExitCode(t *testing.T) {
	cases := []struct {
		err      error
		expected int
	}{
		{errors.New("boom"), -1},
		{exitError{code: 7}, 7},
		{errWrap{exitError{code: 3}}, 3},
	}

	for idx, tc := range cases {
		i := strconv.Itoa(idx)
		failing := &cobra.Command{
			Use: "fail",
			RunE: func(cmd *cobra.Command, args []string) error {
				return tc.err
			},
		}
		cmd := PrepareBaseCmd(failing, "FAIL", "/qwerty/asdfgh")

		code := 0
		cmd.Exit = func(c int) { code = c }

		viper.Reset()
		err := runWithArgs(t, cmd, []string{cmd.Use}, nil)
		require.Error(t, err, i)
		assert.Equal(t, tc.expected, code, i)
	}
}

type errWrap struct{ err error }

func (e errWrap) Error() string { return "wrapped: " + e.err.Error() }
func (e errWrap) Unwrap() error { return e.err }

// runWithArgs executes the given command with the specified command line args
// and environmental variables set. It returns any error returned from cmd.Execute()
func runWithArgs(t *testing.T, cmd Executable, args []string, env map[string]string) error {
	t.Helper()

	oargs := os.Args
	defer func() { os.Args = oargs }()

	os.Args = args
	for k, v := range env {
		t.Setenv(k, v)
	}
	return cmd.Execute()
}

func tempDir(t *testing.T, name, contents string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0600))
	return dir
}
