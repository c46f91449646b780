package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var w bytes.Buffer
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("  ash@poke.com \nnext\n")), "Enter email", &w)
	require.NoError(t, err)
	assert.Equal(t, "ash@poke.com", got)
	assert.Equal(t, "Enter email\n> ", w.String())
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	var w bytes.Buffer
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("misty")), "p", &w)
	require.NoError(t, err)
	assert.Equal(t, "misty", got)

	_, err = GetSimpleText(bufio.NewReader(strings.NewReader("")), "p", &w)
	assert.Error(t, err)
}

func stubTerminal(t *testing.T, terminal bool, pw []byte, pwErr error) {
	t.Helper()
	origTerm, origRead := isTerminal, readPassword
	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) { return pw, pwErr }
	t.Cleanup(func() {
		isTerminal = origTerm
		readPassword = origRead
	})
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("pikachu1"), nil)

	var w bytes.Buffer
	pw, err := GetPassword(bufio.NewReader(strings.NewReader("ignored\n")), &w)
	require.NoError(t, err)
	assert.Equal(t, "pikachu1", string(pw))
	assert.Equal(t, "Enter password: \n", w.String())
}

func TestGetPassword_TerminalError(t *testing.T) {
	stubTerminal(t, true, nil, errors.New("tty gone"))

	var w bytes.Buffer
	_, err := GetPassword(bufio.NewReader(strings.NewReader("")), &w)
	assert.EqualError(t, err, "tty gone")
}

func TestGetPassword_PipedInput(t *testing.T) {
	stubTerminal(t, false, nil, errors.New("must not be called"))

	var w bytes.Buffer
	pw, err := GetPassword(bufio.NewReader(strings.NewReader("starmie9\n")), &w)
	require.NoError(t, err)
	assert.Equal(t, "starmie9", string(pw))
}
