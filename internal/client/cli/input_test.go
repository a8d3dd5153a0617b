package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  hello world  \n"))

	got, err := GetSimpleText(r, "Name", &out)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
	require.Equal(t, "Name\n> ", out.String())
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("no newline"))

	got, err := GetSimpleText(r, "Name", &out)
	require.NoError(t, err)
	require.Equal(t, "no newline", got)
}

func TestGetSimpleText_EOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader(""))

	_, err := GetSimpleText(r, "Name", &out)
	require.Error(t, err)
}

func TestGetOptionalText(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("new name\n\n"))

	got, err := GetOptionalText(r, "Name", &out)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "new name", *got)

	got, err = GetOptionalText(r, "Name", &out)
	require.NoError(t, err)
	require.Nil(t, got)

	require.Contains(t, out.String(), "(blank to keep)")
}

func TestGetPassword_UsesReadPasswordSeam(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) {
		return []byte("s3cret"), nil
	}
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	pw, err := GetPassword("Password", &out)
	require.NoError(t, err)
	require.Equal(t, "s3cret", pw)
	require.Equal(t, "Password: \n", out.String())
}

func TestParseIDArg(t *testing.T) {
	id, err := parseIDArg([]string{"12"})
	require.NoError(t, err)
	require.Equal(t, int64(12), id)

	_, err = parseIDArg(nil)
	require.Error(t, err)

	_, err = parseIDArg([]string{"12", "13"})
	require.Error(t, err)

	_, err = parseIDArg([]string{"twelve"})
	require.Error(t, err)
}

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList("1, 5,12")
	require.NoError(t, err)
	require.Equal(t, []int64{1, 5, 12}, ids)

	ids, err = parseIDList("  ")
	require.NoError(t, err)
	require.Nil(t, ids)

	_, err = parseIDList("1,x")
	require.Error(t, err)
}
