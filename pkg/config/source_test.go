package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpgate/pkg/config"
)

func TestParseKeyFile(t *testing.T) {
	t.Parallel()

	src, err := config.FileSource("testdata/totp-configfile")
	require.NoError(t, err)

	assert.Equal(t, config.MapSource{
		"FirstPartOfTOTPAESKey":  "first-part",
		"SecondPartOfTOTPAESKey": "second-part",
		"TOTPMaxTries":           "3",
		"TOTPThrottleTime":       "1200",
	}, src)
}

func TestParseKeyFile_Lines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    config.MapSource
		wantErr bool
	}{
		{
			name:  "comment and short lines ignored",
			input: "# FirstPartOfTOTPAESKey:YQ==\na:b\n\nName:dmFsdWU=\n",
			want:  config.MapSource{"Name": "value"},
		},
		{
			name:  "line without separator ignored",
			input: "no separator here\nName:dmFsdWU=",
			want:  config.MapSource{"Name": "value"},
		},
		{
			name:  "windows line endings",
			input: "Name:dmFsdWU=\r\nOther:b3RoZXI=\r\n",
			want:  config.MapSource{"Name": "value", "Other": "other"},
		},
		{
			name:  "value may contain colon after decoding",
			input: "Name:YTpi",
			want:  config.MapSource{"Name": "a:b"},
		},
		{
			name:    "invalid base64",
			input:   "Name:not-base64!",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := config.ParseKeyFile(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrReadingSource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeyFile_InvalidLineNamed(t *testing.T) {
	t.Parallel()

	_, err := config.ParseKeyFile(strings.NewReader("FirstPartOfTOTPAESKey:Zmlyc3Q=\nUnused:%%%\n"))
	require.ErrorIs(t, err, config.ErrReadingSource)
	assert.Contains(t, err.Error(), "line 2 (Unused)")
}

func TestFileSource_Missing(t *testing.T) {
	t.Parallel()

	_, err := config.FileSource("testdata/does-not-exist")
	assert.ErrorIs(t, err, config.ErrReadingSource)
}

func TestYAMLSource(t *testing.T) {
	t.Parallel()

	src, err := config.OpenSource("testdata/settings.yaml")
	require.NoError(t, err)

	v, ok := src.Lookup(config.NameMaxTries)
	require.True(t, ok)
	assert.Equal(t, "5", v)

	v, ok = src.Lookup(config.NameKeyPartA)
	require.True(t, ok)
	assert.Equal(t, "first-part", v)
}

func TestEnvSource(t *testing.T) {
	t.Setenv("TOTPGATE_TEST_TOTPMaxTries", "7")

	src := config.EnvSource{Prefix: "TOTPGATE_TEST_"}
	v, ok := src.Lookup("TOTPMaxTries")
	require.True(t, ok)
	assert.Equal(t, "7", v)

	_, ok = src.Lookup("TOTPThrottleTime")
	assert.False(t, ok)
}

func TestChain(t *testing.T) {
	t.Parallel()

	chain := config.Chain{
		nil,
		config.MapSource{"A": "from-first"},
		config.MapSource{"A": "from-second", "B": "only-second"},
	}

	v, ok := chain.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, "from-first", v)

	v, ok = chain.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, "only-second", v)

	_, ok = chain.Lookup("C")
	assert.False(t, ok)
}
