package cli_test

import (
	"bytes"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/temirov/repoheal/cmd/cli"
)

const testConfigurationContentConstant = `common:
  log_level: debug
  log_format: console
tools:
  enforce:
    extensions:
      - .py
    skip:
      - vendor
  make_init:
    lineup: true
    wrap: 80
    outfile: exports.py
  write_tests:
    author: Jane Doe
    output: generated_tests
    recursive: true
  delete_pyc:
    recursive: true
    print: true
`

func TestApplicationConfigurationDecoding(t *testing.T) {
	viperInstance := viper.New()
	viperInstance.SetConfigType("yaml")
	require.NoError(t, viperInstance.ReadConfig(bytes.NewReader([]byte(testConfigurationContentConstant))))

	var configuration cli.ApplicationConfiguration
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "mapstructure", Result: &configuration})
	require.NoError(t, decoderError)
	require.NoError(t, decoder.Decode(viperInstance.AllSettings()))

	require.Equal(t, "debug", configuration.Common.LogLevel)
	require.Equal(t, "console", configuration.Common.LogFormat)
	require.Equal(t, []string{".py"}, configuration.Tools.Enforce.Extensions)
	require.Equal(t, []string{"vendor"}, configuration.Tools.Enforce.Skip)
	require.True(t, configuration.Tools.MakeInit.Lineup)
	require.Equal(t, 80, configuration.Tools.MakeInit.Wrap)
	require.Equal(t, "exports.py", configuration.Tools.MakeInit.Outfile)
	require.Equal(t, "Jane Doe", configuration.Tools.WriteTests.Author)
	require.Equal(t, "generated_tests", configuration.Tools.WriteTests.Output)
	require.True(t, configuration.Tools.WriteTests.Recursive)
	require.True(t, configuration.Tools.DeletePyc.Recursive)
	require.True(t, configuration.Tools.DeletePyc.Print)
}
