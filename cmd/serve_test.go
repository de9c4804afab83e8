package cmd

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindServeFlags(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	bindServeFlags(flags)

	require.NoError(t, flags.Parse([]string{
		"--port", "9001",
		"--source", "dir",
		"--dir", "./content",
		"--watch",
	}))

	assert.Equal(t, 9001, viper.GetInt("server.port"))
	assert.Equal(t, "localhost", viper.GetString("server.host"))
	assert.Equal(t, "dir", viper.GetString("content.source"))
	assert.Equal(t, "./content", viper.GetString("content.dir"))
	assert.True(t, viper.GetBool("content.watch"))
}
