package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{ENV: "production"}).IsProduction())
	assert.False(t, (&Config{ENV: "development"}).IsProduction())
	assert.False(t, (&Config{ENV: ""}).IsProduction())
}

func TestReadConfigTrustProxyHeader(t *testing.T) {
	t.Setenv("TRUST_PROXY_HEADER", "true")
	assert.True(t, ReadConfig().TRUST_PROXY_HEADER)

	t.Setenv("TRUST_PROXY_HEADER", "false")
	assert.False(t, ReadConfig().TRUST_PROXY_HEADER)

	t.Setenv("TRUST_PROXY_HEADER", "")
	assert.False(t, ReadConfig().TRUST_PROXY_HEADER)
}
