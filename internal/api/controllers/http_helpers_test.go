package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestClientIPIgnoresForwardedHeaderByDefault(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("X-Forwarded-For", "203.0.113.9")

	assert.Equal(t, ctx.RemoteIP().String(), clientIP(ctx, false))
}

func TestClientIPTrustsForwardedHeaderBehindProxy(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("X-Forwarded-For", "203.0.113.9")

	assert.Equal(t, "203.0.113.9", clientIP(ctx, true))
}

func TestClientIPPicksFirstForwardedHop(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1, 10.0.0.2")

	assert.Equal(t, "203.0.113.9", clientIP(ctx, true))
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}

	assert.Equal(t, ctx.RemoteIP().String(), clientIP(ctx, true))
}
