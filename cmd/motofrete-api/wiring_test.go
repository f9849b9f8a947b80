package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"motofrete/internal/config"
)

func TestApp_CloseOnErrorReleasesInReverseOrder(t *testing.T) {
	var closed []string
	a := &app{closers: []func(){
		func() { closed = append(closed, "redis") },
		func() { closed = append(closed, "postgres") },
	}}

	err := errors.New("ensure schema failed")
	a.closeOnError(&err)
	assert.Equal(t, []string{"postgres", "redis"}, closed)

	a.Close()
	assert.Len(t, closed, 2, "closers run once")
}

func TestApp_CloseOnErrorKeepsResourcesOnSuccess(t *testing.T) {
	closed := 0
	a := &app{closers: []func(){func() { closed++ }}}

	var err error
	a.closeOnError(&err)
	assert.Zero(t, closed)
}

func TestNewApp_InMemoryDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	a, err := newApp(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.delivery)
	assert.NotNil(t, a.serverMetrics)
	assert.Empty(t, a.closers)
}
