package main

import (
	"bytes"
	"context"
	"testing"

	"bookhound/aggregate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	m := NewMain()
	err := m.Run(context.Background(), nil, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	m := NewMain()
	err := m.Run(context.Background(), []string{"help"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "bookhound")
}

func TestMain_WireServices(t *testing.T) {
	t.Parallel()

	m := NewMain()
	m.Registry = aggregate.NewRegistry()
	require.NoError(t, m.wireServices())

	names := m.Registry.Names()
	assert.Len(t, names, 10)
	assert.Contains(t, names, "seoul-gangnam")
	assert.Contains(t, names, "splib")

	svc, ok := m.Registry.Lookup("seoul-songpa")
	assert.True(t, ok)
	assert.NotNil(t, svc)
}
