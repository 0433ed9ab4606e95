package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Karthikk7293/social-media-handler/domain/dto"
	"github.com/Karthikk7293/social-media-handler/domain/repository"
	"github.com/Karthikk7293/social-media-handler/infrastructure/configuration"
	"github.com/Karthikk7293/social-media-handler/usecase"
)

func TestInitiateSource_File(t *testing.T) {
	cfg := configuration.Config{Data: configuration.Data{Source: configuration.SourceFile, Path: "data/dashboard.json"}}

	source, closeFn, err := InitiateSource(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	d, err := usecase.LoadDashboard(context.Background(), source)
	require.NoError(t, err)
	assert.Equal(t, int64(61500), d.TotalFollowers())
	assert.Equal(t, "2024-03", d.LatestPeriod())
}

func TestInitiateSource_Unknown(t *testing.T) {
	cfg := configuration.Config{Data: configuration.Data{Source: "ftp"}}

	_, closeFn, err := InitiateSource(context.Background(), cfg)
	assert.ErrorContains(t, err, `unknown data source "ftp"`)
	assert.NotPanics(t, closeFn)
}

type failingSource struct{}

func (failingSource) Fetch(context.Context) (*dto.DashboardSnapshot, error) {
	return nil, errors.New("snapshot unavailable")
}

func stubSource(t *testing.T, fn func(context.Context, configuration.Config) (repository.IDashboardSource, func(), error)) {
	t.Helper()
	original := initiateSource
	initiateSource = fn
	t.Cleanup(func() { initiateSource = original })
}

func TestRun_ClosesSourceWhenLoadFails(t *testing.T) {
	closed := false
	stubSource(t, func(context.Context, configuration.Config) (repository.IDashboardSource, func(), error) {
		return failingSource{}, func() { closed = true }, nil
	})

	assert.Equal(t, 1, run())
	assert.True(t, closed, "source must be closed before exiting")
}

func TestRun_SourceInitFailure(t *testing.T) {
	stubSource(t, func(context.Context, configuration.Config) (repository.IDashboardSource, func(), error) {
		return nil, func() {}, errors.New("connection refused")
	})

	assert.Equal(t, 1, run())
}
