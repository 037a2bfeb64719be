package dap_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	dbdap "go.trai.ch/dbridge/internal/adapters/dap"
	"go.trai.ch/dbridge/internal/core/domain"
)

func TestEmitter_Start(t *testing.T) {
	var out bytes.Buffer
	req := launchRequest()
	req.StopAtEntry = true

	require.NoError(t, dbdap.NewEmitter(&out).Start(context.Background(), req))

	g := goldie.New(t)
	g.Assert(t, "emit_launch", out.Bytes())
}

func TestEmitter_InvalidRequest(t *testing.T) {
	var out bytes.Buffer

	err := dbdap.NewEmitter(&out).Start(context.Background(), &domain.LaunchRequest{Kind: domain.RequestLaunch, Console: "tty"})
	require.ErrorIs(t, err, domain.ErrInvalidLaunchRequest)
	require.Zero(t, out.Len())
}
