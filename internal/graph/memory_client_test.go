package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClientScriptsResultsPerQuery(t *testing.T) {
	ctx := context.Background()
	client := NewMemoryClient().
		On("MATCH (a) RETURN a", Result{Records: []Record{{"a": 1}}}).
		On("  MATCH (a) RETURN a\n", Result{Records: []Record{{"a": 2}}})
	client.PushReadResult(Result{Records: []Record{{"b": true}}})

	first, err := client.ExecuteRead(ctx, "MATCH (a) RETURN a", nil)
	require.NoError(t, err)
	second, err := client.ExecuteRead(ctx, "MATCH (a) RETURN a", nil)
	require.NoError(t, err)
	fallback, err := client.ExecuteRead(ctx, "MATCH (b) RETURN b", map[string]any{"id": "x"})
	require.NoError(t, err)
	empty, err := client.ExecuteRead(ctx, "MATCH (b) RETURN b", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Records[0]["a"])
	assert.Equal(t, 2, second.Records[0]["a"])
	assert.Equal(t, true, fallback.Records[0]["b"])
	assert.Empty(t, empty.Records)

	calls := client.ReadCalls()
	require.Len(t, calls, 4)
	assert.Equal(t, "x", calls[2].Params["id"])
}

func TestMemoryClientFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	client := NewMemoryClient().FailOn("CREATE (n)", boom)

	_, err := client.ExecuteWrite(ctx, "CREATE (n)", nil)
	require.ErrorIs(t, err, boom)
	_, err = client.ExecuteWrite(ctx, "CREATE (m)", nil)
	require.NoError(t, err)
	assert.Len(t, client.WriteCalls(), 1)

	client.WithError(boom)
	_, err = client.ExecuteRead(ctx, "MATCH (n) RETURN n", nil)
	require.ErrorIs(t, err, boom)

	client.WithConnectivityError(boom)
	require.ErrorIs(t, client.VerifyConnectivity(ctx), boom)
}

func TestMemoryClientCopiesParams(t *testing.T) {
	client := NewMemoryClient()
	params := map[string]any{"id": "before"}

	_, err := client.ExecuteWrite(context.Background(), "CREATE (n)", params)
	require.NoError(t, err)
	params["id"] = "after"

	assert.Equal(t, "before", client.WriteCalls()[0].Params["id"])
}

type stringer struct{}

func (stringer) String() string { return "stringer" }

func TestRecordAccessors(t *testing.T) {
	rec := Record{
		"s":     "text",
		"b":     []byte("bytes"),
		"st":    stringer{},
		"i64":   int64(3),
		"i":     4,
		"f":     5.0,
		"flag":  true,
		"null":  nil,
		"wrong": "7",
	}

	assert.Equal(t, "text", rec.String("s"))
	assert.Equal(t, "bytes", rec.String("b"))
	assert.Equal(t, "stringer", rec.String("st"))
	assert.Equal(t, "", rec.String("null"))
	assert.Equal(t, "", rec.String("missing"))

	assert.Equal(t, 3, rec.Int("i64"))
	assert.Equal(t, 4, rec.Int("i"))
	assert.Equal(t, 5, rec.Int("f"))
	assert.Equal(t, 0, rec.Int("wrong"))

	assert.True(t, rec.Bool("flag"))
	assert.False(t, rec.Bool("null"))
}
