package derive_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeforge/derive/pkg/derive"
)

const sourceFixture = `package api

// Store persists records.
//
// derive::default-tag op
type Store interface {
	// derive::tag op.read
	// derive::tag key param=id
	Get(id string) (string, error)

	// derive::tag op.write
	Put(id string, value string) error

	Flush() error
}
`

type opParam struct {
	Name string          `derive:"name"`
	Pos  derive.Position `derive:"pos"`
}

type op struct {
	Name string             `derive:"name"`
	Keys map[string]opParam `derive:"params,tag=key"`
}

type storeMeta struct {
	Name   string        `derive:"name"`
	Reads  map[string]op `derive:"methods,tag=op.read"`
	Writes map[string]op `derive:"methods,tag=op.write"`
	All    []op          `derive:"methods,tag=op,aux"`
}

func writeModule(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module api\n\ngo 1.21\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api.go"), []byte(sourceFixture), 0644))
	return dir
}

func TestScanDerivePopulate(t *testing.T) {
	dir := writeModule(t)

	var meta storeMeta
	require.NoError(t, derive.Run(dir, "Store", &meta, nil))

	assert.Equal(t, "Store", meta.Name)
	require.Len(t, meta.Reads, 1)
	assert.Contains(t, meta.Reads, "Get")
	require.Len(t, meta.Writes, 1)
	assert.Contains(t, meta.Writes, "Put")

	// The untagged Flush inherits the interface default and shows up in the
	// auxiliary catch-all alongside the tagged methods.
	assert.Len(t, meta.All, 3)

	get := meta.Reads["Get"]
	require.Contains(t, get.Keys, "id")
	assert.Equal(t, derive.Position{Global: 0, Group: 0, InGroup: 0, InScope: 0}, get.Keys["id"].Pos)
}

func TestRunUnknownInterface(t *testing.T) {
	dir := writeModule(t)
	var meta storeMeta
	err := derive.Run(dir, "Missing", &meta, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing")
}

func TestProgrammaticSchema(t *testing.T) {
	dir := writeModule(t)
	ifaces, err := derive.Scan(dir, "./...")
	require.NoError(t, err)
	require.Len(t, ifaces, 1)

	s := derive.New("StoreInfo", derive.ScopeInterface,
		&derive.SchemaParam{Name: "Name", Strategy: derive.StrategyCaptureName},
	)
	res, err := derive.Derive(s, ifaces[0], derive.NewRegistry())
	require.NoError(t, err)
	require.NoError(t, res.Finalize())

	name, ok := res.Root.Get("Name")
	require.True(t, ok)
	assert.Equal(t, derive.Str("Store"), name)
}
