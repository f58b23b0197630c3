package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with a throwaway database and returns stdout.
func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func testDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

func TestRoot_InvalidFormatRejected(t *testing.T) {
	_, err := execute(t, testDB(t), "--format", "xml", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestItemAdd_ThenList(t *testing.T) {
	db := testDB(t)

	_, err := execute(t, db, "item", "add",
		"--name", "X-BBQ", "--price", "9.00", "--category", "Menu")
	require.NoError(t, err)

	out, err := execute(t, db, "list", "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "X-BBQ - 9.00")
}

func TestItemAdd_DuplicateFailsWithExitFailure(t *testing.T) {
	db := testDB(t)

	_, err := execute(t, db, "item", "add",
		"--name", "Batata", "--price", "3.00", "--category", "Acompanhamentos")
	require.NoError(t, err)

	out, err := execute(t, db, "--format", "json", "item", "add",
		"--name", "batata ", "--price", "3.00", "--category", "Acompanhamentos")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DUPLICATE_NAME", resp.Error.Code)
}

func TestItemAdd_UnknownCategory(t *testing.T) {
	_, err := execute(t, testDB(t), "item", "add",
		"--name", "Mystery", "--price", "1.00", "--category", "Sobremesas")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestComboAdd_MissingItemsReported(t *testing.T) {
	db := testDB(t)

	_, err := execute(t, db, "item", "add",
		"--name", "X-Burger", "--price", "10.00", "--category", "Menu")
	require.NoError(t, err)

	out, err := execute(t, db, "--format", "json", "combo", "add",
		"--name", "Combo X", "--main", "X-Burger", "--drink", "Soda", "--side", "Fries")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_ITEMS", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "Soda")
	assert.Contains(t, resp.Error.Message, "Fries")
}

func TestComboAdd_ReportsComputedPrice(t *testing.T) {
	db := testDB(t)

	_, err := execute(t, db, "item", "add",
		"--name", "X-Burger", "--price", "12.00", "--category", "Menu")
	require.NoError(t, err)
	_, err = execute(t, db, "item", "add",
		"--name", "Guaravita", "--price", "2.00", "--category", "Bebidas")
	require.NoError(t, err)

	out, err := execute(t, db, "--format", "json", "combo", "add",
		"--name", "Combo X", "--main", "X-Burger", "--drink", "Guaravita")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 14.00, data["price"])
}

func TestItemUpdate_RenamePropagatesToListedCombo(t *testing.T) {
	db := testDB(t)

	for _, args := range [][]string{
		{"item", "add", "--name", "X-Burger", "--price", "12.00", "--category", "Menu"},
		{"item", "add", "--name", "Guaraná", "--price", "2.00", "--category", "Bebidas"},
		{"combo", "add", "--name", "Combo X", "--main", "X-Burger", "--drink", "Guaraná"},
		{"item", "update", "--name", "Guaraná", "--new-name", "Guaravita"},
	} {
		_, err := execute(t, db, args...)
		require.NoError(t, err, "args: %v", args)
	}

	out, err := execute(t, db, "list", "combos")
	require.NoError(t, err)
	assert.Contains(t, out, "Combo X - 14.00")
	assert.Contains(t, out, "Guaravita")
	assert.NotContains(t, out, "Guaraná")
}

func TestItemUpdate_NoFlagsFails(t *testing.T) {
	db := testDB(t)

	_, err := execute(t, db, "item", "add",
		"--name", "X-BBQ", "--price", "9.00", "--category", "Menu")
	require.NoError(t, err)

	out, err := execute(t, db, "--format", "json", "item", "update", "--name", "X-BBQ")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NO_FIELDS", resp.Error.Code)
}

func TestItemDelete_RefFlagsMutuallyExclusive(t *testing.T) {
	_, err := execute(t, testDB(t), "item", "delete", "--id", "1", "--name", "X-BBQ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestSeed_DefaultCatalog(t *testing.T) {
	db := testDB(t)

	_, err := execute(t, db, "seed")
	require.NoError(t, err)

	out, err := execute(t, db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "X-Boladão")
	assert.Contains(t, out, "Guaravita")
	assert.Contains(t, out, "Combo X-BBQ - 14.00")
}

func TestAdmin_DropRequiresConfirmation(t *testing.T) {
	_, err := execute(t, testDB(t), "admin", "drop", "combos")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

func TestAdmin_TableRejectsUnknownName(t *testing.T) {
	_, err := execute(t, testDB(t), "admin", "table", "sqlite_master")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestAdmin_SchemaListsTables(t *testing.T) {
	out, err := execute(t, testDB(t), "admin", "schema")
	require.NoError(t, err)
	for _, table := range []string{"categories", "items", "combos"} {
		assert.Contains(t, out, "-- "+table)
	}
}
