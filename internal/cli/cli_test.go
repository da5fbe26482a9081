package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/carta/internal/catalog"
	"github.com/mesh-intelligence/carta/internal/validation"
	"github.com/mesh-intelligence/carta/pkg/types"
)

// env isolates one CLI test: its own config and data directories, and no
// CARTA_* overrides from the outer environment.
type env struct {
	t         *testing.T
	configDir string
	dataDir   string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	for _, key := range []string{"CARTA_BACKEND", "CARTA_DATA_DIR", "CARTA_CONFIG_DIR", "CARTA_DSN", "CARTA_LOG_MODE", "CARTA_SYNC_STRATEGY"} {
		t.Setenv(key, "")
	}
	root := t.TempDir()
	return &env{
		t:         t,
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

// run executes carta with the env's directories and returns stdout, stderr
// and the exit code.
func (e *env) run(args ...string) (string, string, int) {
	e.t.Helper()
	full := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	code := run(root, full, &stderr)
	return stdout.String(), stderr.String(), code
}

// runJSON executes carta in --json mode, requires success and decodes the
// output into out.
func (e *env) runJSON(out any, args ...string) {
	e.t.Helper()
	stdout, stderr, code := e.run(append([]string{"--json"}, args...)...)
	require.Equal(e.t, exitSuccess, code, "stderr=%s", stderr)
	require.NoError(e.t, json.Unmarshal([]byte(stdout), out), "stdout=%s", stdout)
}

func (e *env) createDish(name string) types.Dish {
	e.t.Helper()
	var d types.Dish
	e.runJSON(&d, "dish", "create", "--name", name, "--description", name+" of the day", "--cost", "12.5", "--category", "main")
	return d
}

func (e *env) createRestaurant(name string) types.Restaurant {
	e.t.Helper()
	var r types.Restaurant
	e.runJSON(&r, "restaurant", "create", "--name", name, "--address", "Calle 1", "--kitchen-type", "colombian", "--website-url", "https://example.co")
	return r
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	stdout, _, code := e.run("version")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, stdout, "carta v"+Version)
	assert.Contains(t, stdout, modulePath)
}

func TestInit(t *testing.T) {
	e := newEnv(t)

	stdout, stderr, code := e.run("init")
	require.Equal(t, exitSuccess, code, "stderr=%s", stderr)
	assert.Contains(t, stdout, "Carta initialized (sqlite backend)")

	data, err := os.ReadFile(filepath.Join(e.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: sqlite")
	assert.Contains(t, string(data), "data_dir: "+e.dataDir)

	for _, name := range []string{"dishes.jsonl", "restaurants.jsonl", "restaurant_dishes.jsonl"} {
		assert.FileExists(t, filepath.Join(e.dataDir, name))
	}

	stdout, _, code = e.run("init")
	assert.Equal(t, exitSuccess, code)
	assert.NotContains(t, stdout, "Wrote")
}

func TestInitSeed(t *testing.T) {
	e := newEnv(t)

	stdout, stderr, code := e.run("init", "--seed")
	require.Equal(t, exitSuccess, code, "stderr=%s", stderr)
	assert.Contains(t, stdout, "Seeded Trattoria Carta with 5 dishes")

	var dishes []types.Dish
	e.runJSON(&dishes, "dish", "list")
	assert.Len(t, dishes, 5)

	stdout, _, code = e.run("init", "--seed")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, stdout, "seed skipped")
	e.runJSON(&dishes, "dish", "list")
	assert.Len(t, dishes, 5)
}

func TestDishCommands(t *testing.T) {
	e := newEnv(t)
	dish := e.createDish("Bandeja")
	require.NotEmpty(t, dish.DishID)

	var got types.Dish
	e.runJSON(&got, "dish", "get", dish.DishID)
	assert.Equal(t, "Bandeja", got.Name)

	e.runJSON(&got, "dish", "update", dish.DishID, "--cost", "30")
	assert.Equal(t, 30.0, got.Cost)
	assert.Equal(t, "Bandeja", got.Name, "unset flags keep their value")

	stdout, _, code := e.run("dish", "list")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, stdout, "Bandeja")
	assert.Contains(t, stdout, "30.00")

	stdout, _, code = e.run("dish", "delete", dish.DishID)
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, stdout, "Deleted dish "+dish.DishID)

	_, stderr, code := e.run("dish", "get", dish.DishID)
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, catalog.MsgDishNotFound)
}

func TestDishCreateRejectsInput(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"missing name", []string{"--description", "d", "--cost", "1", "--category", "main"}, "name is required"},
		{"missing cost", []string{"--name", "n", "--description", "d", "--category", "main"}, "cost is required"},
		{"zero cost", []string{"--name", "n", "--description", "d", "--cost", "0", "--category", "main"}, catalog.MsgCostNotPositive},
		{"infinite cost", []string{"--name", "n", "--description", "d", "--cost", "Inf", "--category", "main"}, catalog.MsgCostNotPositive},
		{"NaN cost", []string{"--name", "n", "--description", "d", "--cost", "NaN", "--category", "main"}, catalog.MsgCostNotPositive},
		{"unknown category", []string{"--name", "n", "--description", "d", "--cost", "2", "--category", "snack"}, catalog.MsgInvalidCategory},
		{"bad flag value", []string{"--cost", "cheap"}, "invalid argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			_, stderr, code := e.run(append([]string{"dish", "create"}, tt.args...)...)
			assert.Equal(t, exitUserError, code)
			assert.Contains(t, stderr, tt.message)
		})
	}
}

func TestRestaurantCommands(t *testing.T) {
	e := newEnv(t)
	r := e.createRestaurant("La Fonda")
	require.NotEmpty(t, r.RestaurantID)
	assert.Empty(t, r.Dishes)

	var got types.Restaurant
	e.runJSON(&got, "restaurant", "update", r.RestaurantID, "--name", "La Fonda Paisa")
	assert.Equal(t, "La Fonda Paisa", got.Name)
	assert.Equal(t, "colombian", got.KitchenType)

	_, stderr, code := e.run("restaurant", "update", r.RestaurantID, "--kitchen-type", "french")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, catalog.MsgInvalidKitchenType)

	var all []types.Restaurant
	e.runJSON(&all, "restaurant", "list")
	assert.Len(t, all, 1)

	_, _, code = e.run("restaurant", "delete", r.RestaurantID)
	assert.Equal(t, exitSuccess, code)
	_, stderr, code = e.run("restaurant", "get", r.RestaurantID)
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, catalog.MsgRestaurantNotFound)
}

func TestMenuCommands(t *testing.T) {
	e := newEnv(t)
	soup := e.createDish("Ajiaco")
	rice := e.createDish("Arroz")
	r := e.createRestaurant("La Fonda")

	var got types.Restaurant
	e.runJSON(&got, "menu", "add", r.RestaurantID, soup.DishID)
	e.runJSON(&got, "menu", "add", r.RestaurantID, rice.DishID)
	require.Len(t, got.Dishes, 2)

	var dishes []types.Dish
	e.runJSON(&dishes, "menu", "list", r.RestaurantID)
	require.Len(t, dishes, 2)
	assert.Equal(t, soup.DishID, dishes[0].DishID)

	e.runJSON(&got, "menu", "set", r.RestaurantID, rice.DishID, soup.DishID)
	require.Len(t, got.Dishes, 2)
	assert.Equal(t, rice.DishID, got.Dishes[0].DishID)

	var dish types.Dish
	e.runJSON(&dish, "menu", "get", r.RestaurantID, soup.DishID)
	assert.Equal(t, "Ajiaco", dish.Name)

	e.runJSON(&got, "menu", "remove", r.RestaurantID, soup.DishID)
	require.Len(t, got.Dishes, 1)

	_, stderr, code := e.run("menu", "get", r.RestaurantID, soup.DishID)
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, catalog.MsgDishNotInRestaurant)

	_, stderr, code = e.run("menu", "add", "missing", soup.DishID)
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, catalog.MsgMenuRestaurantGone)
}

func TestUsageErrors(t *testing.T) {
	e := newEnv(t)
	for _, args := range [][]string{
		{"dish", "get"},
		{"menu", "add", "only-one"},
		{"dish", "list", "--bogus"},
		{"nosuchcommand"},
	} {
		_, _, code := e.run(args...)
		assert.Equal(t, exitUserError, code, "args=%v", args)
	}
}

func TestSystemErrors(t *testing.T) {
	e := newEnv(t)
	t.Setenv("CARTA_BACKEND", "bogus")
	_, stderr, code := e.run("dish", "list")
	assert.Equal(t, exitSysError, code)
	assert.Contains(t, stderr, "unknown backend")
}

func TestMemoryBackendFromEnv(t *testing.T) {
	e := newEnv(t)
	t.Setenv("CARTA_BACKEND", "memory")
	e.createDish("Soup")

	var dishes []types.Dish
	e.runJSON(&dishes, "dish", "list")
	assert.Empty(t, dishes, "the memory backend starts empty on every run")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitSuccess},
		{"business error", types.NewNotFound("gone"), exitUserError},
		{"validation error", &validation.Error{Fields: []validation.FieldError{{Field: "name", Rule: "required"}}}, exitUserError},
		{"usage error", usageError{errors.New("bad flag")}, exitUserError},
		{"system error", systemError{errors.New("disk full")}, exitSysError},
		{"wrapped store failure", managerError(errors.New("connection reset")), exitSysError},
		{"business error through managerError", managerError(types.NewBadRequest("bad")), exitUserError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
