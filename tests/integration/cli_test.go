// CLI integration tests for carta.
package integration

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"
)

// TestMain builds the carta binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		fmt.Fprintln(os.Stderr, "find project root:", err)
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "carta-test-*")
	if err != nil {
		fmt.Fprintln(os.Stderr, "temp dir:", err)
		os.Exit(1)
	}
	cartaBin = filepath.Join(tmpDir, "carta")

	cmd := exec.Command("go", "build", "-o", cartaBin, "./cmd/carta")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = &BuildError{Err: err, Output: string(output)}
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func TestInitSeedWritesJSONL(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRunCarta("init", "--seed")
	if !strings.Contains(result.Stdout, "Seeded Trattoria Carta with 5 dishes") {
		t.Errorf("unexpected init output: %s", result.Stdout)
	}

	dishes := ReadJSONLFile[Dish](t, filepath.Join(env.DataDir, "dishes.jsonl"))
	if len(dishes) != 5 {
		t.Fatalf("expected 5 dishes in dishes.jsonl, got %d", len(dishes))
	}
	restaurants := ReadJSONLFile[Restaurant](t, filepath.Join(env.DataDir, "restaurants.jsonl"))
	if len(restaurants) != 1 {
		t.Fatalf("expected 1 restaurant, got %d", len(restaurants))
	}
	members := ReadJSONLFile[Membership](t, filepath.Join(env.DataDir, "restaurant_dishes.jsonl"))
	if len(members) != 5 {
		t.Fatalf("expected 5 membership rows, got %d", len(members))
	}
	for i, m := range members {
		if m.Position != i || m.RestaurantID != restaurants[0].RestaurantID {
			t.Errorf("membership %d: got %+v", i, m)
		}
	}
}

func TestMenuLifecycle(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunCarta("init")

	soup := ParseJSON[Dish](t, env.MustRunCarta("--json", "dish", "create",
		"--name", "Ajiaco", "--description", "Chicken soup", "--cost", "18", "--category", "main").Stdout)
	flan := ParseJSON[Dish](t, env.MustRunCarta("--json", "dish", "create",
		"--name", "Flan", "--description", "Caramel custard", "--cost", "6", "--category", "dessert").Stdout)
	r := ParseJSON[Restaurant](t, env.MustRunCarta("--json", "restaurant", "create",
		"--name", "La Fonda", "--address", "Calle 10", "--kitchen-type", "colombian", "--website-url", "https://lafonda.example.co").Stdout)

	env.MustRunCarta("menu", "add", r.RestaurantID, soup.DishID)
	env.MustRunCarta("menu", "add", r.RestaurantID, flan.DishID)

	got := ParseJSON[Restaurant](t, env.MustRunCarta("--json", "menu", "set", r.RestaurantID, flan.DishID, soup.DishID).Stdout)
	if len(got.Dishes) != 2 || got.Dishes[0].DishID != flan.DishID {
		t.Fatalf("expected [flan soup], got %+v", got.Dishes)
	}

	members := ReadJSONLFile[Membership](t, filepath.Join(env.DataDir, "restaurant_dishes.jsonl"))
	if len(members) != 2 || members[0].DishID != flan.DishID || members[1].DishID != soup.DishID {
		t.Errorf("restaurant_dishes.jsonl out of order: %+v", members)
	}

	env.MustRunCarta("dish", "delete", soup.DishID)
	members = ReadJSONLFile[Membership](t, filepath.Join(env.DataDir, "restaurant_dishes.jsonl"))
	if len(members) != 1 || members[0].DishID != flan.DishID {
		t.Errorf("expected only flan after deleting soup, got %+v", members)
	}

	listed := ParseJSON[[]Dish](t, env.MustRunCarta("--json", "menu", "list", r.RestaurantID).Stdout)
	if len(listed) != 1 {
		t.Errorf("expected 1 dish on the menu, got %d", len(listed))
	}
}

func TestExitCodes(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunCarta("init")

	tests := []struct {
		name   string
		env    []string
		args   []string
		code   int
		stderr string
	}{
		{"not found", nil, []string{"dish", "get", "missing"}, 1, "The dish with the given id was not found"},
		{"bad cost", nil, []string{"dish", "create", "--name", "x", "--description", "y", "--cost=-1", "--category", "main"}, 1, "The cost must be a positive number"},
		{"missing argument", nil, []string{"menu", "add", "r1"}, 1, "accepts 2 arg(s)"},
		{"unknown flag", nil, []string{"dish", "list", "--nope"}, 1, "unknown flag"},
		{"unknown backend", []string{"CARTA_BACKEND=bogus"}, []string{"dish", "list"}, 2, "unknown backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.Env = tt.env
			defer func() { env.Env = nil }()

			result := env.RunCarta(tt.args...)
			if result.ExitCode != tt.code {
				t.Errorf("exit code: got %d, want %d (stderr: %s)", result.ExitCode, tt.code, result.Stderr)
			}
			if !strings.Contains(result.Stderr, tt.stderr) {
				t.Errorf("stderr %q does not contain %q", result.Stderr, tt.stderr)
			}
		})
	}
}

func TestServeHealthz(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunCarta("init", "--seed")

	addr := freeAddress(t)
	cmd := exec.Command(cartaBin, "--config-dir", env.Config, "serve", "--address", addr)
	cmd.Env = append(cleanEnv(), "CARTA_LOG_MODE=off")
	if err := cmd.Start(); err != nil {
		t.Fatalf("start serve: %v", err)
	}
	defer func() {
		cmd.Process.Signal(syscall.SIGTERM)
		cmd.Wait()
	}()

	base := "http://" + addr
	var body string
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(base + "/healthz")
		if err == nil {
			data, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			body = string(data)
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if body != "ok" {
		t.Fatalf("healthz: got %q", body)
	}

	resp, err := http.Get(base + "/dishes")
	if err != nil {
		t.Fatalf("GET /dishes: %v", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	dishes := ParseJSON[[]Dish](t, string(data))
	if len(dishes) != 5 {
		t.Errorf("expected 5 seeded dishes over HTTP, got %d", len(dishes))
	}
}

// freeAddress returns a loopback address with a port that was free a moment ago.
func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	return l.Addr().String()
}
