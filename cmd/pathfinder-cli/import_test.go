package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/pathfinderhq/pathfinder/client"
	"github.com/pathfinderhq/pathfinder/internal/models"
	"github.com/pathfinderhq/pathfinder/internal/seed"
)

// fakeServer is an in-memory stand-in for the graph routes the import uses.
type fakeServer struct {
	mu     sync.Mutex
	nodes  []client.Node
	edges  []client.Edge
	lists  int
	nextID int64
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /graph/nodes", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.lists++
		writeJSON(w, http.StatusOK, f.nodes)
	})
	mux.HandleFunc("POST /graph/nodes", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
		}
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck // test server
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, n := range f.nodes {
			if n.Name == req.Name {
				writeJSON(w, http.StatusConflict, map[string]string{"code": "conflict", "message": "node name already exists"})
				return
			}
		}
		f.nextID++
		n := client.Node{ID: f.nextID, Name: req.Name}
		f.nodes = append(f.nodes, n)
		writeJSON(w, http.StatusCreated, n)
	})
	mux.HandleFunc("GET /graph/edges", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.edges)
	})
	mux.HandleFunc("POST /graph/edges", func(w http.ResponseWriter, r *http.Request) {
		var req client.CreateEdgeRequest
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck // test server
		f.mu.Lock()
		defer f.mu.Unlock()
		f.nextID++
		e := client.Edge{ID: f.nextID, SrcID: req.SrcID, DstID: req.DstID, Weight: req.Weight}
		f.edges = append(f.edges, e)
		writeJSON(w, http.StatusCreated, e)
	})
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // test server
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestImportThroughClient(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	dir := t.TempDir()
	nodesPath := writeCSV(t, dir, "nodes.csv", "name\nA\nB\nC\n")
	edgesPath := writeCSV(t, dir, "edges.csv", "src_name,dst_name,weight\nA,B,1\nB,C,2.5\nA,Z,1\n")

	remote := newRemoteGraph(client.New(srv.URL))
	sum, err := seed.NewLoader(remote, remote, quietLog()).LoadFiles(context.Background(), nodesPath, edgesPath)
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}

	if sum.NodesCreated != 3 || sum.EdgesCreated != 2 || sum.EdgesSkipped != 1 {
		t.Errorf("summary: got %+v", sum)
	}
	if len(fake.nodes) != 3 || len(fake.edges) != 2 {
		t.Fatalf("server state: %d nodes, %d edges", len(fake.nodes), len(fake.edges))
	}
	if fake.lists != 1 {
		t.Errorf("expected nodes to be listed once, got %d", fake.lists)
	}

	// A second run over the same files creates nothing.
	remote = newRemoteGraph(client.New(srv.URL))
	sum, err = seed.NewLoader(remote, remote, quietLog()).LoadFiles(context.Background(), nodesPath, edgesPath)
	if err != nil {
		t.Fatalf("second LoadFiles: %v", err)
	}
	if sum.NodesCreated != 0 || sum.EdgesCreated != 0 {
		t.Errorf("second run should be a no-op, got %+v", sum)
	}
	if len(fake.edges) != 2 {
		t.Errorf("edge count changed: %d", len(fake.edges))
	}
}

func TestRemoteGraphConflictRefreshes(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	ctx := context.Background()
	remote := newRemoteGraph(client.New(srv.URL))
	if _, err := remote.GetNodeByName(ctx, "A"); err == nil {
		t.Fatal("expected not found before creation")
	}

	// Created behind the adapter's back.
	fake.nodes = append(fake.nodes, client.Node{ID: 99, Name: "A"})
	fake.nextID = 99

	if _, err := remote.CreateNode(ctx, models.CreateNodeRequest{Name: "A"}); !errors.Is(err, models.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	n, err := remote.GetNodeByName(ctx, "A")
	if err != nil {
		t.Fatalf("lookup after refresh: %v", err)
	}
	if n.ID != 99 {
		t.Errorf("id: got %d, want 99", n.ID)
	}
}
