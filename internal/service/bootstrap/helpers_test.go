package bootstrap

import (
	"bytes"
	"crypto/md5" //nolint:gosec // Manifests record MD5 digests.
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/bootstrapper/internal/config"
	"github.com/oshokin/bootstrapper/internal/console"
)

// fileServer serves fixed bodies by path and counts requests per path.
type fileServer struct {
	*httptest.Server

	mu    sync.Mutex
	hits  map[string]int
	files map[string][]byte
}

func newFileServer(t *testing.T, files map[string][]byte) *fileServer {
	t.Helper()

	fs := &fileServer{
		hits:  make(map[string]int),
		files: files,
	}

	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.hits[r.URL.Path]++
		body, ok := fs.files[r.URL.Path[1:]]
		fs.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}

		_, _ = w.Write(body)
	}))

	t.Cleanup(fs.Close)

	return fs
}

func (fs *fileServer) hitsFor(name string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return fs.hits["/"+name]
}

func md5Hex(body []byte) string {
	sum := md5.Sum(body) //nolint:gosec // Manifests record MD5 digests.

	return hex.EncodeToString(sum[:])
}

// harness bundles a bootstrapper with captured console output.
type harness struct {
	*Bootstrapper

	dir    string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T, manifest *config.Manifest) *harness {
	t.Helper()

	h := &harness{
		dir:    t.TempDir(),
		stdout: new(bytes.Buffer),
		stderr: new(bytes.Buffer),
	}

	b, err := New(&Options{
		Dir:      h.dir,
		Manifest: manifest,
		Console:  console.New(h.stdout, h.stderr),
	})
	require.NoError(t, err)

	h.Bootstrapper = b

	return h
}

// buildManifest returns a manifest with one placeholder artifact and the given steps.
func buildManifest(steps ...config.StepSpec) *config.Manifest {
	return &config.Manifest{
		Artifacts: map[string]config.ArtifactSource{
			"unused.tar.gz": {
				URL:      "http://127.0.0.1:1/unused.tar.gz",
				Checksum: md5Hex(nil),
			},
		},
		BuildSteps: steps,
	}
}
