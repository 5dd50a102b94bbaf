package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadPlainText(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := write(t, dir, "cv.md", "Senior engineer  \r\nBuilt APIs\r\n\r\nReferences available upon request.\n")

	text, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Senior engineer\nBuilt APIs", text)
}

func TestLoadHTML(t *testing.T) {
	t.Parallel()

	page := `<html><head><style>p{}</style><script>var x = 1;</script></head>
<body>
<nav>Home | Jobs</nav>
<main>
  <h1>Platform Engineer</h1>
  <p>We run   kubernetes<br>at scale.</p>
  <ul><li>Terraform</li><li>AWS</li></ul>
</main>
<footer>Copyright</footer>
</body></html>`

	text, err := Load(write(t, t.TempDir(), "job.html", page))
	require.NoError(t, err)

	assert.Equal(t, "Platform Engineer\nWe run kubernetes\nat scale.\n• Terraform\n• AWS", text)
	assert.NotContains(t, text, "Home")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "var x")
}

func TestHTMLTextWithoutMain(t *testing.T) {
	t.Parallel()

	text, err := HTMLText(strings.NewReader("<body><div>Go</div><div>Rust</div></body>"))
	require.NoError(t, err)
	assert.Equal(t, "Go\nRust", text)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := Load(write(t, dir, "cv.docx", "binary"))
	require.ErrorIs(t, err, ErrUnsupported)

	_, err = Load(filepath.Join(dir, "absent.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(write(t, dir, "broken.pdf", "not a pdf"))
	require.Error(t, err)
}

func TestListAndNewest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	older := write(t, dir, "b.txt", "b")
	newer := write(t, dir, "a.pdf", "a")
	write(t, dir, "notes.docx", "skip")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	now := time.Now()
	require.NoError(t, os.Chtimes(older, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(newer, now, now))

	paths, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{newer, older}, paths)

	path, err := Newest(dir)
	require.NoError(t, err)
	assert.Equal(t, newer, path)

	_, err = Newest(t.TempDir())
	assert.True(t, errors.Is(err, ErrNoDocuments))

	_, err = List(filepath.Join(dir, "absent"))
	assert.Error(t, err)
}

func TestNamesAndStore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "jane_doe.txt", ResumeName("/tmp/in/jane_doe.pdf"))
	assert.Equal(t, "job_093005.txt", JobName(time.Date(2026, 1, 2, 9, 30, 5, 0, time.UTC)))

	dir := filepath.Join(t.TempDir(), "nested", "cache")
	path, err := Store(dir, "cv.txt", "hello")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
