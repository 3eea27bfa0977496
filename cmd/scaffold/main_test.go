package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runIn(t *testing.T, dir string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), dir, args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func migrationFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "database", "migrations", "*.php"))
	require.NoError(t, err)
	return matches
}

func TestRun_Help(t *testing.T) {
	code, stdout, _ := runIn(t, t.TempDir())

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "make:migration:schema")
	assert.Contains(t, stdout, "history")

	code, stdout, _ = runIn(t, t.TempDir(), "make:model", "-h")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "make:model <table>")
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, stderr := runIn(t, t.TempDir(), "make:everything")

	assert.Equal(t, exitUnknownCommand, code)
	assert.Contains(t, stderr, "Unknown command: make:everything")
}

func TestRun_MakeMigrationSchema(t *testing.T) {
	dir := t.TempDir()

	code, stdout, stderr := runIn(t, dir, "make:migration:schema", "create_posts_table",
		"--schema=title:string, body:text", "--views", "--route")
	require.Equal(t, exitOK, code, stderr)

	files := migrationFiles(t, dir)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0], "_create_posts_table.php"))

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "$table->string('title');")

	for _, path := range []string{
		"app/Post.php",
		"app/Http/Controllers/PostController.php",
		"resources/views/posts/index.blade.php",
		"resources/views/master.blade.php",
		"routes/web.php",
	} {
		assert.FileExists(t, filepath.Join(dir, path))
		assert.Contains(t, stdout, path)
	}
	assert.Contains(t, stdout, "created")

	code, stdout, stderr = runIn(t, dir, "history", "--limit", "3")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "KIND")
	assert.Equal(t, 4, strings.Count(strings.TrimSpace(stdout), "\n")+1)
}

func TestRun_FlagsAfterName(t *testing.T) {
	dir := t.TempDir()

	code, _, stderr := runIn(t, dir, "make:migration", "add_votes_to_posts_table", "--schema", "votes:integer:unsigned")
	require.Equal(t, exitOK, code, stderr)

	files := migrationFiles(t, dir)
	require.Len(t, files, 1)
	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "$table->integer('votes')->unsigned();")
	assert.NoFileExists(t, filepath.Join(dir, "app", "Post.php"))
}

func TestRun_InvalidSchema(t *testing.T) {
	dir := t.TempDir()

	code, _, stderr := runIn(t, dir, "make:migration:schema", "create_posts_table", "--schema=title:strin, body")

	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "Error: invalid schema")
	assert.Contains(t, stderr, `field 1 "title:strin"`)
	assert.Contains(t, stderr, `field 2 "body"`)
	assert.NoDirExists(t, filepath.Join(dir, "database"))
	assert.NoDirExists(t, filepath.Join(dir, "app"))
}

func TestRun_Pretend(t *testing.T) {
	dir := t.TempDir()

	code, stdout, stderr := runIn(t, dir, "make:migration:schema", "create_posts_table", "--schema=title:string", "--pretend")
	require.Equal(t, exitOK, code, stderr)

	assert.Contains(t, stdout, "pretend")
	assert.Contains(t, stdout, "class CreatePostsTable extends Migration")
	assert.Contains(t, stdout, "class PostController extends Controller")
	assert.Empty(t, migrationFiles(t, dir))
	assert.NoDirExists(t, filepath.Join(dir, ".scaffold"))
}

func TestRun_MigrationExists(t *testing.T) {
	dir := t.TempDir()

	code, _, _ := runIn(t, dir, "make:migration", "create_posts_table")
	require.Equal(t, exitOK, code)

	code, _, stderr := runIn(t, dir, "make:migration", "create_posts_table")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "migration already exists")
}

func TestRun_TableCommands(t *testing.T) {
	dir := t.TempDir()

	code, _, stderr := runIn(t, dir, "make:model", "blog_posts", "--schema=title:string")
	require.Equal(t, exitOK, code, stderr)
	model, err := os.ReadFile(filepath.Join(dir, "app", "BlogPost.php"))
	require.NoError(t, err)
	assert.Contains(t, string(model), "protected $fillable = ['title'];")

	code, _, stderr = runIn(t, dir, "make:controller", "blog_posts")
	require.Equal(t, exitOK, code, stderr)
	assert.FileExists(t, filepath.Join(dir, "app", "Http", "Controllers", "BlogPostController.php"))

	code, stdout, stderr := runIn(t, dir, "make:controller", "blog_posts")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "skipped")

	code, _, stderr = runIn(t, dir, "make:views", "blog_posts")
	require.Equal(t, exitOK, code, stderr)
	assert.FileExists(t, filepath.Join(dir, "resources", "views", "blogposts", "edit.blade.php"))
}

func TestRun_MissingArguments(t *testing.T) {
	code, _, stderr := runIn(t, t.TempDir(), "make:migration")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "migration name is required")

	code, _, stderr = runIn(t, t.TempDir(), "make:controller", "a", "b")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "expected one table name")
}

func TestRun_HistoryDisabled(t *testing.T) {
	t.Setenv("SCAFFOLD_HISTORY", "false")
	dir := t.TempDir()

	code, _, stderr := runIn(t, dir, "make:migration", "create_posts_table")
	require.Equal(t, exitOK, code, stderr)
	assert.NoDirExists(t, filepath.Join(dir, ".scaffold"))

	code, _, stderr = runIn(t, dir, "history")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "history is disabled")
}

func TestRun_HistoryLimitFromConfig(t *testing.T) {
	t.Setenv("SCAFFOLD_HISTORY_LIMIT", "2")
	dir := t.TempDir()

	code, _, stderr := runIn(t, dir, "make:migration:schema", "create_posts_table", "--schema=title:string")
	require.Equal(t, exitOK, code, stderr)

	code, stdout, stderr := runIn(t, dir, "history")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, 3, strings.Count(strings.TrimSpace(stdout), "\n")+1)

	code, stdout, stderr = runIn(t, dir, "history", "--limit=0")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, 4, strings.Count(strings.TrimSpace(stdout), "\n")+1)
}

func TestRun_Config(t *testing.T) {
	t.Setenv("SCAFFOLD_NAMESPACE", "Acme")
	dir := t.TempDir()

	code, stdout, stderr := runIn(t, dir, "config")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "scaffold_namespace")
	assert.Contains(t, stdout, "Acme")
	assert.Contains(t, stdout, filepath.Join(dir, ".scaffold", "history.db"))

	code, stdout, stderr = runIn(t, dir, "config", "history.limit")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "20\n", stdout)

	code, _, stderr = runIn(t, dir, "config", "stub_path")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "scaffold_stub_path is not set")
}
