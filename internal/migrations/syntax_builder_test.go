package migrations

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, name, schema string) ([]Field, Intent) {
	t.Helper()
	fields, err := ParseSchema(schema)
	require.NoError(t, err)
	return fields, ParseName(name)
}

func TestBuildSyntax_CreateArticles(t *testing.T) {
	fields, intent := mustParse(t, "create_articles_table", "title:string, body:text, published:boolean:default(false)")

	body := BuildSyntax(fields, intent)

	assert.Equal(t, "Schema::create('articles', function (Blueprint $table) {\n"+
		"            $table->string('title');\n"+
		"            $table->text('body');\n"+
		"            $table->boolean('published')->default(false);\n"+
		"        });", body.Up)
	assert.Equal(t, "Schema::drop('articles');", body.Down)
}

func TestBuildSyntax_AddRating(t *testing.T) {
	fields, intent := mustParse(t, "add_rating_to_articles_table", "rating:integer:nullable")

	body := BuildSyntax(fields, intent)

	assert.Equal(t, "Schema::table('articles', function (Blueprint $table) {\n"+
		"            $table->integer('rating')->nullable();\n"+
		"        });", body.Up)
	assert.Equal(t, "Schema::table('articles', function (Blueprint $table) {\n"+
		"            $table->dropColumn('rating');\n"+
		"        });", body.Down)
}

func TestBuildSyntax_CreateWithoutFields(t *testing.T) {
	body := BuildSyntax(nil, ParseName("create_posts_table"))

	assert.Equal(t, "Schema::create('posts', function (Blueprint $table) {\n        });", body.Up)
	assert.Equal(t, "Schema::drop('posts');", body.Down)
}

func TestBuildSyntax_CreateDownDropsTableOnly(t *testing.T) {
	fields, intent := mustParse(t, "create_users_table", "id, name:string, email:string:unique, team_id:integer:foreign, rememberToken, timestamps")

	body := BuildSyntax(fields, intent)

	assert.Equal(t, 1, strings.Count(body.Down, "Schema::drop("))
	assert.NotContains(t, body.Down, "dropColumn")
	assert.NotContains(t, body.Down, "$table")
}

func TestBuildSyntax_AddDropsInReverseOrder(t *testing.T) {
	fields, intent := mustParse(t, "add_abc_to_letters_table", "a:string, b:integer, c:boolean")

	body := BuildSyntax(fields, intent)

	a := strings.Index(body.Down, "dropColumn('a')")
	b := strings.Index(body.Down, "dropColumn('b')")
	c := strings.Index(body.Down, "dropColumn('c')")
	require.True(t, a >= 0 && b >= 0 && c >= 0)
	assert.True(t, c < b && b < a, "expected drops in order c, b, a:\n%s", body.Down)
}

func TestBuildSyntax_RemoveSwapsUpAndDown(t *testing.T) {
	fields, err := ParseSchema("votes:integer:default(0), closed:boolean")
	require.NoError(t, err)

	add := BuildSyntax(fields, Intent{Table: "polls", Action: ActionAddColumns})
	remove := BuildSyntax(fields, ParseName("remove_votes_from_polls_table"))

	assert.Equal(t, add.Down, remove.Up)
	assert.Equal(t, add.Up, remove.Down)
}

func TestBuildSyntax_RemoveWithoutSchemaIsNoop(t *testing.T) {
	body := BuildSyntax(nil, ParseName("remove_votes_from_polls_table"))

	assert.True(t, body.Empty())
}

func TestBuildSyntax_UnknownIsEmpty(t *testing.T) {
	fields, intent := mustParse(t, "random_words", "title:string")

	body := BuildSyntax(fields, intent)

	assert.Equal(t, Body{}, body)
}

func TestBuildSyntax_Idempotent(t *testing.T) {
	fields, intent := mustParse(t, "add_details_to_products_table", "price:decimal(8,2):unsigned, sku:string(32):unique, category_id:integer:foreign, softDeletes")

	first := BuildSyntax(fields, intent)
	second := BuildSyntax(fields, intent)

	assert.Equal(t, first, second)
}

func TestBuildSyntax_ForeignKeys(t *testing.T) {
	fields, intent := mustParse(t, "add_owner_to_posts_table",
		"category_id:unsignedInteger:foreign, author_id:unsignedInteger:foreign(users):onDelete(cascade), team_uuid:uuid:foreign(teams, uuid)")

	body := BuildSyntax(fields, intent)

	assert.Contains(t, body.Up, "$table->unsignedInteger('category_id');\n")
	assert.Contains(t, body.Up, "$table->foreign('category_id')->references('id')->on('categories');\n")
	assert.Contains(t, body.Up, "$table->foreign('author_id')->references('id')->on('users')->onDelete('cascade');\n")
	assert.Contains(t, body.Up, "$table->foreign('team_uuid')->references('uuid')->on('teams');\n")

	assert.Equal(t, "Schema::table('posts', function (Blueprint $table) {\n"+
		"            $table->dropForeign(['team_uuid']);\n"+
		"            $table->dropColumn('team_uuid');\n"+
		"            $table->dropForeign(['author_id']);\n"+
		"            $table->dropColumn('author_id');\n"+
		"            $table->dropForeign(['category_id']);\n"+
		"            $table->dropColumn('category_id');\n"+
		"        });", body.Down)
}

func TestBuildSyntax_Conventions(t *testing.T) {
	fields, intent := mustParse(t, "add_housekeeping_to_posts_table", "timestamps, softDeletes, rememberToken")

	body := BuildSyntax(fields, intent)

	assert.Contains(t, body.Up, "$table->timestamps();\n")
	assert.Contains(t, body.Up, "$table->softDeletes();\n")
	assert.Contains(t, body.Up, "$table->rememberToken();\n")
	assert.Equal(t, "Schema::table('posts', function (Blueprint $table) {\n"+
		"            $table->dropRememberToken();\n"+
		"            $table->dropSoftDeletes();\n"+
		"            $table->dropTimestamps();\n"+
		"        });", body.Down)
}

func TestColumnStatement(t *testing.T) {
	tests := []struct {
		schema string
		want   string
	}{
		{schema: "title:string", want: "$table->string('title')"},
		{schema: "title:string(100)", want: "$table->string('title', 100)"},
		{schema: "price:decimal(8, 2)", want: "$table->decimal('price', 8, 2)"},
		{schema: "status:enum(draft, published)", want: "$table->enum('status', ['draft', 'published'])"},
		{schema: "score:float:default(-1.5)", want: "$table->float('score')->default(-1.5)"},
		{schema: "active:boolean:default(TRUE)", want: "$table->boolean('active')->default(true)"},
		{schema: "note:text:nullable:default(null)", want: "$table->text('note')->nullable()->default(null)"},
		{schema: "slug:string:default(hello world)", want: "$table->string('slug')->default('hello world')"},
		{schema: "slug:string:default(\"kept\")", want: "$table->string('slug')->default(\"kept\")"},
		{schema: "name:string:comment(Display name)", want: "$table->string('name')->comment('Display name')"},
		{schema: "votes:integer:unsigned:index:after(title)", want: "$table->integer('votes')->unsigned()->index()->after('title')"},
		{schema: "commentable:morphs", want: "$table->morphs('commentable')"},
		{schema: "timestampsTz", want: "$table->timestampsTz()"},
	}

	for _, tt := range tests {
		t.Run(tt.schema, func(t *testing.T) {
			fields, err := ParseSchema(tt.schema)
			require.NoError(t, err)
			require.Len(t, fields, 1)
			assert.Equal(t, tt.want, ColumnStatement(fields[0]))
		})
	}
}

func TestDropStatements_Morphs(t *testing.T) {
	fields, err := ParseSchema("commentable:nullableMorphs")
	require.NoError(t, err)

	assert.Equal(t, []string{"$table->dropMorphs('commentable')"}, DropStatements(fields[0]))
}

var emittedColumn = regexp.MustCompile(`\$table->(\w+)\('([^']*)'`)

func TestBuildSyntax_RoundTrip(t *testing.T) {
	schemas := []string{
		"title:string, body:text, published:boolean:default(false)",
		"price:decimal(8,2):unsigned, sku:string(32):unique:nullable, status:enum(a,b,c)",
		"user_id:unsignedInteger:index, opened_at:dateTime:nullable, payload:json",
	}

	for _, schema := range schemas {
		t.Run(schema, func(t *testing.T) {
			fields, intent := mustParse(t, "create_things_table", schema)
			body := BuildSyntax(fields, intent)

			var emitted []Field
			for _, m := range emittedColumn.FindAllStringSubmatch(body.Up, -1) {
				emitted = append(emitted, Field{Name: m[2], Type: m[1]})
			}

			require.Len(t, emitted, len(fields))
			for i, f := range fields {
				assert.Equal(t, f.Name, emitted[i].Name)
				assert.Equal(t, f.Type, emitted[i].Type)
			}
		})
	}
}

func TestRenderArgument(t *testing.T) {
	tests := map[string]string{
		"42":      "42",
		"-7":      "-7",
		"3.14":    "3.14",
		"false":   "false",
		"Null":    "null",
		"'x'":     "'x'",
		"\"x\"":   "\"x\"",
		"draft":   "'draft'",
		"1.2.3":   "'1.2.3'",
		"a\\b":    "'a\\\\b'",
		"'broken": "'\\'broken'",
		"01234":   "'01234'",
		"09":      "'09'",
		"0":       "0",
		"0.5":     "0.5",
	}

	for in, want := range tests {
		assert.Equal(t, want, RenderArgument(in), in)
	}
}
