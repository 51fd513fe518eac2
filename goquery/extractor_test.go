package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mjarosz/docskill"
	"github.com/mjarosz/docskill/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract_selector_priority(t *testing.T) {
	t.Parallel()

	page := `<html><body>
		<nav>Navigation</nav>
		<main>Main content here</main>
		<article>Article content here</article>
	</body></html>`

	// "article" is listed first, so it wins even though <main> appears
	// earlier in the document.
	e := goquery.NewExtractor([]string{"article", "main"}, 5)
	got, err := e.Extract("https://example.com/docs", page)
	require.NoError(t, err)
	assert.Equal(t, "Article content here", got.Text)

	e = goquery.NewExtractor([]string{".missing", "main"}, 5)
	got, err = e.Extract("https://example.com/docs", page)
	require.NoError(t, err)
	assert.Equal(t, "Main content here", got.Text, "unmatched selectors are skipped")
}

func TestExtractor_Extract_falls_back_to_body(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor([]string{"article"}, 5)
	got, err := e.Extract("https://example.com/", `<html><body><p>Only a body</p></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Only a body", got.Text)
}

func TestExtractor_Extract_text_joins_nodes_with_newlines(t *testing.T) {
	t.Parallel()

	page := `<html><body><article>
		<h1>  Title  </h1>
		<p>First paragraph.</p>
		<p>Second <em>paragraph</em>.</p>
	</article></body></html>`

	e := goquery.NewExtractor([]string{"article"}, 5)
	got, err := e.Extract("https://example.com/", page)
	require.NoError(t, err)
	assert.Equal(t, "Title\nFirst paragraph.\nSecond\nparagraph\n.", got.Text)
}

func TestExtractor_Extract_title(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor(nil, 5)

	got, err := e.Extract("https://example.com/p", `<html><head><title> Docs Home </title></head><body></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Docs Home", got.Title)

	got, err = e.Extract("https://example.com/p", `<html><body>no title</body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/p", got.Title, "missing title falls back to URL")
}

func TestExtractor_Extract_code_blocks(t *testing.T) {
	t.Parallel()

	page := `<html><body><article>
		<pre class="language-python">def greet(name):
    return name</pre>
		<code>x</code>
		<pre class="lang-rust">fn main() { println!("hi"); }</pre>
		<pre>func main() { fmt.Println("hi") }</pre>
		<pre>!!! mystery content of no known tongue</pre>
	</article></body></html>`

	e := goquery.NewExtractor(nil, 5)
	got, err := e.Extract("https://example.com/", page)
	require.NoError(t, err)

	require.Len(t, got.CodeBlocks, 4, "the tiny <code>x</code> snippet is skipped")
	assert.Equal(t, "python", got.CodeBlocks[0].Language, "language-* class wins")
	assert.Equal(t, "rust", got.CodeBlocks[1].Language, "lang-* class wins")
	assert.Equal(t, "go", got.CodeBlocks[2].Language, "heuristic detection")
	assert.Equal(t, "code", got.CodeBlocks[3].Language, "generic fallback")
}

func TestExtractor_Extract_code_block_cap_counts_qualifying_blocks(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("<html><body>")
	// Two short blocks that must not count against the cap.
	b.WriteString("<code>a</code><code>b</code>")
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, "<pre>qualifying code block number %d</pre>", i)
	}
	b.WriteString("</body></html>")

	e := goquery.NewExtractor(nil, docskill.MaxCodeBlocksPerPage)
	got, err := e.Extract("https://example.com/", b.String())
	require.NoError(t, err)

	require.Len(t, got.CodeBlocks, docskill.MaxCodeBlocksPerPage)
	for i, cb := range got.CodeBlocks {
		assert.Contains(t, cb.Code, fmt.Sprintf("number %d", i), "blocks keep document order")
	}
}

func TestExtractor_Extract_links(t *testing.T) {
	t.Parallel()

	page := `<html><body>
		<a href="/docs/intro">Intro</a>
		<a href="guide/">Guide</a>
		<a href="https://other.example.net/page">External</a>
		<a href="#section">Anchor</a>
		<a href="mailto:team@example.com">Mail</a>
		<a href="javascript:void(0)">JS</a>
		<a href="/docs/api#methods">API</a>
	</body></html>`

	e := goquery.NewExtractor(nil, 5)
	got, err := e.Extract("https://example.com/docs/start", page)
	require.NoError(t, err)

	// External links survive extraction; the crawler's policy drops them.
	assert.Equal(t, []string{
		"https://example.com/docs/intro",
		"https://example.com/docs/guide",
		"https://other.example.net/page",
		"https://example.com/docs/api",
	}, got.Links)
}

func TestExtractor_Extract_empty_document(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor(nil, 5)
	got, err := e.Extract("https://example.com/", "")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/", got.Title)
	assert.Empty(t, got.Text)
	assert.Empty(t, got.CodeBlocks)
	assert.Empty(t, got.Links)
}
