package readability_test

import (
	"testing"

	ultravox "github.com/BollineniRohith123/Ultravox"
	"github.com/BollineniRohith123/Ultravox/htmltomarkdown"
	"github.com/BollineniRohith123/Ultravox/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements ultravox.Extractor at compile time.
var _ ultravox.Extractor = (*readability.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		ext := readability.NewExtractor()
		_, err := ext.Extract("")

		require.Error(t, err)
		assert.Equal(t, ultravox.EINVALID, ultravox.ErrorCode(err))
	})

	t.Run("extracts title", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Voice Agents Overview</title></head>
<body><article><p>Agents answer calls with a configured system prompt.</p></article></body>
</html>`

		ext := readability.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Voice Agents Overview", result.Title)
	})

	t.Run("removes navigation", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Agents</title></head>
<body>
<nav><a href="/agents">Agents Nav Link</a><a href="/voices">Voices Nav Link</a></nav>
<article><p>An agent pairs a system prompt with a voice and a set of callable tools.</p></article>
</body>
</html>`

		ext := readability.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "Agents Nav Link")
		assert.NotContains(t, result.ContentHTML, "Voices Nav Link")
	})

	t.Run("removes footer", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Agents</title></head>
<body>
<article><p>An agent pairs a system prompt with a voice and a set of callable tools.</p></article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

		ext := readability.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "Footer copyright text")
	})

	t.Run("removes sidebar", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Agents</title></head>
<body>
<aside class="sidebar"><p>Sidebar navigation content</p></aside>
<article><p>An agent pairs a system prompt with a voice and a set of callable tools.</p></article>
</body>
</html>`

		ext := readability.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "Sidebar navigation content")
	})

	t.Run("keeps main article content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Calls</title></head>
<body>
<nav><a href="/home">Home</a></nav>
<article><p>Each call record carries the join URL the client needs to connect.</p></article>
<footer><p>Footer</p></footer>
</body>
</html>`

		ext := readability.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "join URL the client needs")
	})

	t.Run("preserves headings", func(t *testing.T) {
		t.Parallel()

		// go-readability may demote h1 to h2, but heading text survives
		html := `<!DOCTYPE html>
<html>
<head><title>Tools</title></head>
<body>
<article>
<h1>Client Tools</h1>
<p>Tools extend what the agent can do mid-call.</p>
<h2>Registering a Tool</h2>
<p>Register handlers before joining the call.</p>
</article>
</body>
</html>`

		ext := readability.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Client Tools")
		assert.Contains(t, result.ContentHTML, "Registering a Tool")
		assert.Contains(t, result.ContentHTML, "<h2")
	})

	t.Run("preserves lists and tables", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Events</title></head>
<body>
<article>
<p>The session emits these events:</p>
<ul>
<li>status changes</li>
<li>transcripts</li>
</ul>
<table>
<tr><th>Event</th><th>Payload</th></tr>
<tr><td>transcripts</td><td>text delta</td></tr>
</table>
</article>
</body>
</html>`

		ext := readability.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "<ul")
		assert.Contains(t, result.ContentHTML, "<li")
		assert.Contains(t, result.ContentHTML, "<table")
	})

	t.Run("preserves links and inline code", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>SDK</title></head>
<body>
<article>
<p>See the <a href="https://example.com/sdk">SDK reference</a> and call <code>session.joinCall</code> to connect.</p>
</article>
</body>
</html>`

		ext := readability.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "<a")
		assert.Contains(t, result.ContentHTML, "<code")
	})

	t.Run("preserves simple code blocks", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Install</title></head>
<body>
<article>
<p>Install the client SDK:</p>
<pre><code>npm install voice-client-sdk</code></pre>
<p>That's all you need.</p>
</article>
</body>
</html>`

		ext := readability.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "<pre")
		assert.Contains(t, result.ContentHTML, "npm install voice-client-sdk")
	})

	t.Run("preserves code blocks with nested spans", func(t *testing.T) {
		t.Parallel()

		// Syntax highlighters wrap code in span elements for coloring
		html := `<!DOCTYPE html>
<html>
<head><title>Quickstart</title></head>
<body>
<article>
<p>Create a call:</p>
<pre><code><div class="line"><span class="token">curl</span> <span class="token">api.example.com/calls</span></div></code></pre>
<p>This returns a join URL.</p>
</article>
</body>
</html>`

		ext := readability.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "<pre")
		assert.Contains(t, result.ContentHTML, "curl")
		assert.Contains(t, result.ContentHTML, "api.example.com/calls")
	})

	t.Run("preserves code blocks in wrapper divs", func(t *testing.T) {
		t.Parallel()

		// Documentation sites wrap code in complex structures
		html := `<!DOCTYPE html>
<html>
<head><title>CLI</title></head>
<body>
<article>
<p>Install the CLI:</p>
<div class="expressive-code">
<figure>
<pre><code>pip install voice-cli</code></pre>
</figure>
</div>
<p>Now you can manage agents from the terminal.</p>
</article>
</body>
</html>`

		ext := readability.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "<pre")
		assert.Contains(t, result.ContentHTML, "pip install voice-cli")
	})

	t.Run("preserves language hints", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>WebSocket</title></head>
<body>
<article>
<p>Subscribe to transcripts:</p>
<pre data-language="json"><code class="language-json">{"type": "subscribe"}</code></pre>
<p>The server starts streaming deltas.</p>
</article>
</body>
</html>`

		ext := readability.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		// Language hints should survive in some form
		assert.Contains(t, result.ContentHTML, "json")
	})

	t.Run("extracted content converts to clean markdown", func(t *testing.T) {
		t.Parallel()

		// The extractor's output feeds the markdown converter downstream;
		// anything readability fails to strip ends up in stored chunks.
		html := `<!DOCTYPE html>
<html>
<head><title>Voices - Voice API Docs</title></head>
<body>
<nav><a href="/voices">Voices Nav Link</a></nav>
<article>
<h1>Choosing a Voice</h1>
<p>Pick a voice from the gallery, then set it on the agent before the next call.</p>
<pre><code>curl api.example.com/voices</code></pre>
</article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

		ext := readability.NewExtractor()
		result, err := ext.Extract(html)
		require.NoError(t, err)

		markdown, err := htmltomarkdown.NewConverter().Convert(result.ContentHTML)
		require.NoError(t, err)
		assert.Contains(t, markdown, "set it on the agent")
		assert.Contains(t, markdown, "curl api.example.com/voices")
		assert.NotContains(t, markdown, "Voices Nav Link")
		assert.NotContains(t, markdown, "Footer copyright text")
	})
}
