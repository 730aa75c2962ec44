package rod

import (
	"context"
	"sync/atomic"
	"time"

	ultravox "github.com/BollineniRohith123/Ultravox"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page fetch when the caller's
// context carries no deadline of its own.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements ultravox.Fetcher at compile time.
var _ ultravox.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
	closed  atomic.Bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout sets the per-page fetch timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithFetchTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = timeout
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// The browser is recycled periodically to keep memory in check.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// serializeScript returns the full HTML of the rendered page, descending
// into open shadow roots. Documentation sites built on Web Components keep
// their navigation links inside shadow DOM, which outerHTML omits.
const serializeScript = `() => {
	const hasShadow = (root) => {
		for (const el of root.querySelectorAll('*')) {
			if (el.shadowRoot) return true;
		}
		return false;
	};
	if (!hasShadow(document)) {
		return document.documentElement.outerHTML;
	}
	const serializeChildren = (root) => {
		let out = '';
		for (const node of root.childNodes) {
			out += serializeNode(node);
		}
		return out;
	};
	const serializeNode = (node) => {
		if (node.nodeType === Node.TEXT_NODE) return node.textContent;
		if (node.nodeType === Node.COMMENT_NODE) return '<!--' + node.textContent + '-->';
		if (node.nodeType !== Node.ELEMENT_NODE) return '';
		let out = '<' + node.localName;
		for (const attr of node.attributes) {
			out += ' ' + attr.name + '="' + attr.value.replaceAll('"', '&quot;') + '"';
		}
		out += '>';
		if (node.shadowRoot) out += serializeChildren(node.shadowRoot);
		out += serializeChildren(node);
		out += '</' + node.localName + '>';
		return out;
	};
	return serializeNode(document.documentElement);
}`

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.closed.Load() {
		return "", ultravox.Errorf(ultravox.EINVALID, "fetcher is closed")
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	browser := f.manager.Acquire()
	defer f.manager.Release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	// Wait for page load so JS-rendered content is present
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	obj, err := page.Eval(serializeScript)
	if err != nil {
		return "", err
	}

	return obj.Value.Str(), nil
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.closed.Store(true)
	return f.manager.Close()
}
