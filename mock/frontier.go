package mock

import (
	"context"

	ultravox "github.com/BollineniRohith123/Ultravox"
)

var _ ultravox.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of ultravox.URLFrontier.
type URLFrontier struct {
	PushFn func(link ultravox.DiscoveredLink) bool
	PopFn  func() (ultravox.DiscoveredLink, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *URLFrontier) Push(link ultravox.DiscoveredLink) bool {
	return f.PushFn(link)
}

func (f *URLFrontier) Pop() (ultravox.DiscoveredLink, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ ultravox.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of ultravox.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
