package mock

import (
	ultravox "github.com/BollineniRohith123/Ultravox"
)

var _ ultravox.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of ultravox.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*ultravox.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*ultravox.ExtractResult, error) {
	return e.ExtractFn(html)
}
