package mock

import (
	ultravox "github.com/BollineniRohith123/Ultravox"
)

var _ ultravox.Converter = (*Converter)(nil)

// Converter is a mock implementation of ultravox.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
