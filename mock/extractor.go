package mock

import "github.com/fwojciec/grail"

var _ grail.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of grail.Extractor.
type Extractor struct {
	ExtractFn func(content string, hint grail.Hint) ([]*grail.Item, error)
}

func (e *Extractor) Extract(content string, hint grail.Hint) ([]*grail.Item, error) {
	return e.ExtractFn(content, hint)
}

var _ grail.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of grail.LinkExtractor.
type LinkExtractor struct {
	LinkTargetsFn func(content string) ([]string, error)
}

func (e *LinkExtractor) LinkTargets(content string) ([]string, error) {
	return e.LinkTargetsFn(content)
}
