package model

// Decorator enriches a page (labels, widget hints, theme metadata) after an
// app has been built and before it is rendered.
type Decorator interface {
	Decorate(*Page) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*Page) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(page *Page) error {
	return fn(page)
}
