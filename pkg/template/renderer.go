package template

import (
	"io"
)

// Renderer is the engine contract the pipeline and document renderers rely
// on. Render dispatches on its argument: inline template content renders
// directly, anything else resolves as a template path.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
