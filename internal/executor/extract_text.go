package executor

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/goswamishashwatpuri/nextract/internal/task"
)

// ExtractTextFromElementExecutor parses an HTML document and extracts the
// text content of the first element matching a CSS selector. It works purely
// on the HTML string, no live page involved.
type ExtractTextFromElementExecutor struct{}

func (e *ExtractTextFromElementExecutor) Type() task.Type { return task.TypeExtractTextFromElement }

func (e *ExtractTextFromElementExecutor) Execute(ctx context.Context, env Environment) error {
	selector, err := requireInput(env, task.ParamSelector)
	if err != nil {
		return err
	}
	htmlInput, err := requireInput(env, task.ParamHTML)
	if err != nil {
		return err
	}

	sel, err := parseSelector(selector)
	if err != nil {
		env.Log().Error(fmt.Sprintf("invalid selector: %v", err))
		return err
	}

	root, err := html.Parse(strings.NewReader(htmlInput))
	if err != nil {
		env.Log().Error(fmt.Sprintf("failed to parse html: %v", err))
		return err
	}

	element := sel.find(root)
	if element == nil {
		env.Log().Error("element not found")
		return fmt.Errorf("no element matches selector %q", selector)
	}

	text := nodeText(element)
	if text == "" {
		env.Log().Error("element has no text")
		return fmt.Errorf("element %q has no text", selector)
	}

	env.SetOutput(task.ParamExtractedText, text)
	return nil
}
