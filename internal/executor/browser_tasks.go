package executor

import (
	"context"
	"fmt"

	"github.com/goswamishashwatpuri/nextract/internal/browser"
	"github.com/goswamishashwatpuri/nextract/internal/task"
)

// LaunchBrowserExecutor connects to the remote browser endpoint, opens a page
// on the requested URL and seeds the environment with both handles. It is the
// only executor that creates browser state; every other browser task finds
// the page already in the environment.
type LaunchBrowserExecutor struct {
	WSEndpoint string
}

func (e *LaunchBrowserExecutor) Type() task.Type { return task.TypeLaunchBrowser }

func (e *LaunchBrowserExecutor) Execute(ctx context.Context, env Environment) error {
	websiteURL, err := requireInput(env, task.ParamWebsiteURL)
	if err != nil {
		return err
	}

	b, err := browser.Connect(ctx, e.WSEndpoint)
	if err != nil {
		env.Log().Error(fmt.Sprintf("failed to connect to browser: %v", err))
		return err
	}
	env.SetBrowser(b)
	env.Log().Info("browser started successfully")

	p, err := b.NewPage(ctx)
	if err != nil {
		env.Log().Error(fmt.Sprintf("failed to open page: %v", err))
		return err
	}
	env.SetPage(p)

	if err := p.Navigate(ctx, websiteURL); err != nil {
		env.Log().Error(fmt.Sprintf("failed to open %s: %v", websiteURL, err))
		return err
	}
	env.Log().Info(fmt.Sprintf("opened page at: %s", websiteURL))
	return nil
}

// NavigateURLExecutor points the existing page at a new URL.
type NavigateURLExecutor struct{}

func (e *NavigateURLExecutor) Type() task.Type { return task.TypeNavigateURL }

func (e *NavigateURLExecutor) Execute(ctx context.Context, env Environment) error {
	p, err := requirePage(env)
	if err != nil {
		return err
	}
	url, err := requireInput(env, task.ParamURL)
	if err != nil {
		return err
	}

	if err := p.Navigate(ctx, url); err != nil {
		env.Log().Error(fmt.Sprintf("navigation failed: %v", err))
		return err
	}
	env.Log().Info(fmt.Sprintf("visited %s", url))
	return nil
}

// PageToHTMLExecutor captures the full HTML of the current page.
type PageToHTMLExecutor struct{}

func (e *PageToHTMLExecutor) Type() task.Type { return task.TypePageToHTML }

func (e *PageToHTMLExecutor) Execute(ctx context.Context, env Environment) error {
	p, err := requirePage(env)
	if err != nil {
		return err
	}

	html, err := p.Content(ctx)
	if err != nil {
		env.Log().Error(fmt.Sprintf("failed to read page content: %v", err))
		return err
	}
	env.SetOutput(task.ParamHTML, html)
	return nil
}

// FillInputExecutor types a value into the element matching the selector.
type FillInputExecutor struct{}

func (e *FillInputExecutor) Type() task.Type { return task.TypeFillInput }

func (e *FillInputExecutor) Execute(ctx context.Context, env Environment) error {
	p, err := requirePage(env)
	if err != nil {
		return err
	}
	selector, err := requireInput(env, task.ParamSelector)
	if err != nil {
		return err
	}
	value, err := requireInput(env, task.ParamValue)
	if err != nil {
		return err
	}

	if err := p.Fill(ctx, selector, value); err != nil {
		env.Log().Error(fmt.Sprintf("failed to fill %s: %v", selector, err))
		return err
	}
	return nil
}

// ClickElementExecutor clicks the element matching the selector.
type ClickElementExecutor struct{}

func (e *ClickElementExecutor) Type() task.Type { return task.TypeClickElement }

func (e *ClickElementExecutor) Execute(ctx context.Context, env Environment) error {
	p, err := requirePage(env)
	if err != nil {
		return err
	}
	selector, err := requireInput(env, task.ParamSelector)
	if err != nil {
		return err
	}

	if err := p.Click(ctx, selector); err != nil {
		env.Log().Error(fmt.Sprintf("failed to click %s: %v", selector, err))
		return err
	}
	return nil
}

// WaitForElementExecutor blocks until the selector reaches the requested
// visibility. The phase deadline bounds the wait.
type WaitForElementExecutor struct{}

func (e *WaitForElementExecutor) Type() task.Type { return task.TypeWaitForElement }

func (e *WaitForElementExecutor) Execute(ctx context.Context, env Environment) error {
	p, err := requirePage(env)
	if err != nil {
		return err
	}
	selector, err := requireInput(env, task.ParamSelector)
	if err != nil {
		return err
	}
	visibility, err := requireInput(env, task.ParamVisibility)
	if err != nil {
		return err
	}
	if visibility != task.VisibilityVisible && visibility != task.VisibilityHidden {
		env.Log().Error(fmt.Sprintf("invalid visibility value: %s", visibility))
		return fmt.Errorf("invalid visibility value: %s", visibility)
	}

	if err := p.WaitForSelector(ctx, selector, visibility == task.VisibilityVisible); err != nil {
		env.Log().Error(fmt.Sprintf("wait for %s failed: %v", selector, err))
		return err
	}
	env.Log().Info(fmt.Sprintf("element %s became: %s", selector, visibility))
	return nil
}

// ScrollToElementExecutor scrolls the page so the selector's element is in view.
type ScrollToElementExecutor struct{}

func (e *ScrollToElementExecutor) Type() task.Type { return task.TypeScrollToElement }

func (e *ScrollToElementExecutor) Execute(ctx context.Context, env Environment) error {
	p, err := requirePage(env)
	if err != nil {
		return err
	}
	selector, err := requireInput(env, task.ParamSelector)
	if err != nil {
		return err
	}

	if err := p.ScrollTo(ctx, selector); err != nil {
		env.Log().Error(fmt.Sprintf("failed to scroll to %s: %v", selector, err))
		return err
	}
	return nil
}
