package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Page is one attached browser tab, driven over its CDP session.
type Page struct {
	browser   *Browser
	targetID  string
	sessionID string
}

const waitPollInterval = 100 * time.Millisecond

// evalResult mirrors the Runtime.evaluate response shape.
type evalResult struct {
	Result struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	} `json:"result"`
	ExceptionDetails *struct {
		Text      string `json:"text"`
		Exception *struct {
			Description string `json:"description"`
		} `json:"exception"`
	} `json:"exceptionDetails"`
}

// Evaluate runs a JavaScript expression in the page and returns its value as
// raw JSON.
func (p *Page) Evaluate(ctx context.Context, expression string) (json.RawMessage, error) {
	var res evalResult
	err := p.browser.call(ctx, p.sessionID, "Runtime.evaluate", map[string]any{
		"expression":    expression,
		"returnByValue": true,
		"awaitPromise":  true,
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.ExceptionDetails != nil {
		msg := res.ExceptionDetails.Text
		if res.ExceptionDetails.Exception != nil && res.ExceptionDetails.Exception.Description != "" {
			msg = res.ExceptionDetails.Exception.Description
		}
		return nil, fmt.Errorf("page script failed: %s", msg)
	}
	return res.Result.Value, nil
}

// EvaluateString runs an expression expected to yield a string.
func (p *Page) EvaluateString(ctx context.Context, expression string) (string, error) {
	raw, err := p.Evaluate(ctx, expression)
	if err != nil {
		return "", err
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("expected string result, got %s", string(raw))
	}
	return s, nil
}

// EvaluateBool runs an expression expected to yield a boolean.
func (p *Page) EvaluateBool(ctx context.Context, expression string) (bool, error) {
	raw, err := p.Evaluate(ctx, expression)
	if err != nil {
		return false, err
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, fmt.Errorf("expected boolean result, got %s", string(raw))
	}
	return b, nil
}

// Navigate loads the given URL and waits for the document to finish loading.
func (p *Page) Navigate(ctx context.Context, url string) error {
	var res struct {
		ErrorText string `json:"errorText"`
	}
	err := p.browser.call(ctx, p.sessionID, "Page.navigate", map[string]any{
		"url": url,
	}, &res)
	if err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if res.ErrorText != "" {
		return fmt.Errorf("navigate %s: %s", url, res.ErrorText)
	}
	return p.waitForLoad(ctx)
}

// waitForLoad polls document.readyState until the page finished loading.
func (p *Page) waitForLoad(ctx context.Context) error {
	for {
		state, err := p.EvaluateString(ctx, "document.readyState")
		if err == nil && state == "complete" {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitPollInterval):
		}
	}
}

// Content returns the full serialized HTML of the page.
func (p *Page) Content(ctx context.Context) (string, error) {
	return p.EvaluateString(ctx, "document.documentElement.outerHTML")
}

// Click clicks the first element matching the selector.
func (p *Page) Click(ctx context.Context, selector string) error {
	expr := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el) { throw new Error('element not found'); }
		el.click();
		return true;
	})()`, jsString(selector))
	_, err := p.Evaluate(ctx, expr)
	return err
}

// Fill sets the value of the first input matching the selector and fires an
// input event so reactive frontends notice the change.
func (p *Page) Fill(ctx context.Context, selector, value string) error {
	expr := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el) { throw new Error('element not found'); }
		el.value = %s;
		el.dispatchEvent(new Event('input', { bubbles: true }));
		el.dispatchEvent(new Event('change', { bubbles: true }));
		return true;
	})()`, jsString(selector), jsString(value))
	_, err := p.Evaluate(ctx, expr)
	return err
}

// ScrollTo scrolls the viewport so the first matching element is at the top.
func (p *Page) ScrollTo(ctx context.Context, selector string) error {
	expr := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el) { throw new Error('element not found'); }
		const top = el.getBoundingClientRect().top + window.scrollY;
		window.scrollTo({ top });
		return true;
	})()`, jsString(selector))
	_, err := p.Evaluate(ctx, expr)
	return err
}

// WaitForSelector polls until an element matching the selector reaches the
// requested visibility, or the context expires.
func (p *Page) WaitForSelector(ctx context.Context, selector string, visible bool) error {
	var expr string
	if visible {
		expr = fmt.Sprintf(`(() => {
			const el = document.querySelector(%s);
			if (!el) { return false; }
			const style = window.getComputedStyle(el);
			return style.display !== 'none' && style.visibility !== 'hidden';
		})()`, jsString(selector))
	} else {
		expr = fmt.Sprintf(`(() => {
			const el = document.querySelector(%s);
			if (!el) { return true; }
			const style = window.getComputedStyle(el);
			return style.display === 'none' || style.visibility === 'hidden';
		})()`, jsString(selector))
	}

	for {
		ok, err := p.EvaluateBool(ctx, expr)
		if err == nil && ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for selector %q: %w", selector, ctx.Err())
		case <-time.After(waitPollInterval):
		}
	}
}

// Close detaches the tab.
func (p *Page) Close(ctx context.Context) error {
	return p.browser.call(ctx, "", "Target.closeTarget", map[string]any{
		"targetId": p.targetID,
	}, nil)
}

// jsString quotes a Go string as a JavaScript string literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
