package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/goswamishashwatpuri/nextract/internal/task"
)

const webhookTimeout = 15 * time.Second

// DeliverViaWebhookExecutor posts the phase body to an external URL. Any
// non-2xx status fails the phase so the caller can see the delivery did not
// land.
type DeliverViaWebhookExecutor struct {
	// Client 可注入用于测试，默认使用包级共享客户端。
	Client *fasthttp.Client
}

func (e *DeliverViaWebhookExecutor) Type() task.Type { return task.TypeDeliverViaWebhook }

var defaultWebhookClient = &fasthttp.Client{
	ReadTimeout:  webhookTimeout,
	WriteTimeout: webhookTimeout,
}

func (e *DeliverViaWebhookExecutor) Execute(ctx context.Context, env Environment) error {
	targetURL, err := requireInput(env, task.ParamTargetURL)
	if err != nil {
		return err
	}
	body, err := requireInput(env, task.ParamBody)
	if err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(targetURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBodyString(body)

	client := e.Client
	if client == nil {
		client = defaultWebhookClient
	}
	if err := client.DoTimeout(req, resp, webhookTimeout); err != nil {
		env.Log().Error(fmt.Sprintf("webhook delivery failed: %v", err))
		return err
	}

	status := resp.StatusCode()
	env.Log().Info(fmt.Sprintf("webhook responded with status %d", status))
	if status < 200 || status > 299 {
		return fmt.Errorf("webhook returned status %d", status)
	}
	return nil
}
