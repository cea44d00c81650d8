package executor

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goswamishashwatpuri/nextract/internal/task"
)

func TestDeliverViaWebhook(t *testing.T) {
	var gotBody string
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	exec := &DeliverViaWebhookExecutor{}
	env := newTestEnv(map[string]string{
		task.ParamTargetURL: srv.URL,
		task.ParamBody:      `{"result":"ok"}`,
	})

	require.NoError(t, exec.Execute(context.Background(), env))
	assert.Equal(t, `{"result":"ok"}`, gotBody)
	assert.Equal(t, "application/json", gotContentType)
}

func TestDeliverViaWebhookNon2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	exec := &DeliverViaWebhookExecutor{}
	env := newTestEnv(map[string]string{
		task.ParamTargetURL: srv.URL,
		task.ParamBody:      `{}`,
	})

	err := exec.Execute(context.Background(), env)
	assert.ErrorContains(t, err, "502")
}

func TestDeliverViaWebhookUnreachable(t *testing.T) {
	exec := &DeliverViaWebhookExecutor{}
	env := newTestEnv(map[string]string{
		task.ParamTargetURL: "http://127.0.0.1:1/webhook",
		task.ParamBody:      `{}`,
	})
	assert.Error(t, exec.Execute(context.Background(), env))
}
