package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goswamishashwatpuri/nextract/internal/config"
	"github.com/goswamishashwatpuri/nextract/internal/task"
)

func TestDefaultRegistryCoversCatalog(t *testing.T) {
	tasks := task.NewRegistry()
	executors := NewDefaultRegistry(Deps{})

	// 每个任务类型都必须有对应的执行器
	for _, typ := range tasks.Types() {
		assert.True(t, executors.Has(typ), "missing executor for %s", typ)
	}
	assert.Equal(t, tasks.Count(), executors.Count())
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&ReadPropertyFromJSONExecutor{}))
	assert.Error(t, r.Register(&ReadPropertyFromJSONExecutor{}))
}

func TestRegistryRejectsNil(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register(nil))
}

func TestRegistryGetOrError(t *testing.T) {
	r := NewRegistry()
	_, err := r.GetOrError(task.TypeClickElement)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)

	r.MustRegister(&ClickElementExecutor{})
	exec, err := r.GetOrError(task.TypeClickElement)
	require.NoError(t, err)
	assert.Equal(t, task.TypeClickElement, exec.Type())
}

func TestExecutorSeesInjectedConfig(t *testing.T) {
	executors := NewDefaultRegistry(Deps{
		Browser: config.BrowserConfig{WSEndpoint: "ws://browser.test:9222"},
	})
	launch := executors.Get(task.TypeLaunchBrowser).(*LaunchBrowserExecutor)
	assert.Equal(t, "ws://browser.test:9222", launch.WSEndpoint)
}
