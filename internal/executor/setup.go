package executor

import (
	"github.com/goswamishashwatpuri/nextract/internal/config"
)

// Deps carries the external dependencies the executors need.
type Deps struct {
	Browser     config.BrowserConfig
	AI          config.AIConfig
	Credentials CredentialResolver
}

// NewDefaultRegistry 构建注册了全部内置任务执行器的注册表。
// 与任务目录一一对应，缺一个都会在启动自检时暴露出来。
func NewDefaultRegistry(deps Deps) *Registry {
	r := NewRegistry()
	r.MustRegister(&LaunchBrowserExecutor{WSEndpoint: deps.Browser.WSEndpoint})
	r.MustRegister(&NavigateURLExecutor{})
	r.MustRegister(&PageToHTMLExecutor{})
	r.MustRegister(&ExtractTextFromElementExecutor{})
	r.MustRegister(&FillInputExecutor{})
	r.MustRegister(&ClickElementExecutor{})
	r.MustRegister(&WaitForElementExecutor{})
	r.MustRegister(&ScrollToElementExecutor{})
	r.MustRegister(&DeliverViaWebhookExecutor{})
	r.MustRegister(&ExtractDataWithAIExecutor{Config: deps.AI, Credentials: deps.Credentials})
	r.MustRegister(&ReadPropertyFromJSONExecutor{})
	r.MustRegister(&AddPropertyToJSONExecutor{})
	return r
}
