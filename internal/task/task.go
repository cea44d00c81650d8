// Package task defines the static catalogue of task types a workflow node can
// reference: their typed input/output contracts, fixed credit costs and
// capability requirements.
package task

// Type identifies a task type in a workflow definition.
type Type string

const (
	TypeLaunchBrowser          Type = "LAUNCH_BROWSER"
	TypePageToHTML             Type = "PAGE_TO_HTML"
	TypeExtractTextFromElement Type = "EXTRACT_TEXT_FROM_ELEMENT"
	TypeFillInput              Type = "FILL_INPUT"
	TypeClickElement           Type = "CLICK_ELEMENT"
	TypeWaitForElement         Type = "WAIT_FOR_ELEMENT"
	TypeDeliverViaWebhook      Type = "DELIVER_VIA_WEBHOOK"
	TypeExtractDataWithAI      Type = "EXTRACT_DATA_WITH_AI"
	TypeReadPropertyFromJSON   Type = "READ_PROPERTY_FROM_JSON"
	TypeAddPropertyToJSON      Type = "ADD_PROPERTY_TO_JSON"
	TypeNavigateURL            Type = "NAVIGATE_URL"
	TypeScrollToElement        Type = "SCROLL_TO_ELEMENT"
)

// ParamKind is the value kind of a task input or output.
type ParamKind string

const (
	ParamString          ParamKind = "STRING"
	ParamSelect          ParamKind = "SELECT"
	ParamCredential      ParamKind = "CREDENTIAL"
	ParamBrowserInstance ParamKind = "BROWSER_INSTANCE"
)

// Param declares a named, typed input or output of a task.
type Param struct {
	Name     string
	Kind     ParamKind
	Required bool
	// Options lists the legal values for ParamSelect inputs.
	Options []string
}

// Definition is the immutable contract of one task type.
type Definition struct {
	Type Type
	// Label is the human readable task name shown in phase records.
	Label string
	// EntryPoint marks tasks that may start a workflow (no browser required).
	EntryPoint bool
	// Credits is the fixed cost debited when a phase of this type completes.
	Credits int64
	Inputs  []Param
	Outputs []Param
}

// Input returns the input declaration with the given name.
func (d *Definition) Input(name string) (Param, bool) {
	for _, p := range d.Inputs {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Output returns the output declaration with the given name.
func (d *Definition) Output(name string) (Param, bool) {
	for _, p := range d.Outputs {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// RequiresBrowser reports whether any input of the task consumes a live
// browser page.
func (d *Definition) RequiresBrowser() bool {
	for _, p := range d.Inputs {
		if p.Kind == ParamBrowserInstance {
			return true
		}
	}
	return false
}
