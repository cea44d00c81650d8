package task

// Well known parameter names shared by several tasks.
const (
	ParamWebPage       = "Web page"
	ParamSelector      = "Selector"
	ParamHTML          = "Html"
	ParamWebsiteURL    = "Website Url"
	ParamURL           = "URL"
	ParamValue         = "Value"
	ParamVisibility    = "Visibility"
	ParamTargetURL     = "Target URL"
	ParamBody          = "Body"
	ParamContent       = "Content"
	ParamCredentials   = "Credentials"
	ParamPrompt        = "Prompt"
	ParamJSON          = "JSON"
	ParamPropertyName  = "Property name"
	ParamPropertyValue = "Property value"
	ParamExtractedText = "Extracted text"
	ParamExtractedData = "Extracted data"
	ParamUpdatedJSON   = "Updated JSON"
)

// Visibility options for WAIT_FOR_ELEMENT.
const (
	VisibilityVisible = "visible"
	VisibilityHidden  = "hidden"
)

// catalog holds the closed set of task definitions, in declaration order.
var catalog = []Definition{
	{
		Type:       TypeLaunchBrowser,
		Label:      "Launch browser",
		EntryPoint: true,
		Credits:    5,
		Inputs: []Param{
			{Name: ParamWebsiteURL, Kind: ParamString, Required: true},
		},
		Outputs: []Param{
			{Name: ParamWebPage, Kind: ParamBrowserInstance},
		},
	},
	{
		Type:    TypePageToHTML,
		Label:   "Get html from page",
		Credits: 2,
		Inputs: []Param{
			{Name: ParamWebPage, Kind: ParamBrowserInstance, Required: true},
		},
		Outputs: []Param{
			{Name: ParamHTML, Kind: ParamString},
			{Name: ParamWebPage, Kind: ParamBrowserInstance},
		},
	},
	{
		Type:    TypeExtractTextFromElement,
		Label:   "Extract text from element",
		Credits: 2,
		Inputs: []Param{
			{Name: ParamHTML, Kind: ParamString, Required: true},
			{Name: ParamSelector, Kind: ParamString, Required: true},
		},
		Outputs: []Param{
			{Name: ParamExtractedText, Kind: ParamString},
		},
	},
	{
		Type:    TypeFillInput,
		Label:   "Fill input",
		Credits: 1,
		Inputs: []Param{
			{Name: ParamWebPage, Kind: ParamBrowserInstance, Required: true},
			{Name: ParamSelector, Kind: ParamString, Required: true},
			{Name: ParamValue, Kind: ParamString, Required: true},
		},
		Outputs: []Param{
			{Name: ParamWebPage, Kind: ParamBrowserInstance},
		},
	},
	{
		Type:    TypeClickElement,
		Label:   "Click element",
		Credits: 1,
		Inputs: []Param{
			{Name: ParamWebPage, Kind: ParamBrowserInstance, Required: true},
			{Name: ParamSelector, Kind: ParamString, Required: true},
		},
		Outputs: []Param{
			{Name: ParamWebPage, Kind: ParamBrowserInstance},
		},
	},
	{
		Type:    TypeWaitForElement,
		Label:   "Wait for element",
		Credits: 1,
		Inputs: []Param{
			{Name: ParamWebPage, Kind: ParamBrowserInstance, Required: true},
			{Name: ParamSelector, Kind: ParamString, Required: true},
			{Name: ParamVisibility, Kind: ParamSelect, Required: true,
				Options: []string{VisibilityVisible, VisibilityHidden}},
		},
		Outputs: []Param{
			{Name: ParamWebPage, Kind: ParamBrowserInstance},
		},
	},
	{
		Type:    TypeDeliverViaWebhook,
		Label:   "Deliver via webhook",
		Credits: 1,
		Inputs: []Param{
			{Name: ParamTargetURL, Kind: ParamString, Required: true},
			{Name: ParamBody, Kind: ParamString, Required: true},
		},
	},
	{
		Type:    TypeExtractDataWithAI,
		Label:   "Extract data with AI",
		Credits: 4,
		Inputs: []Param{
			{Name: ParamContent, Kind: ParamString, Required: true},
			{Name: ParamCredentials, Kind: ParamCredential, Required: true},
			{Name: ParamPrompt, Kind: ParamString, Required: true},
		},
		Outputs: []Param{
			{Name: ParamExtractedData, Kind: ParamString},
		},
	},
	{
		Type:    TypeReadPropertyFromJSON,
		Label:   "Read property from JSON",
		Credits: 1,
		Inputs: []Param{
			{Name: ParamJSON, Kind: ParamString, Required: true},
			{Name: ParamPropertyName, Kind: ParamString, Required: true},
		},
		Outputs: []Param{
			{Name: ParamPropertyValue, Kind: ParamString},
		},
	},
	{
		Type:    TypeAddPropertyToJSON,
		Label:   "Add property to JSON",
		Credits: 1,
		Inputs: []Param{
			{Name: ParamJSON, Kind: ParamString, Required: true},
			{Name: ParamPropertyName, Kind: ParamString, Required: true},
			{Name: ParamPropertyValue, Kind: ParamString, Required: true},
		},
		Outputs: []Param{
			{Name: ParamUpdatedJSON, Kind: ParamString},
		},
	},
	{
		Type:    TypeNavigateURL,
		Label:   "Navigate to URL",
		Credits: 2,
		Inputs: []Param{
			{Name: ParamWebPage, Kind: ParamBrowserInstance, Required: true},
			{Name: ParamURL, Kind: ParamString, Required: true},
		},
		Outputs: []Param{
			{Name: ParamWebPage, Kind: ParamBrowserInstance},
		},
	},
	{
		Type:    TypeScrollToElement,
		Label:   "Scroll to element",
		Credits: 1,
		Inputs: []Param{
			{Name: ParamWebPage, Kind: ParamBrowserInstance, Required: true},
			{Name: ParamSelector, Kind: ParamString, Required: true},
		},
		Outputs: []Param{
			{Name: ParamWebPage, Kind: ParamBrowserInstance},
		},
	},
}
