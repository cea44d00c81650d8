package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryContainsAllTaskTypes(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 12, r.Count())

	expected := []Type{
		TypeLaunchBrowser,
		TypePageToHTML,
		TypeExtractTextFromElement,
		TypeFillInput,
		TypeClickElement,
		TypeWaitForElement,
		TypeDeliverViaWebhook,
		TypeExtractDataWithAI,
		TypeReadPropertyFromJSON,
		TypeAddPropertyToJSON,
		TypeNavigateURL,
		TypeScrollToElement,
	}
	for _, typ := range expected {
		assert.True(t, r.Has(typ), "missing %s", typ)
	}
}

func TestRegistryLookupUnknownType(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup("NO_SUCH_TYPE")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, Type("NO_SUCH_TYPE"), notFound.Type)
}

func TestTaskCreditsMatchCatalog(t *testing.T) {
	r := NewRegistry()

	costs := map[Type]int64{
		TypeLaunchBrowser:          5,
		TypePageToHTML:             2,
		TypeExtractTextFromElement: 2,
		TypeFillInput:              1,
		TypeClickElement:           1,
		TypeWaitForElement:         1,
		TypeDeliverViaWebhook:      1,
		TypeExtractDataWithAI:      4,
		TypeReadPropertyFromJSON:   1,
		TypeAddPropertyToJSON:      1,
		TypeNavigateURL:            2,
		TypeScrollToElement:        1,
	}
	for typ, want := range costs {
		def, err := r.Lookup(typ)
		require.NoError(t, err)
		assert.Equal(t, want, def.Credits, "credits for %s", typ)
	}
}

func TestOnlyLaunchBrowserIsEntryPoint(t *testing.T) {
	r := NewRegistry()
	for _, typ := range r.Types() {
		def, err := r.Lookup(typ)
		require.NoError(t, err)
		assert.Equal(t, typ == TypeLaunchBrowser, def.EntryPoint, "entry point flag for %s", typ)
	}
}

func TestWaitForElementVisibilityOptions(t *testing.T) {
	r := NewRegistry()
	def, err := r.Lookup(TypeWaitForElement)
	require.NoError(t, err)

	visibility, ok := def.Input(ParamVisibility)
	require.True(t, ok)
	assert.Equal(t, ParamSelect, visibility.Kind)
	assert.Equal(t, []string{VisibilityVisible, VisibilityHidden}, visibility.Options)
}

func TestBrowserTasksDeclareBrowserInput(t *testing.T) {
	r := NewRegistry()
	browserTasks := []Type{
		TypePageToHTML, TypeFillInput, TypeClickElement,
		TypeWaitForElement, TypeNavigateURL, TypeScrollToElement,
	}
	for _, typ := range browserTasks {
		def, err := r.Lookup(typ)
		require.NoError(t, err)
		assert.True(t, def.RequiresBrowser(), "%s should require a browser", typ)
	}

	jsonTask, _ := r.Lookup(TypeReadPropertyFromJSON)
	assert.False(t, jsonTask.RequiresBrowser())
}
