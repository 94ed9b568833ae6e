package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLSet_Deduplicates(t *testing.T) {
	set := NewURLSet("https://a.com/sitemap.xml", "http://a.com/sitemap.xml")
	set.Add("https://a.com/sitemap.xml")
	set.Add("")
	set.AddAll([]string{"http://a.com/sitemap.xml", "http://a.com/news-sitemap.xml"})

	assert.Equal(t, 3, set.Len())
	assert.True(t, set.Contains("http://a.com/news-sitemap.xml"))
	assert.False(t, set.Contains(""))
	assert.Equal(t, []string{
		"http://a.com/news-sitemap.xml",
		"http://a.com/sitemap.xml",
		"https://a.com/sitemap.xml",
	}, set.Sorted())
}

func TestURLSet_NilSortedIsEmpty(t *testing.T) {
	var set *URLSet
	assert.Equal(t, 0, set.Len())
	assert.NotNil(t, set.Sorted())
	assert.Empty(t, set.Sorted())
}

func TestDomainResult_JSONFieldNames(t *testing.T) {
	result := NewSuccessResult("example.com", NewURLSet("http://example.com/sitemap.xml"), NewURLSet())

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "example.com", decoded["domain"])
	assert.Equal(t, "success", decoded["status"])
	assert.Equal(t, []any{"http://example.com/sitemap.xml"}, decoded["sitemaps"])
	assert.Equal(t, []any{}, decoded["nested_urls"])
	_, hasError := decoded["error"]
	assert.False(t, hasError)
}

func TestNewErrorResult(t *testing.T) {
	result := NewErrorResult("broken.test", ErrorProcessing)

	assert.False(t, result.IsSuccess())
	assert.Equal(t, ResultStatusError, result.Status)
	assert.Equal(t, "Processing error", result.Error)
	assert.NotNil(t, result.Sitemaps)
	assert.NotNil(t, result.NestedURLs)
}
