package storefront

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func requestWith(lang, acceptLanguage string) *http.Request {
	url := "/api/web/items"
	if lang != "" {
		url += "?lang=" + lang
	}
	r := httptest.NewRequest(http.MethodGet, url, nil)
	if acceptLanguage != "" {
		r.Header.Set("Accept-Language", acceptLanguage)
	}
	return r
}

func TestNegotiateLocaleDefaultsToChinese(t *testing.T) {
	tag := negotiateLocale(requestWith("", ""))
	assert.False(t, isEnglish(tag))
}

func TestNegotiateLocaleQueryParamWins(t *testing.T) {
	tag := negotiateLocale(requestWith("en", "zh-CN"))
	assert.True(t, isEnglish(tag))

	tag = negotiateLocale(requestWith("zh", "en-US"))
	assert.False(t, isEnglish(tag))
}

func TestNegotiateLocaleAcceptLanguageHeader(t *testing.T) {
	tag := negotiateLocale(requestWith("", "en-GB,en;q=0.9"))
	assert.True(t, isEnglish(tag))

	tag = negotiateLocale(requestWith("", "zh-CN,zh;q=0.9,en;q=0.5"))
	assert.False(t, isEnglish(tag))
}

func TestNegotiateLocaleGarbageFallsBack(t *testing.T) {
	tag := negotiateLocale(requestWith("", "not-a-language;;;"))
	assert.False(t, isEnglish(tag))
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "在售", statusLabel("IN_STOCK", language.SimplifiedChinese))
	assert.Equal(t, "已售出", statusLabel("SOLD", language.SimplifiedChinese))
	assert.Equal(t, "Available", statusLabel("IN_STOCK", language.English))
	assert.Equal(t, "Sold", statusLabel("SOLD", language.English))
	assert.Equal(t, "Reserved", statusLabel("RESERVED", language.English))

	// Unknown statuses pass through untranslated.
	assert.Equal(t, "ARCHIVED", statusLabel("ARCHIVED", language.English))
}

func TestProjectItemPicksLanguage(t *testing.T) {
	en := "Standard Chair"
	zhProduct := "标准椅"
	enProduct := "Standard Chair"
	row := itemRow{
		NameZh:        "标准椅（橡木）",
		NameEn:        &en,
		Status:        "IN_STOCK",
		ProductNameZh: &zhProduct,
		ProductNameEn: &enProduct,
	}

	zh := projectItem(&row, language.SimplifiedChinese)
	assert.Equal(t, "标准椅（橡木）", zh.Name)
	assert.Equal(t, "在售", zh.StatusLabel)
	assert.Equal(t, "标准椅", *zh.ProductName)

	eng := projectItem(&row, language.English)
	assert.Equal(t, "Standard Chair", eng.Name)
	assert.Equal(t, "Available", eng.StatusLabel)
}

func TestProjectItemFallsBackToChineseName(t *testing.T) {
	row := itemRow{NameZh: "标准椅", Status: "SOLD"}

	eng := projectItem(&row, language.English)
	assert.Equal(t, "标准椅", eng.Name)
	assert.Equal(t, "Sold", eng.StatusLabel)
}
