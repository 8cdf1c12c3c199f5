package storefront

import (
	"net/http"

	"golang.org/x/text/language"
)

var matcher = language.NewMatcher([]language.Tag{
	language.SimplifiedChinese, // default
	language.English,
})

// negotiateLocale picks the response language from the lang query
// parameter, falling back to Accept-Language, then Simplified Chinese.
func negotiateLocale(r *http.Request) language.Tag {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			tag, _, _ = matcher.Match(tag)
			return tag
		}
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return language.SimplifiedChinese
	}
	tag, _, _ := matcher.Match(tags...)
	return tag
}

var statusLabelsZh = map[string]string{
	"IN_STOCK":   "在售",
	"IN_TRANSIT": "在途",
	"RESERVED":   "已预订",
	"SOLD":       "已售出",
}

var statusLabelsEn = map[string]string{
	"IN_STOCK":   "Available",
	"IN_TRANSIT": "In Transit",
	"RESERVED":   "Reserved",
	"SOLD":       "Sold",
}

func statusLabel(status string, tag language.Tag) string {
	labels := statusLabelsZh
	if base, _ := tag.Base(); base.String() == "en" {
		labels = statusLabelsEn
	}
	if label, ok := labels[status]; ok {
		return label
	}
	return status
}
