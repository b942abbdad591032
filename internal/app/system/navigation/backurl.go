// Package navigation holds the sidebar descriptor and safe redirect helpers.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions restricts where a "return" parameter may send the browser.
type BackURLOptions struct {
	// AllowedPrefix, when set, must prefix the return URL ("/finance/payments").
	AllowedPrefix string

	// ExcludedSubpaths reject return URLs that point back at action pages.
	ExcludedSubpaths []string

	// Fallback is used when no acceptable return URL was supplied.
	Fallback string

	// PreserveQueryParam is copied from the request onto the fallback, e.g.
	// "category" so a document upload lands back on the filtered list.
	PreserveQueryParam string
}

// ResourceBackURL is the usual policy for a list page at base: stay under
// base and never return to a modal route.
func ResourceBackURL(base string) BackURLOptions {
	return BackURLOptions{
		AllowedPrefix:    base,
		ExcludedSubpaths: []string{"/edit", "/delete", "/new"},
		Fallback:         base,
	}
}

// SafeBackURL picks the redirect target after a form post. The "return"
// query or form value wins when it is a local path that passes opts;
// otherwise the fallback is used.
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}

	if ret != "" && allowed(ret, opts) {
		return ret
	}

	fallback := opts.Fallback
	if p := opts.PreserveQueryParam; p != "" {
		v := query.Get(r, p)
		if v == "" {
			v = strings.TrimSpace(r.FormValue(p))
		}
		if v != "" && v != "all" {
			sep := "?"
			if strings.Contains(fallback, "?") {
				sep = "&"
			}
			fallback += sep + p + "=" + v
		}
	}
	return fallback
}

func allowed(ret string, opts BackURLOptions) bool {
	if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
		return false
	}
	for _, ex := range opts.ExcludedSubpaths {
		if strings.Contains(ret, ex) {
			return false
		}
	}
	return true
}
