// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"net/http"
	"net/url"
	"strings"
)

// ConstructKey returns the default cache key for a navigation target:
// its path, followed by the query string and the fragment, if present.
//
// Example: "/users/2?tab=posts#latest".
func ConstructKey(target *url.URL) string {
	if target == nil {
		return ""
	}

	path := target.EscapedPath()
	if path == "" {
		path = "/"
	}

	var sb strings.Builder
	sb.Grow(len(path) + len(target.RawQuery) + len(target.Fragment) + 2)
	sb.WriteString(path)
	if target.RawQuery != "" {
		sb.WriteByte('?')
		sb.WriteString(target.RawQuery)
	}
	if target.Fragment != "" {
		sb.WriteByte('#')
		sb.WriteString(target.EscapedFragment())
	}

	return sb.String()
}

// RequestKey returns the default cache key for a request's target.
func RequestKey(r *http.Request) string {
	if r == nil {
		return ""
	}

	return ConstructKey(r.URL)
}
