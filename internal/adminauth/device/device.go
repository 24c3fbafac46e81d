// Package device turns a User-Agent header into the short label shown in an
// admin's session list.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

const unknown = "Unknown device"

// Label returns "Browser on OS", or "Browser on Platform" for mobile
// agents. Crawlers are labelled "Bot".
func Label(userAgent string) string {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return unknown
	}
	ua := useragent.New(userAgent)
	if ua.Bot() {
		return "Bot"
	}

	browser, _ := ua.Browser()
	where := ua.OSInfo().Name
	if ua.Mobile() && ua.Platform() != "" {
		where = ua.Platform()
	}

	switch {
	case browser != "" && where != "":
		return browser + " on " + where
	case browser != "":
		return browser
	case where != "":
		return where
	default:
		return unknown
	}
}
