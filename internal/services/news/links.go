package news

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultQuery is used when the caller does not name a search topic.
const DefaultQuery = "S&P 500"

// SearchURL builds a Google News search link restricted to the given date.
func SearchURL(date time.Time, query string) string {
	if query == "" {
		query = DefaultQuery
	}
	day := date.Format("01/02/2006")
	return fmt.Sprintf(
		"https://www.google.com/search?q=%s&tbs=cdr:1,cd_min:%s,cd_max:%s&tbm=nws",
		url.QueryEscape(query), day, day,
	)
}
