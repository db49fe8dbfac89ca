package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSearchURL(t *testing.T) {
	d := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)

	got := SearchURL(d, "S&P 500")
	assert.Equal(t,
		"https://www.google.com/search?q=S%26P+500&tbs=cdr:1,cd_min:03/04/2024,cd_max:03/04/2024&tbm=nws",
		got)

	// Empty query falls back to the default topic.
	assert.Equal(t, got, SearchURL(d, ""))
}
