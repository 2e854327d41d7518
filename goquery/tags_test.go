package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/scrape/goquery"
	"github.com/stretchr/testify/assert"
)

func TestTags(t *testing.T) {
	t.Parallel()

	t.Run("collects tags in document order", func(t *testing.T) {
		t.Parallel()
		html := `<ul>
			<li class="tag">Finance</li>
			<li class="category-item"><a href="/c">Markets</a></li>
			<span class="topic">  Earnings  Season </span>
		</ul>`
		assert.Equal(t, []string{"Finance", "Markets", "Earnings Season"}, goquery.Tags(mustParse(t, html)))
	})

	t.Run("keeps duplicates", func(t *testing.T) {
		t.Parallel()
		html := `<a class="tag">AI</a><a class="tag">AI</a>`
		assert.Equal(t, []string{"AI", "AI"}, goquery.Tags(mustParse(t, html)))
	})

	t.Run("drops empty and long tags", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("x", 31)
		html := `<a class="tag"> </a><a class="tag">` + long + `</a><a class="tag">` + strings.Repeat("y", 30) + `</a>`
		assert.Equal(t, []string{strings.Repeat("y", 30)}, goquery.Tags(mustParse(t, html)))
	})

	t.Run("counts length in characters", func(t *testing.T) {
		t.Parallel()
		tag := strings.Repeat("é", 30)
		assert.Equal(t, []string{tag}, goquery.Tags(mustParse(t, `<span class="tag">`+tag+`</span>`)))
	})

	t.Run("returns empty slice when none match", func(t *testing.T) {
		t.Parallel()
		tags := goquery.Tags(mustParse(t, `<div class="tag">Not a tag element</div>`))
		assert.NotNil(t, tags)
		assert.Empty(t, tags)
	})
}
