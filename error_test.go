package scrape_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/scrape"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := scrape.Errorf(scrape.EFETCH, "HTTP %d for %s", 503, "https://example.com")

	assert.Equal(t, scrape.EFETCH, scrape.ErrorCode(err))
	assert.Equal(t, "HTTP 503 for https://example.com", scrape.ErrorMessage(err))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for nil error", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, scrape.ErrorCode(nil))
	})

	t.Run("returns internal for non-application errors", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, scrape.EINTERNAL, scrape.ErrorCode(errors.New("boom")))
	})

	t.Run("unwraps wrapped application errors", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("fetching: %w", scrape.Errorf(scrape.ENONHTML, "not HTML"))
		assert.Equal(t, scrape.ENONHTML, scrape.ErrorCode(err))
		assert.Equal(t, "not HTML", scrape.ErrorMessage(err))
	})
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error", scrape.ErrorMessage(errors.New("boom")))
	assert.Empty(t, scrape.ErrorMessage(nil))
}
