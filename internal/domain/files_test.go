package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchVerdict(t *testing.T) {
	failing := FileCreateResult{Errors: []string{"Access denied for fileCreate field."}}
	ok := FileCreateResult{Files: 1}

	failed, msg := BatchVerdict([]FileCreateResult{failing, ok})
	assert.True(t, failed)
	assert.Equal(t, "Access denied for fileCreate field.", msg)

	// a single result is never inspected
	failed, _ = BatchVerdict([]FileCreateResult{failing})
	assert.False(t, failed)

	// later results are never inspected
	failed, _ = BatchVerdict([]FileCreateResult{ok, failing})
	assert.False(t, failed)

	failed, _ = BatchVerdict(nil)
	assert.False(t, failed)
}

func TestImageSyncResult_Uploaded(t *testing.T) {
	r := &ImageSyncResult{Results: []FileCreateResult{
		{Files: 1, Status: 200},
		{UserErrors: []string{"Image URL is invalid"}, Status: 200},
		{Raw: "<html>", Status: 502},
	}}
	assert.Equal(t, 1, r.Uploaded())
}
