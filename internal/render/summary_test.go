package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilgisen/newsnexus/internal/models"
)

func TestFormatSummary(t *testing.T) {
	tests := []struct {
		name    string
		summary *string
		want    string
	}{
		{"nil", nil, ""},
		{"blank", models.StringPtr(`  \n `), ""},
		{"plain text", models.StringPtr(" 금리가 올랐다. "), "금리가 올랐다."},
		{"escaped newlines", models.StringPtr(`첫 줄\n둘째 줄`), "첫 줄\n둘째 줄"},
		{"already bulleted", models.StringPtr(`- 하나\n- 둘`), "- 하나\n- 둘"},
		{"inline bullets", models.StringPtr("- 하나 - 둘 - 셋"), "- 하나\n- 둘\n- 셋"},
		{"single bullet", models.StringPtr("- 하나뿐"), "- 하나뿐"},
		{"hyphenated words", models.StringPtr("- 2-3% 상승"), "- 2-3% 상승"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSummary(tt.summary))
		})
	}
}

func TestSummaryText(t *testing.T) {
	assert.Equal(t, EmptySummary, SummaryText(nil))
	assert.Equal(t, "본문", SummaryText(models.StringPtr("본문")))
}

func TestSummaryHTML(t *testing.T) {
	html, err := SummaryHTML(models.StringPtr("- 하나 - 둘"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<ul>")
	assert.Contains(t, string(html), "<li>하나</li>")
	assert.Contains(t, string(html), "<li>둘</li>")
}

func TestSummaryHTMLIsSanitized(t *testing.T) {
	html, err := SummaryHTML(models.StringPtr(`[link](javascript:alert(1)) <b>굵게</b>`))
	require.NoError(t, err)
	assert.NotContains(t, string(html), "javascript:")
	assert.NotContains(t, string(html), "<script")
}
