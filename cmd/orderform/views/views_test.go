package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RenderOrderForm_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderOrderForm(&buf, OrderFormPage{Action: "/orders"}))

	html := buf.String()
	assert.Contains(t, html, `action="/orders"`)
	assert.Contains(t, html, `name="customer_name"`)
	assert.Contains(t, html, `name="amount"`)
	assert.NotContains(t, html, `class="success"`)
	assert.NotContains(t, html, `class="error"`)
}

func Test_RenderOrderForm_Success(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderOrderForm(&buf, OrderFormPage{
		Action:  "/orders",
		Success: "Order Created & Webhook Sent!",
	}))

	assert.Contains(t, buf.String(), `<div class="success">Order Created &amp; Webhook Sent!</div>`)
}

func Test_RenderOrderForm_ErrorsAndOldInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderOrderForm(&buf, OrderFormPage{
		Action: "/orders",
		Errors: map[string][]string{
			"customer_name": {"Customer name must contain only letters and spaces.", "second"},
			"amount":        {"The amount field must be at least 1."},
		},
		Old: map[string]string{
			"customer_name": "John 3rd",
			"amount":        "0.5",
		},
	}))

	html := buf.String()
	assert.Contains(t, html, `value="John 3rd"`)
	assert.Contains(t, html, `value="0.5"`)
	assert.Contains(t, html, `<div class="error">Customer name must contain only letters and spaces.</div>`)
	assert.Contains(t, html, `<div class="error">The amount field must be at least 1.</div>`)
	assert.NotContains(t, html, "second")
}

func Test_RenderOrderForm_EscapesOldInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderOrderForm(&buf, OrderFormPage{
		Action: "/orders",
		Old:    map[string]string{"customer_name": `"><script>alert(1)</script>`},
	}))

	html := buf.String()
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}
