package email

import (
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func newTestClient(s sender) *Client {
	logger := zerolog.Nop()
	return &Client{emails: s, from: "Invoices <billing@example.com>", logger: &logger}
}

func TestRender_PreviewData(t *testing.T) {
	for name, data := range PreviewData {
		html, err := Render(name, data)
		require.NoError(t, err, name)
		assert.NotEmpty(t, html, name)
	}
}

func TestRender_EscapesInput(t *testing.T) {
	html, err := Render(TemplateInvoiceSaved, InvoiceSavedData{CustomerName: "<script>x</script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)
	assert.Error(t, err)
}

func TestSendInvoiceSavedEmail(t *testing.T) {
	s := &fakeSender{}
	c := newTestClient(s)

	data := PreviewData[TemplateInvoiceSaved].(InvoiceSavedData)
	require.NoError(t, c.SendInvoiceSavedEmail("lee@robinson.com", data))

	require.Len(t, s.sent, 1)
	req := s.sent[0]
	assert.Equal(t, "Invoices <billing@example.com>", req.From)
	assert.Equal(t, []string{"lee@robinson.com"}, req.To)
	assert.Equal(t, "Invoice created", req.Subject)
	assert.Contains(t, req.Html, "$157.95")
	assert.Contains(t, req.Html, data.InvoiceID)
}

func TestSendEmail_ProviderError(t *testing.T) {
	c := newTestClient(&fakeSender{err: errors.New("rate limited")})

	err := c.SendEmail("a@b.c", "s", TemplateInvoiceSaved, InvoiceSavedData{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
