package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	msgs    []Message
	receipt Receipt
	err     error
}

func (r *recordingSender) Send(_ context.Context, msg Message) (Receipt, error) {
	r.msgs = append(r.msgs, msg)
	return r.receipt, r.err
}

func TestHTMLBody(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "line breaks", in: "Title\n\nFirst paragraph.\nSecond.", want: "Title<br><br>First paragraph.<br>Second."},
		{name: "crlf", in: "a\r\nb", want: "a<br>b"},
		{name: "bracketed text kept", in: "Tip: type <destination> into the search box", want: "Tip: type &lt;destination&gt; into the search box"},
		{name: "script escaped", in: "<script>alert(1)</script>Hi", want: "&lt;script&gt;alert(1)&lt;/script&gt;Hi"},
		{name: "markup shown as text", in: "<b>Bold</b>", want: "&lt;b&gt;Bold&lt;/b&gt;"},
		{name: "apostrophe", in: "Valentine's Day", want: "Valentine&#39;s Day"},
		{name: "ampersand", in: "Bed & Breakfast", want: "Bed &amp; Breakfast"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTMLBody(tt.in))
		})
	}
}

func TestNotifySendsOneMessage(t *testing.T) {
	rs := &recordingSender{receipt: Receipt{Provider: "fake", StatusCode: 202}}
	n := New(rs, "from@email.com", "to@email.com")

	r, err := n.Notify(context.Background(), "Weekly Travel Blog: Ski Trips", "line one\nline two")
	require.NoError(t, err)
	assert.Equal(t, 202, r.StatusCode)

	require.Len(t, rs.msgs, 1)
	assert.Equal(t, Message{
		From:    "from@email.com",
		To:      "to@email.com",
		Subject: "Weekly Travel Blog: Ski Trips",
		HTML:    "line one<br>line two",
	}, rs.msgs[0])
}

func TestNotifyReturnsSenderError(t *testing.T) {
	rs := &recordingSender{err: errors.New("unauthorized")}
	n := New(rs, "a@b.c", "d@e.f")

	_, err := n.Notify(context.Background(), "s", "c")
	assert.EqualError(t, err, "unauthorized")
	assert.Len(t, rs.msgs, 1)
}

func TestNotifyWithoutSender(t *testing.T) {
	n := &Notifier{}
	_, err := n.Notify(context.Background(), "s", "c")
	assert.ErrorIs(t, err, ErrNoSender)
}

func TestNewSender(t *testing.T) {
	s, err := NewSender("", "k", "")
	require.NoError(t, err)
	assert.IsType(t, &SendGridSender{}, s)

	s, err = NewSender("Resend", "", "k")
	require.NoError(t, err)
	assert.IsType(t, &ResendSender{}, s)

	s, err = NewSender("log", "", "")
	require.NoError(t, err)
	assert.IsType(t, LogSender{}, s)

	_, err = NewSender("pigeon", "", "")
	assert.Error(t, err)
}

func TestLogSender(t *testing.T) {
	r, err := LogSender{}.Send(context.Background(), Message{Subject: "s"})
	require.NoError(t, err)
	assert.Equal(t, "log", r.Provider)
}

func TestResendRequest(t *testing.T) {
	req := resendRequest(Message{From: "a@b.c", To: "d@e.f", Subject: "s", HTML: "<p>x</p>"})
	assert.Equal(t, "a@b.c", req.From)
	assert.Equal(t, []string{"d@e.f"}, req.To)
	assert.Equal(t, "s", req.Subject)
	assert.Equal(t, "<p>x</p>", req.Html)
}

func TestSendGridSender(t *testing.T) {
	var (
		auth string
		body map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("X-Message-Id", "msg-123")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewSendGrid("SG.key").WithHost(srv.URL)
	r, err := s.Send(context.Background(), Message{From: "from@email.com", To: "to@email.com", Subject: "Hello", HTML: "a<br>b"})
	require.NoError(t, err)
	assert.Equal(t, Receipt{Provider: "sendgrid", StatusCode: http.StatusAccepted, MessageID: "msg-123"}, r)
	assert.Equal(t, "Bearer SG.key", auth)

	assert.Equal(t, "Hello", body["subject"])
	from := body["from"].(map[string]any)
	assert.Equal(t, "from@email.com", from["email"])
	content := body["content"].([]any)
	require.Len(t, content, 1)
	assert.Equal(t, "text/html", content[0].(map[string]any)["type"])
	assert.Equal(t, "a<br>b", content[0].(map[string]any)["value"])
}

func TestSendGridSenderRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"The provided authorization grant is invalid"}]}`))
	}))
	defer srv.Close()

	r, err := NewSendGrid("").WithHost(srv.URL).Send(context.Background(), Message{From: "a@b.c", To: "d@e.f", Subject: "s", HTML: "h"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, r.StatusCode)
	assert.Contains(t, err.Error(), "status=401")
}
