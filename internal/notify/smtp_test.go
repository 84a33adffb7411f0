package notify

import (
	"context"
	"encoding/base64"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type received struct {
	from string
	to   string
	data string
	auth string
}

// fakeSMTP accepts a single session and records what was submitted.
type fakeSMTP struct {
	ln       net.Listener
	user     string
	pass     string
	rejectTo string
	got      chan received
}

func startFakeSMTP(t *testing.T) *fakeSMTP {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	f := &fakeSMTP{ln: ln, got: make(chan received, 1)}
	t.Cleanup(func() { ln.Close() })
	go f.serve()
	return f
}

func (f *fakeSMTP) hostPort(t *testing.T) (string, int) {
	host, port, err := net.SplitHostPort(f.ln.Addr().String())
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	return host, p
}

func (f *fakeSMTP) serve() {
	conn, err := f.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()
	tp := textproto.NewConn(conn)

	var r received
	tp.PrintfLine("220 fake ESMTP ready")
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
		switch verb {
		case "EHLO", "HELO":
			tp.PrintfLine("250 fake")
		case "AUTH":
			fields := strings.Fields(line)
			raw, _ := base64.StdEncoding.DecodeString(fields[len(fields)-1])
			r.auth = string(raw)
			if string(raw) == "\x00"+f.user+"\x00"+f.pass {
				tp.PrintfLine("235 2.7.0 accepted")
			} else {
				tp.PrintfLine("535 5.7.8 bad credentials")
			}
		case "MAIL":
			r.from = strings.TrimSuffix(strings.TrimPrefix(line[len("MAIL FROM:"):], "<"), ">")
			tp.PrintfLine("250 ok")
		case "RCPT":
			to := strings.TrimSuffix(strings.TrimPrefix(line[len("RCPT TO:"):], "<"), ">")
			if f.rejectTo != "" && to == f.rejectTo {
				tp.PrintfLine("550 5.1.1 no such user")
				continue
			}
			r.to = to
			tp.PrintfLine("250 ok")
		case "DATA":
			tp.PrintfLine("354 go ahead")
			data, err := tp.ReadDotBytes()
			if err != nil {
				return
			}
			r.data = string(data)
			tp.PrintfLine("250 queued")
			f.got <- r
		case "QUIT":
			tp.PrintfLine("221 bye")
			return
		default:
			tp.PrintfLine("502 not implemented")
		}
	}
}

func testMessage() Message {
	return Message{
		To:      "tendai@example.com",
		Subject: "FBC MasterCard Application Confirmation",
		Text:    "Dear Tendai Moyo,",
		HTML:    "<p>Dear Tendai Moyo,</p>",
	}
}

func TestSMTPSender_Send(t *testing.T) {
	srv := startFakeSMTP(t)
	host, port := srv.hostPort(t)

	s := NewSMTPSender(SMTPConfig{Host: host, Port: port, From: "FBC Bank <reports@outrisk.co.zw>", Timeout: 5 * time.Second})
	receipt, err := s.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, "smtp", receipt.Provider)
	assert.True(t, strings.HasSuffix(receipt.MessageID, "@outrisk.co.zw"))

	select {
	case r := <-srv.got:
		assert.Equal(t, "reports@outrisk.co.zw", r.from)
		assert.Equal(t, "tendai@example.com", r.to)
		assert.Contains(t, r.data, "From: FBC Bank <reports@outrisk.co.zw>")
		assert.Contains(t, r.data, "To: tendai@example.com")
		assert.Contains(t, r.data, "multipart/alternative")
		assert.Contains(t, r.data, "Dear Tendai Moyo,")
		assert.Empty(t, r.auth)
	case <-time.After(5 * time.Second):
		t.Fatal("message not received")
	}
}

func TestSMTPSender_Auth(t *testing.T) {
	srv := startFakeSMTP(t)
	srv.user, srv.pass = "reports@outrisk.co.zw", "s3cret"
	host, port := srv.hostPort(t)

	s := NewSMTPSender(SMTPConfig{
		Host: host, Port: port, From: "reports@outrisk.co.zw",
		Username: "reports@outrisk.co.zw", Password: "s3cret",
	})
	_, err := s.Send(context.Background(), testMessage())
	require.NoError(t, err)

	r := <-srv.got
	assert.Equal(t, "\x00reports@outrisk.co.zw\x00s3cret", r.auth)
}

func TestSMTPSender_AuthRejected(t *testing.T) {
	srv := startFakeSMTP(t)
	srv.user, srv.pass = "reports@outrisk.co.zw", "s3cret"
	host, port := srv.hostPort(t)

	s := NewSMTPSender(SMTPConfig{
		Host: host, Port: port, From: "reports@outrisk.co.zw",
		Username: "reports@outrisk.co.zw", Password: "wrong",
	})
	_, err := s.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH")
}

func TestSMTPSender_RecipientRejected(t *testing.T) {
	srv := startFakeSMTP(t)
	srv.rejectTo = "tendai@example.com"
	host, port := srv.hostPort(t)

	s := NewSMTPSender(SMTPConfig{Host: host, Port: port, From: "reports@outrisk.co.zw"})
	_, err := s.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RCPT TO")
}

func TestSMTPSender_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().(*net.TCPAddr)
	ln.Close()

	s := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: addr.Port, From: "reports@outrisk.co.zw", Timeout: time.Second})
	_, err = s.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP connect")
}

func TestSMTPSender_NotConfigured(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{})
	_, err := s.Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSMTPSender_BadAddresses(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: 1, From: "not an address"})
	_, err := s.Send(context.Background(), testMessage())
	assert.Error(t, err)

	s = NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: 1, From: "reports@outrisk.co.zw"})
	msg := testMessage()
	msg.To = "nobody"
	_, err = s.Send(context.Background(), msg)
	assert.Error(t, err)
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
