package mailer

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokobajukeren/pos-api/internal/config"
)

// fakeSMTP accepts one session and returns the DATA payload on the channel.
func fakeSMTP(t *testing.T) (host string, port int, data <-chan string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		r := bufio.NewReader(conn)
		write := func(s string) { _, _ = conn.Write([]byte(s + "\r\n")) }
		write("220 localhost ESMTP")

		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				write("250 localhost")
			case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
				write("250 OK")
			case cmd == "DATA":
				write("354 go ahead")
				var body strings.Builder
				for {
					l, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if l == ".\r\n" {
						break
					}
					body.WriteString(l)
				}
				out <- body.String()
				write("250 queued")
			case cmd == "QUIT":
				write("221 bye")
				return
			default:
				write("502 unknown")
			}
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port, out
}

func TestSMTPMailer_Send(t *testing.T) {
	host, port, data := fakeSMTP(t)

	m := NewSMTPMailer(&config.MailConfig{
		Host:    host,
		Port:    port,
		From:    "Toko Baju Keren <noreply@toko.test>",
		Timeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, m.Send(ctx, "budi@example.com", "Selamat datang", "Halo Budi,\nterima kasih."))

	select {
	case msg := <-data:
		assert.Contains(t, msg, "To: <budi@example.com>\r\n")
		assert.Contains(t, msg, "Subject: Selamat datang\r\n")
		assert.Contains(t, msg, "Halo Budi,\r\nterima kasih.")
	case <-time.After(5 * time.Second):
		t.Fatal("no message received")
	}
}

func TestSMTPMailer_Errors(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	m := NewSMTPMailer(&config.MailConfig{Host: "127.0.0.1", Port: port, From: "noreply@toko.test", Timeout: time.Second})

	assert.Error(t, m.Send(context.Background(), "not an address", "s", "b"))
	assert.Error(t, m.Send(context.Background(), "budi@example.com", "s", "b"), "nothing listens on "+strconv.Itoa(port))
}
