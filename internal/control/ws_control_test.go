package control

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frudas24/keyslice/internal/keyboard"
	"github.com/frudas24/keyslice/internal/layouts"
	"github.com/frudas24/keyslice/internal/session"
	"github.com/frudas24/keyslice/internal/testutil"
)

// newTestServer returns an authenticated control server over a fake platform.
func newTestServer(t *testing.T) (*Server, *testutil.FakePlatform, *session.Session) {
	t.Helper()
	fake := testutil.NewFakePlatform()
	sess := session.New("pw")
	require.True(t, sess.Authenticate("pw"))
	return NewServer(sess, keyboard.New(fake), layouts.Defaults(), 0, nil), fake, sess
}

// TestHandleMessage_HoldTypeRelease verifies a chord built from hold/type/release messages.
func TestHandleMessage_HoldTypeRelease(t *testing.T) {
	server, fake, _ := newTestServer(t)

	reply := server.HandleMessage(Message{T: "hold", ID: 1, Key: "ctrl"})
	assert.Equal(t, ReplyOK, reply.T)
	assert.Equal(t, 1, reply.ID)
	assert.Equal(t, []keyboard.SpecialKey{keyboard.KeyControl}, reply.Held)

	reply = server.HandleMessage(Message{T: "type", Text: "C"})
	assert.Equal(t, ReplyOK, reply.T)

	reply = server.HandleMessage(Message{T: "release", Key: "ctrl"})
	assert.Equal(t, ReplyOK, reply.T)
	assert.Empty(t, reply.Held)
	assert.Equal(t, []string{"+CONTROL", "+C", "-C", "-CONTROL"}, fake.VKs())
}

// TestHandleMessage_InvariantError verifies invariant violations surface as error replies.
func TestHandleMessage_InvariantError(t *testing.T) {
	server, _, _ := newTestServer(t)

	reply := server.HandleMessage(Message{T: "release", Key: "alt"})
	assert.Equal(t, ReplyError, reply.T)
	assert.Contains(t, reply.Error, "not pressed")

	server.HandleMessage(Message{T: "hold", Key: "alt"})
	reply = server.HandleMessage(Message{T: "hold", Key: "alt"})
	assert.Equal(t, ReplyError, reply.T)
	assert.Contains(t, reply.Error, "already pressed")
	assert.Equal(t, []keyboard.SpecialKey{keyboard.KeyAlt}, reply.Held)
}

// TestHandleMessage_InputDisabled verifies actions are dropped while input is disabled.
func TestHandleMessage_InputDisabled(t *testing.T) {
	server, fake, sess := newTestServer(t)
	off := false

	reply := server.HandleMessage(Message{T: "inputEnabled", Enabled: &off})
	assert.Equal(t, ReplyOK, reply.T)
	assert.False(t, sess.InputEnabled())

	reply = server.HandleMessage(Message{T: "press", Key: "tab"})
	assert.Equal(t, ReplyOK, reply.T)
	assert.True(t, reply.Dropped)
	assert.Empty(t, fake.Events)

	reply = server.HandleMessage(Message{T: "press", Key: "nope"})
	assert.Equal(t, ReplyError, reply.T)
}

// TestHandleMessage_CapsAndLayout verifies caps and layout messages update the reply state.
func TestHandleMessage_CapsAndLayout(t *testing.T) {
	server, fake, _ := newTestServer(t)
	on := true

	reply := server.HandleMessage(Message{T: "caps", Enabled: &on})
	assert.True(t, reply.CapsLock)
	reply = server.HandleMessage(Message{T: "caps", Enabled: &on})
	assert.True(t, reply.CapsLock)
	assert.Equal(t, []string{"+CAPS", "-CAPS"}, fake.VKs())

	reply = server.HandleMessage(Message{T: "layout", Layout: "de"})
	assert.Equal(t, ReplyOK, reply.T)
	assert.Equal(t, "04070407", reply.Layout)

	reply = server.HandleMessage(Message{T: "layout", Layout: "fr"})
	assert.Equal(t, ReplyError, reply.T)
	assert.Contains(t, reply.Error, "layout not loaded")
}

// TestServeHTTP_Unauthorized verifies the websocket requires a logged-in session.
func TestServeHTTP_Unauthorized(t *testing.T) {
	sess := session.New("pw")
	server := NewServer(sess, keyboard.New(testutil.NewFakePlatform()), nil, 0, nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/control", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestServeHTTP_RoundTripAndRelease verifies replies over a live socket and key release on disconnect.
func TestServeHTTP_RoundTripAndRelease(t *testing.T) {
	server, fake, _ := newTestServer(t)
	ts := httptest.NewServer(server)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(Message{T: "hold", ID: 7, Key: "shift"}))
	var reply Reply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, ReplyOK, reply.T)
	assert.Equal(t, 7, reply.ID)
	assert.Equal(t, []keyboard.SpecialKey{keyboard.KeyShift}, reply.Held)

	_, _, err = websocket.DefaultDialer.Dial(url, nil)
	assert.Error(t, err, "second connection must be refused")

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		return server.connFree()
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"+SHIFT", "-SHIFT"}, fake.VKs())
}
