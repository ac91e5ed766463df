package control

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frudas24/keyslice/internal/keyboard"
)

// TestProtocol_Type verifies decoding a type message.
func TestProtocol_Type(t *testing.T) {
	var msg Message
	require.NoError(t, json.Unmarshal([]byte(`{"t":"type","id":4,"text":"hola"}`), &msg))
	assert.Equal(t, Message{T: "type", ID: 4, Text: "hola"}, msg)
}

// TestProtocol_Caps verifies the enabled pointer distinguishes false from missing.
func TestProtocol_Caps(t *testing.T) {
	var msg Message
	require.NoError(t, json.Unmarshal([]byte(`{"t":"caps","enabled":false}`), &msg))
	require.NotNil(t, msg.Enabled)
	assert.False(t, *msg.Enabled)

	msg = Message{}
	require.NoError(t, json.Unmarshal([]byte(`{"t":"caps"}`), &msg))
	assert.Nil(t, msg.Enabled)
}

// TestProtocol_Layout verifies decoding a layout message.
func TestProtocol_Layout(t *testing.T) {
	var msg Message
	require.NoError(t, json.Unmarshal([]byte(`{"t":"layout","layout":"de","flags":256}`), &msg))
	assert.Equal(t, "de", msg.Layout)
	assert.Equal(t, uint32(256), msg.Flags)
}

// TestProtocol_Reply verifies held keys encode by name and empty lists stay arrays.
func TestProtocol_Reply(t *testing.T) {
	data, err := json.Marshal(Reply{T: ReplyOK, Held: []keyboard.SpecialKey{keyboard.KeyShift}, Layout: "04090409"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":"ok","held":["SHIFT"],"capsLock":false,"layout":"04090409"}`, string(data))

	data, err = json.Marshal(Reply{T: ReplyError, Error: "boom", Held: []keyboard.SpecialKey{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":"error","error":"boom","held":[],"capsLock":false,"layout":""}`, string(data))
}
