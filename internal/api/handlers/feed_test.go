package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Jarecamang/ParkingPassport/internal/testutil"
	"github.com/Jarecamang/ParkingPassport/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedHandler_RequiresSession(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, resp, err := ws.DefaultDialer.Dial(ts.FeedURL(), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFeedHandler_PushesLookupEntries(t *testing.T) {
	ts := testutil.NewTestServer(t)
	cookie := ts.Login(t, "admin")

	header := http.Header{}
	header.Set("Cookie", cookie.String())
	conn, _, err := ws.DefaultDialer.Dial(ts.FeedURL(), header)
	require.NoError(t, err)
	defer conn.Close()

	// Registration is asynchronous; wait until the hub sees the subscriber
	// before firing the lookup.
	require.Eventually(t, func() bool {
		return ts.Hub.ClientCount() == 1
	}, 5*time.Second, 10*time.Millisecond, "feed subscriber never registered")

	testutil.NewVehicleBuilder().WithPlate("ABC123").WithApartment("9").Build(t, ts.DB.DB)

	resp, err := http.Get(ts.APIURL("/vehicles/plate/ABC123"))
	require.NoError(t, err)
	resp.Body.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg websocket.Message
	require.NoError(t, json.Unmarshal(payload, &msg))
	assert.Equal(t, websocket.MessageTypeSearch, msg.Type)
	require.NotNil(t, msg.Entry)
	assert.Equal(t, "ABC123", msg.Entry.PlateNumber)
	assert.True(t, msg.Entry.Allowed)
}
