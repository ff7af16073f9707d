package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dom/whatnot-go/internal/domain"
	"github.com/dom/whatnot-go/internal/testutil"
	"github.com/dom/whatnot-go/internal/websocket"
	gorillaWS "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.Platform.OnQuery("GetLivestreamContext", map[string]any{
		"liveStream": testutil.NewLiveBuilder().WithID("12345").WithStatus("PLAYING").Build(),
	})

	resp, err := http.Get(ts.APIURL("/lives/12345"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var live domain.LiveStream
	testutil.AssertJSONResponse(t, resp, &live)
	assert.Equal(t, "12345", live.ID)
	assert.Equal(t, domain.LiveStatusLive, live.Status)
}

func TestLiveHandler_Watch(t *testing.T) {
	ts := testutil.NewTestServer(t)
	created := testutil.NewLiveBuilder().WithID("12345").WithStatus("CREATED")
	ts.Platform.OnQuery("GetLivestreamContext",
		map[string]any{"liveStream": created.Build()},
		map[string]any{"liveStream": created.Build()},
		map[string]any{"liveStream": testutil.NewLiveBuilder().WithID("12345").WithStatus("PLAYING").With("activeViewers", 300).Build()},
		map[string]any{"liveStream": testutil.NewLiveBuilder().WithID("12345").WithStatus("ENDED").Build()},
	)

	client := testutil.NewWSClient(t, ts.WebSocketURL("12345"))

	first := client.ExpectSnapshot(2 * time.Second)
	assert.Equal(t, "12345", first.ID)
	assert.Equal(t, domain.LiveStatusCreated, first.Status)

	playing := client.ExpectSnapshot(2 * time.Second)
	assert.Equal(t, domain.LiveStatusLive, playing.Status)
	assert.Equal(t, 300, playing.ActiveViewers)

	ended := client.ExpectSnapshot(2 * time.Second)
	assert.Equal(t, domain.LiveStatusEnded, ended.Status)

	client.ExpectMessage(websocket.MessageTypeEnded, 2*time.Second)
	client.ExpectClosed(2 * time.Second)

	assert.Equal(t, 4, ts.Platform.Count("GetLivestreamContext"))
}

func TestLiveHandler_WatchTitleChange(t *testing.T) {
	ts := testutil.NewTestServer(t)
	live := testutil.NewLiveBuilder().WithID("12345").WithStatus("PLAYING")
	ts.Platform.OnQuery("GetLivestreamContext",
		map[string]any{"liveStream": live.Build()},
		map[string]any{"liveStream": live.Build()},
		map[string]any{"liveStream": live.WithTitle("Restock night").Build()},
		map[string]any{"liveStream": live.WithStatus("ENDED").Build()},
	)

	client := testutil.NewWSClient(t, ts.WebSocketURL("12345"))

	first := client.ExpectSnapshot(2 * time.Second)
	assert.Equal(t, "Friday night breaks", first.Title)

	retitled := client.ExpectSnapshot(2 * time.Second)
	assert.Equal(t, "Restock night", retitled.Title)
	assert.Equal(t, domain.LiveStatusLive, retitled.Status)

	ended := client.ExpectSnapshot(2 * time.Second)
	assert.Equal(t, domain.LiveStatusEnded, ended.Status)
	assert.Equal(t, "Restock night", ended.Title)

	client.ExpectMessage(websocket.MessageTypeEnded, 2*time.Second)
	client.ExpectClosed(2 * time.Second)
}

func TestLiveHandler_WatchAlreadyEnded(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.Platform.OnQuery("GetLivestreamContext", map[string]any{
		"liveStream": testutil.NewLiveBuilder().WithStatus("ENDED").Build(),
	})

	client := testutil.NewWSClient(t, ts.WebSocketURL("12345"))
	client.ExpectSnapshot(2 * time.Second)
	client.ExpectMessage(websocket.MessageTypeEnded, 2*time.Second)
	client.ExpectClosed(2 * time.Second)
}

func TestLiveHandler_WatchUnknown(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.Platform.OnQuery("GetLivestreamContext", map[string]any{"liveStream": nil})

	_, resp, err := gorillaWS.DefaultDialer.Dial(ts.WebSocketURL("404"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
