package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/goauction/base/counter"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/delivery"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
)

const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// clients only send control frames
	maxMessageSize = 512

	sendBuffer = 64
)

// Message is pushed to subscribers for every committed event
type Message struct {
	Type    auction.EventType `json:"type"`
	Event   *auction.Event    `json:"event"`
	Auction *auction.Auction  `json:"auction"`
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	// nil receives every auction
	key *auction.Key
}

func (cl *client) wants(key auction.Key) bool {
	return cl.key == nil || *cl.key == key
}

// Hub fans auction events out to websocket subscribers. It is an auction.Listener.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	conns    *counter.Counter
	upgrader websocket.Upgrader
}

// NewHub accepts browser connections from origins only. Without origins any
// origin may subscribe, the stream carries nothing but public events.
func NewHub(origins ...string) *Hub {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.ToLower(strings.TrimSuffix(o, "/"))] = struct{}{}
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		conns:   counter.NewCounter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if len(allowed) == 0 || origin == "" {
					return true
				}
				_, ok := allowed[strings.ToLower(origin)]
				return ok
			},
		},
	}
}

// New registers the stream endpoint
func New(e *echo.Echo, hub *Hub) {
	e.GET("/auction/stream", hub.serve)
}

func (h *Hub) Name() string {
	return "websocket"
}

// Connections is the number of connected subscribers
func (h *Hub) Connections() int {
	return h.conns.Count()
}

func (h *Hub) Handle(c ctx.Ctx, e *auction.Event, a *auction.Auction) error {
	msg, err := json.Marshal(Message{Type: e.Type, Event: e, Auction: a})
	if err != nil {
		return err
	}

	key := auction.NewKey(e.Collection, e.TokenId)
	slow := []*client{}

	h.mu.RLock()
	for cl := range h.clients {
		if !cl.wants(key) {
			continue
		}
		select {
		case cl.send <- msg:
		default:
			slow = append(slow, cl)
		}
	}
	h.mu.RUnlock()

	for _, cl := range slow {
		c.WithField("remote", cl.conn.RemoteAddr().String()).Warn("dropping slow subscriber")
		h.unregister(cl)
	}
	return nil
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[cl] = struct{}{}
	h.conns.Inc()
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[cl]; !ok {
		return
	}
	delete(h.clients, cl)
	close(cl.send)
	h.conns.Dec()
}

// serve
//
//	@Summary		Stream auction events
//	@Description	Websocket of committed events. Without collection and tokenId every auction is streamed.
//	@Tags			auction
//	@Param			collection	query	string	false	"token contract"
//	@Param			tokenId		query	string	false	"token id"
//	@Success		101
//	@Failure		400
//	@Router			/auction/stream [get]
func (h *Hub) serve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	var key *auction.Key
	if collection := domain.Address(c.QueryParam("collection")); !collection.IsEmpty() {
		tokenId := domain.TokenId(c.QueryParam("tokenId"))
		if !collection.IsValid() || tokenId == "" {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
		}
		k := auction.NewKey(collection, tokenId)
		key = &k
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already replied
		ctx.WithField("err", err).Warn("upgrader.Upgrade failed")
		return nil
	}

	cl := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer), key: key}
	h.register(cl)

	go cl.writePump(ctx)
	go cl.readPump(ctx)
	return nil
}

// readPump only serves pongs and close frames
func (cl *client) readPump(c ctx.Ctx) {
	defer func() {
		cl.hub.unregister(cl)
		cl.conn.Close()
	}()

	cl.conn.SetReadLimit(maxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.WithFields(log.Fields{"err": err}).Warn("conn.ReadMessage failed")
			}
			return
		}
	}
}

func (cl *client) writePump(c ctx.Ctx) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.WithField("err", err).Warn("conn.WriteMessage failed")
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
