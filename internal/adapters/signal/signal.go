package signal

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/solacehq/solace/internal/app"
	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/core"
)

// Controller is the connection gateway: it accepts websocket upgrades,
// mints connection identities and forwards room events to the presence
// manager. It holds no room state of its own.
type Controller struct {
	Presence *app.Presence
	Clients  *app.ClientRegistry

	limiter    *MessageRateLimiter
	readLimit  int64
	sendBuffer int
}

func NewController(presence *app.Presence, clients *app.ClientRegistry, cfg *config.Config) *Controller {
	return &Controller{
		Presence:   presence,
		Clients:    clients,
		limiter:    NewMessageRateLimiter(cfg.MessageLimit, cfg.MessageInterval),
		readLimit:  cfg.ReadLimit,
		sendBuffer: cfg.SendBuffer,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades the request and runs the connection until the transport
// closes. Every upgrade gets a fresh ConnID; reconnects never reuse one.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.readLimit)

	id := core.ConnID(uuid.NewString())
	log.Info().Str("module", "signal").Str("conn", string(id)).Msg("new WS connection")

	conn := newWsConn(ws, ctl.sendBuffer)
	ctx, cancel := context.WithCancel(ctx)
	ctl.Clients.Bind(id, conn, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, id, conn)
}

const writeDeadline = 5 * time.Second
