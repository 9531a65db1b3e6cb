package monitor

import (
	"net/http"
	"sync"

	"pairflow/internal/model"
	"pairflow/internal/service"
	"pairflow/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// 监控推流：客户端订阅某个运行任务（或全部任务），
// 每个决策周期收到一帧 RunUpdate。允许提前订阅还没启动的任务。

const allRuns = "*"

// 客户端请求的消息格式
type subscribeMessage struct {
	Action string `json:"action"` // subscribe | unsubscribe
	RunID  string `json:"run_id"` // 为空表示全部任务
}

type ClientConn struct {
	Conn *websocket.Conn
	Send chan []byte // 异步发送通道
}

type Handler struct {
	manager *service.RunManager
	mu      sync.RWMutex
	// 每个任务对应的订阅客户端集合，key 为 run_id 或 allRuns
	runSubscribers map[string]map[*ClientConn]struct{}
	// 每个连接订阅的任务
	clientRuns map[*ClientConn]map[string]struct{}
	upgrader   websocket.Upgrader
}

func NewHandler(manager *service.RunManager) *Handler {
	h := &Handler{
		manager:        manager,
		runSubscribers: make(map[string]map[*ClientConn]struct{}),
		clientRuns:     make(map[*ClientConn]map[string]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // 允许跨域
		},
	}
	// 运行协程每周期回调一次，fan-out到订阅的客户端
	manager.Watch(h.broadcast)
	return h
}

// ServeWS 接入一个监控客户端
func (h *Handler) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("monitor upgrade error", logger.Pair("err", err.Error()))
		return
	}
	client := &ClientConn{
		Conn: conn,
		Send: make(chan []byte, 100),
	}
	h.mu.Lock()
	h.clientRuns[client] = make(map[string]struct{})
	h.mu.Unlock()

	defer func() {
		// 先从订阅表摘掉，之后不会再有广播写入，关闭Send是安全的
		h.mu.Lock()
		if runs, ok := h.clientRuns[client]; ok {
			for id := range runs {
				delete(h.runSubscribers[id], client)
				if len(h.runSubscribers[id]) == 0 {
					delete(h.runSubscribers, id)
				}
			}
			delete(h.clientRuns, client)
		}
		h.mu.Unlock()
		close(client.Send)
		conn.Close()
	}()

	go client.writePump()
	client.readPump(h)
}

func (h *Handler) broadcast(u *model.RunUpdate) {
	data, err := json.Marshal(u)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.runSubscribers[u.RunID] {
		client.trySend(data)
	}
	for client := range h.runSubscribers[allRuns] {
		client.trySend(data)
	}
}

// 收到客户端订阅的处理
func (h *Handler) handleOnSubscribe(c *ClientConn, msg *subscribeMessage) {
	runID := msg.RunID
	if runID == "" {
		runID = allRuns
	}

	h.mu.Lock()
	if _, ok := h.runSubscribers[runID]; !ok {
		h.runSubscribers[runID] = make(map[*ClientConn]struct{})
	}
	h.runSubscribers[runID][c] = struct{}{}
	h.clientRuns[c][runID] = struct{}{}
	h.mu.Unlock()

	if runID == allRuns {
		return
	}
	// 订阅即补发最近一帧，不用等下个周期
	st, err := h.manager.RunStatus(runID)
	if err != nil || st.LastUpdate == nil {
		return
	}
	if data, err := json.Marshal(st.LastUpdate); err == nil {
		c.trySend(data)
	}
}

// 收到客户端取消订阅的处理
func (h *Handler) handleOnUnsubscribe(c *ClientConn, msg *subscribeMessage) {
	runID := msg.RunID
	if runID == "" {
		runID = allRuns
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.runSubscribers[runID]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.runSubscribers, runID)
		}
	}
	if runs, ok := h.clientRuns[c]; ok {
		delete(runs, runID)
	}
}

func (c *ClientConn) trySend(data []byte) {
	select {
	case c.Send <- data:
	default:
		// 慢客户端丢帧，不阻塞运行协程
	}
}

func (c *ClientConn) writePump() {
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debug("monitor write error", logger.Pair("err", err.Error()))
			break
		}
	}
}

// readPump 读取客户端消息，阻塞到连接断开
func (c *ClientConn) readPump(h *Handler) {
	defer logger.Debug("monitor client disconnected")
	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			return
		}

		var clientMsg subscribeMessage
		if err := json.Unmarshal(msg, &clientMsg); err != nil {
			logger.Debug("monitor invalid message", logger.Pair("raw", string(msg)))
			continue
		}

		switch clientMsg.Action {
		case "subscribe":
			h.handleOnSubscribe(c, &clientMsg)
		case "unsubscribe":
			h.handleOnUnsubscribe(c, &clientMsg)
		default:
			logger.Debug("monitor unsupported action", logger.Pair("action", clientMsg.Action))
		}
	}
}
