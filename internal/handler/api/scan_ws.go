package api

import (
	"net/http"
	"time"

	models "BumpSlide/internal/domain/models"
	"BumpSlide/internal/usecase"
	xlogger "BumpSlide/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const wsWriteTimeout = 10 * time.Second

// ScanWSHandler streams scan progress over a websocket. The client sends one
// scan request, receives progress frames while the scan runs, then the final
// result frame.
type ScanWSHandler struct {
	logger   *xlogger.Logger
	scan     *usecase.ScanUseCase
	upgrader websocket.Upgrader
}

func NewScanWSHandler(logger *xlogger.Logger, scanUC *usecase.ScanUseCase) *ScanWSHandler {
	return &ScanWSHandler{
		logger: logger,
		scan:   scanUC,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *ScanWSHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/scan", h.Handle)
}

type wsFrame struct {
	Type    string      `json:"type"` // progress, result, error
	Message string      `json:"message,omitempty"`
	Percent int         `json:"percent,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func (h *ScanWSHandler) Handle(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("ws upgrade failed", xlogger.Error(err))
		return err
	}
	defer conn.Close()

	req := &models.ScanRequest{}
	if err := conn.ReadJSON(req); err != nil {
		h.writeFrame(conn, wsFrame{Type: "error", Message: "bad request: " + err.Error()})
		return nil
	}

	p, err := buildScanParams(req)
	if err != nil {
		h.writeFrame(conn, wsFrame{Type: "error", Message: err.Error()})
		return nil
	}

	progress := func(message string, percent int) {
		h.writeFrame(conn, wsFrame{Type: "progress", Message: message, Percent: percent})
	}

	res, err := h.scan.Run(c.Request().Context(), p, progress)
	if err != nil {
		h.logger.Error("ws scan error", xlogger.Error(err))
		h.writeFrame(conn, wsFrame{Type: "error", Message: err.Error()})
		return nil
	}

	h.writeFrame(conn, wsFrame{Type: "result", Data: res})
	return nil
}

func (h *ScanWSHandler) writeFrame(conn *websocket.Conn, f wsFrame) {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(f); err != nil && h.logger != nil {
		h.logger.Warn("ws write failed", xlogger.Error(err))
	}
}
