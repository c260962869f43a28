package controller

import (
	"bufio"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	helperAuth "ecclesia_backend/internals/helpers/auth"
	"ecclesia_backend/internals/helpers/realtime"
)

const heartbeatEvery = 25 * time.Second

type StreamController struct {
	Broker    *realtime.Broker
	Heartbeat time.Duration
}

func NewStreamController(b *realtime.Broker) *StreamController {
	return &StreamController{Broker: b, Heartbeat: heartbeatEvery}
}

func ParseTables(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// 🟢 GET /api/u/realtime/stream?tables=ministry_demands,kid_checkins
func (ctl *StreamController) Stream(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	sub := ctl.Broker.Subscribe(churchID, ParseTables(c.Query("tables")))
	beat := ctl.Heartbeat
	if beat <= 0 {
		beat = heartbeatEvery
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	// The stream outlives the handler; it ends when a write fails.
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer sub.Close()
		ticker := time.NewTicker(beat)
		defer ticker.Stop()

		fmt.Fprintf(w, ": connected %s\n\n", churchID)
		if err := w.Flush(); err != nil {
			return
		}
		for {
			select {
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				data, err := sonic.Marshal(ev)
				if err != nil {
					log.Printf("[ERROR] realtime encode: %v", err)
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Table, data)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}
