// Package stats submits usage metrics to InfluxDB.
package stats

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"runtime"
	"sync"
	"syscall"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"doorman/common/log"
)

// Counter names used around the codebase.
const (
	CounterCommands        = "commands"
	CounterJoinsTracked    = "joins_tracked"
	CounterJoinsAmbiguous  = "joins_ambiguous"
	CounterTicketsOpened   = "tickets_opened"
	CounterFeedbackEntries = "feedback_entries"
)

// Client is an InfluxDB client. A nil *Client is valid and drops all
// metrics, so callers never need to check whether stats are configured.
type Client struct {
	writer api.WriteAPI

	mu       sync.Mutex
	events   map[string]uint32
	counters map[string]uint32
}

// New creates a client and starts its submit loop.
func New(url, token, organization, bucket string) *Client {
	c := &Client{
		events:   make(map[string]uint32),
		counters: make(map[string]uint32),
	}

	c.writer = influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetBatchSize(20)).WriteAPI(organization, bucket)

	go c.submit()

	return c
}

// EventHandler counts gateway events by type. Registered on every shard.
func (c *Client) EventHandler(ev interface{}) {
	if c == nil {
		return
	}

	name := reflect.ValueOf(ev).Elem().Type().Name()

	c.mu.Lock()
	c.events[name]++
	c.mu.Unlock()
}

// Inc increments a named counter.
func (c *Client) Inc(name string) {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.counters[name]++
	c.mu.Unlock()
}

func (c *Client) submit() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	ticker := time.NewTicker(time.Minute)

	for {
		select {
		case <-ticker.C:
			go c.submitInner()
		case <-ctx.Done():
			ticker.Stop()
			c.writer.Flush()
			return
		}
	}
}

func (c *Client) submitInner() {
	log.Debug("Submitting metrics to InfluxDB")

	c.mu.Lock()
	var totalEvents uint32
	events := make(map[string]interface{}, len(c.events))
	for k, v := range c.events {
		totalEvents += v
		events[k] = v
		c.events[k] = 0
	}

	data := map[string]interface{}{
		"events": totalEvents,
	}
	for k, v := range c.counters {
		data[k] = v
		c.counters[k] = 0
	}
	c.mu.Unlock()

	c.writer.WritePoint(influxdb2.NewPoint("events", nil, events, time.Now()))

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	data["alloc"] = ms.Alloc
	data["sys"] = ms.Sys
	data["goroutines"] = runtime.NumGoroutine()

	if sysMem, err := mem.VirtualMemory(); err != nil {
		log.Errorf("getting system memory: %v", err)
	} else {
		data["total_sys"] = sysMem.Used
		data["total_sys_percent"] = sysMem.UsedPercent
	}

	if cpuData, err := cpu.Percent(time.Minute, true); err != nil {
		log.Errorf("getting cpu info: %v", err)
	} else {
		for i, d := range cpuData {
			data[fmt.Sprintf("cpu_%d", i)] = d
		}
	}

	c.writer.WritePoint(influxdb2.NewPoint("statistics", nil, data, time.Now()))
}
