// Package monitoring serves the state of running timers over HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/rs/xid"
	"github.com/sarchlab/frameclock/hardware"
	"github.com/sarchlab/frameclock/monitoring/web"
	"github.com/sarchlab/frameclock/timer"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// Clock is what the monitor reads from and controls on a timer.
type Clock interface {
	Name() string
	Coarse() uint32
	Precise() uint32
	GameTicks() uint32
	Paused() bool
	SetPaused(paused bool)
}

// Monitor turns a running timer into a server and allows external monitoring
// and pausing.
type Monitor struct {
	portNumber      int
	profileDuration time.Duration

	clocksLock sync.Mutex
	clocks     map[string]Clock

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		profileDuration: time.Second,
		clocks:          make(map[string]Clock),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithProfileDuration sets how long /api/profile samples the CPU.
func (m *Monitor) WithProfileDuration(d time.Duration) *Monitor {
	m.profileDuration = d
	return m
}

// RegisterTimer registers a timer to be monitored. A later timer with the
// same name replaces the earlier one.
func (m *Monitor) RegisterTimer(c Clock) {
	m.clocksLock.Lock()
	defer m.clocksLock.Unlock()

	m.clocks[c.Name()] = c
}

func (m *Monitor) findClock(name string) (Clock, bool) {
	m.clocksLock.Lock()
	defer m.clocksLock.Unlock()

	c, ok := m.clocks[name]

	return c, ok
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Router returns the HTTP routes of the monitor.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/timers", m.listTimers)
	r.HandleFunc("/api/now/{name}", m.now)
	r.HandleFunc("/api/pause/{name}", m.pause)
	r.HandleFunc("/api/continue/{name}", m.continueTimer)
	r.HandleFunc("/api/timer/{name}", m.timerDetails)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() (string, error) {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", fmt.Errorf("starting monitor: %w", err)
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring timers with %s\n", url)

	router := m.Router()

	go func() {
		err := http.Serve(listener, router)
		dieOnErr(err)
	}()

	return url, nil
}

// OpenBrowser shows a monitor page in the default browser.
func (m *Monitor) OpenBrowser(url string) error {
	return browser.OpenURL(url)
}

func (m *Monitor) clockOr404(w http.ResponseWriter, r *http.Request) Clock {
	name := mux.Vars(r)["name"]

	c, ok := m.findClock(name)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, err := fmt.Fprintf(w, "timer %s not found", name)
		dieOnErr(err)

		return nil
	}

	return c
}

func (m *Monitor) listTimers(w http.ResponseWriter, _ *http.Request) {
	m.clocksLock.Lock()
	names := make([]string, 0, len(m.clocks))
	for name := range m.clocks {
		names = append(names, name)
	}
	m.clocksLock.Unlock()

	sort.Strings(names)

	writeJSON(w, names)
}

type nowRsp struct {
	Name        string `json:"name"`
	Coarse      uint32 `json:"coarse"`
	Precise     uint32 `json:"precise"`
	PreciseText string `json:"precise_text"`
	GameTicks   uint32 `json:"game_ticks"`
	Paused      bool   `json:"paused"`
}

func (m *Monitor) now(w http.ResponseWriter, r *http.Request) {
	c := m.clockOr404(w, r)
	if c == nil {
		return
	}

	precise := c.Precise()

	writeJSON(w, nowRsp{
		Name:        c.Name(),
		Coarse:      c.Coarse(),
		Precise:     precise,
		PreciseText: timer.FormatPrecise(precise),
		GameTicks:   c.GameTicks(),
		Paused:      c.Paused(),
	})
}

func (m *Monitor) pause(w http.ResponseWriter, r *http.Request) {
	c := m.clockOr404(w, r)
	if c == nil {
		return
	}

	c.SetPaused(true)
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueTimer(w http.ResponseWriter, r *http.Request) {
	c := m.clockOr404(w, r)
	if c == nil {
		return
	}

	c.SetPaused(false)
	_, err := w.Write(nil)
	dieOnErr(err)
}

// rasterClock is implemented by clocks that know their display.
type rasterClock interface {
	HasPrecise() bool
	Geometry() hardware.Geometry
}

type timerSnapshot struct {
	Name        string
	Coarse      uint32
	Precise     uint32
	PreciseText string
	GameTicks   uint32
	Paused      bool

	HasPrecise  bool
	Standard    string
	FramePeriod string
}

func snapshotOf(c Clock) *timerSnapshot {
	precise := c.Precise()

	s := &timerSnapshot{
		Name:        c.Name(),
		Coarse:      c.Coarse(),
		Precise:     precise,
		PreciseText: timer.FormatPrecise(precise),
		GameTicks:   c.GameTicks(),
		Paused:      c.Paused(),
	}

	if rc, ok := c.(rasterClock); ok {
		g := rc.Geometry()
		s.HasPrecise = rc.HasPrecise()
		s.Standard = g.Name
		s.FramePeriod = g.FramePeriod().String()
	}

	return s
}

func (m *Monitor) timerDetails(w http.ResponseWriter, r *http.Request) {
	c := m.clockOr404(w, r)
	if c == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(snapshotOf(c))
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type progressRsp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	rsp := make([]progressRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		b.Lock()
		rsp = append(rsp, progressRsp{
			ID:        b.ID,
			Name:      b.Name,
			StartTime: b.StartTime,
			Total:     b.Total,
			Finished:  b.Finished,
		})
		b.Unlock()
	}

	writeJSON(w, rsp)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		w.WriteHeader(http.StatusConflict)
		_, err = fmt.Fprintf(w, "cannot profile: %v", err)
		dieOnErr(err)

		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
