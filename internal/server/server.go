package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/sirupsen/logrus"

	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/metrics"
)

// Routes served by Server.
const (
	URIPath    = "/path"
	URIStep    = "/step"
	URIGrid    = "/grid"
	URIHealth  = "/healthz"
	URIMetrics = "/metrics"
)

// Server exposes a PathFinder over HTTP.
type Server struct {
	router   *way.Router
	finder   *gridpath.PathFinder
	metrics  *metrics.Metrics
	log      logrus.FieldLogger
	upgrader websocket.Upgrader
}

// New returns a Server with its routes registered.
func New(finder *gridpath.PathFinder, m *metrics.Metrics, logger logrus.FieldLogger) *Server {
	s := &Server{
		finder:  finder,
		metrics: m,
		log:     logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URIPath, s.handlePath)
	s.router.HandleFunc("GET", URIStep, s.handleStep)
	s.router.HandleFunc("GET", URIGrid, s.handleGrid)
	s.router.HandleFunc("GET", URIHealth, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Handle("GET", URIMetrics, s.metrics.Handler())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := &statusWriter{ResponseWriter: w}
	s.router.ServeHTTP(sw, r)
	s.log.WithFields(logrus.Fields{
		"method":   r.Method,
		"path":     r.URL.Path,
		"status":   sw.status,
		"bytes":    sw.bytes,
		"duration": time.Since(start),
	}).Info("request")
}

type pathResponse struct {
	Found    bool     `json:"found"`
	Path     [][2]int `json:"path"`
	Cost     int      `json:"cost"`
	Expanded int      `json:"expanded"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type gridResponse struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	b := s.finder.Bounds()
	writeJSON(w, http.StatusOK, gridResponse{Rows: b.Rows, Cols: b.Cols})
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseEndpoints(r)
	if err != nil {
		s.metrics.Observe(metrics.OutcomeInvalid, 0, 0)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	began := time.Now()
	res, err := s.finder.FindPath(r.Context(), from, to, gridpath.WithLogger(s.log))
	elapsed := time.Since(began)
	if err != nil {
		status, outcome := classify(err)
		s.metrics.Observe(outcome, res.ExpandedNodes, elapsed)
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	outcome := metrics.OutcomeFound
	if !res.Found {
		outcome = metrics.OutcomeNoPath
	}
	s.metrics.Observe(outcome, res.ExpandedNodes, elapsed)
	writeJSON(w, http.StatusOK, pathResponse{
		Found:    res.Found,
		Path:     toPairs(res.Path),
		Cost:     res.Cost,
		Expanded: res.ExpandedNodes,
	})
}

type stepMessage struct {
	Step    int      `json:"step"`
	Current [2]int   `json:"current"`
	Open    [][2]int `json:"open,omitempty"`
	Closed  [][2]int `json:"closed,omitempty"`
	Done    bool     `json:"done"`
	Found   bool     `json:"found"`
	Path    [][2]int `json:"path,omitempty"`
}

// handleStep streams one snapshot per frontier extraction until the search is done.
func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseEndpoints(r)
	if err != nil {
		s.metrics.Observe(metrics.OutcomeInvalid, 0, 0)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	stepper, err := s.finder.NewStepper(r.Context(), from, to)
	if err != nil {
		status, outcome := classify(err)
		s.metrics.Observe(outcome, 0, 0)
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	defer stepper.Close()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	began := time.Now()
	for {
		snap, err := stepper.Step()
		if err != nil {
			_, outcome := classify(err)
			s.metrics.Observe(outcome, stepper.Result().ExpandedNodes, time.Since(began))
			msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, closeReason(err.Error()))
			if werr := conn.WriteMessage(websocket.CloseMessage, msg); werr != nil {
				s.log.WithError(werr).Debug("step close frame not sent")
			}
			return
		}
		if err := conn.WriteJSON(toStepMessage(snap)); err != nil {
			s.log.WithError(err).Debug("step stream closed")
			return
		}
		if snap.Done {
			outcome := metrics.OutcomeFound
			if !snap.Found {
				outcome = metrics.OutcomeNoPath
			}
			s.metrics.Observe(outcome, snap.StepIndex, time.Since(began))
			break
		}
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
}

// maxCloseReason is the room left for a reason in a 125-byte close frame payload.
const maxCloseReason = 123

// closeReason cuts reason to fit a close frame without splitting a rune.
func closeReason(reason string) string {
	if len(reason) <= maxCloseReason {
		return reason
	}
	cut := maxCloseReason
	for cut > 0 && !utf8.RuneStart(reason[cut]) {
		cut--
	}
	return reason[:cut]
}

func toStepMessage(snap gridpath.StepSnapshot) stepMessage {
	return stepMessage{
		Step:    snap.StepIndex,
		Current: [2]int{snap.Current.Row, snap.Current.Col},
		Open:    setToList(snap.Open),
		Closed:  setToList(snap.Closed),
		Done:    snap.Done,
		Found:   snap.Found,
		Path:    toPairs(snap.Path),
	}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, gridpath.ErrInvalidCoordinate):
		return http.StatusBadRequest, metrics.OutcomeInvalid
	case errors.Is(err, gridpath.ErrExpansionLimit):
		return http.StatusUnprocessableEntity, metrics.OutcomeLimit
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, metrics.OutcomeCanceled
	default:
		return http.StatusInternalServerError, metrics.OutcomeError
	}
}

func parseEndpoints(r *http.Request) (gridpath.Coord, gridpath.Coord, error) {
	q := r.URL.Query()
	from, err := parseCoord(q.Get("from"))
	if err != nil {
		return gridpath.Coord{}, gridpath.Coord{}, fmt.Errorf("from: %w", err)
	}
	to, err := parseCoord(q.Get("to"))
	if err != nil {
		return gridpath.Coord{}, gridpath.Coord{}, fmt.Errorf("to: %w", err)
	}
	return from, to, nil
}

// parseCoord reads "row,col".
func parseCoord(v string) (gridpath.Coord, error) {
	rowStr, colStr, ok := strings.Cut(v, ",")
	if !ok {
		return gridpath.Coord{}, fmt.Errorf("want row,col, got %q", v)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return gridpath.Coord{}, fmt.Errorf("bad row %q", rowStr)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return gridpath.Coord{}, fmt.Errorf("bad col %q", colStr)
	}
	return gridpath.Coord{Row: row, Col: col}, nil
}

func toPairs(path []gridpath.Coord) [][2]int {
	if path == nil {
		return nil
	}
	out := make([][2]int, 0, len(path))
	for _, c := range path {
		out = append(out, [2]int{c.Row, c.Col})
	}
	return out
}

// setToList flattens a coordinate set in row-major order.
func setToList(m map[gridpath.Coord]bool) [][2]int {
	res := make([][2]int, 0, len(m))
	for p, ok := range m {
		if ok {
			res = append(res, [2]int{p.Row, p.Col})
		}
	}
	slices.SortFunc(res, func(a, b [2]int) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})
	return res
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Hijack lets websocket upgrades pass through the logging wrapper.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.status = http.StatusSwitchingProtocols
	return h.Hijack()
}
