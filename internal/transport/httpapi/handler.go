package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/xtding233/particle-odds/internal/render"
	"github.com/xtding233/particle-odds/internal/service"
)

const defaultRuns = 10000

type errResp struct {
	Err string `json:"err"`
}

type handler struct {
	svc *service.Service
	log *slog.Logger
}

// New returns the HTTP routes for the odds table.
func New(svc *service.Service, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	h := &handler{svc: svc, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /table", h.handleTable)
	mux.HandleFunc("GET /table.txt", h.handleTableText)
	mux.HandleFunc("GET /simulate", h.handleSimulate)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseSeed(r *http.Request) (*uint64, string) {
	s := r.URL.Query().Get("seed")
	if s == "" {
		return nil, ""
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, "invalid seed"
	}
	return &v, ""
}

// GET /table?hits=N
func (h *handler) handleTable(w http.ResponseWriter, r *http.Request) {
	trials, err := h.svc.ResolveTrials(r.URL.Query().Get("hits"))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	d, err := h.svc.Table(trials)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.NewTableView(d))
}

// GET /table.txt?hits=N
func (h *handler) handleTableText(w http.ResponseWriter, r *http.Request) {
	trials, err := h.svc.ResolveTrials(r.URL.Query().Get("hits"))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	d, err := h.svc.Table(trials)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := render.Table(w, h.svc.Labels(), d); err != nil {
		h.log.Warn("write text table", "err", err)
	}
}

// GET /simulate?hits=N&runs=M&seed=S
func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	trials, err := h.svc.ResolveTrials(r.URL.Query().Get("hits"))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	runs, ok, msg := parseInt(r, "runs")
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	if !ok {
		runs = defaultRuns
	}
	seed, msg := parseSeed(r)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	sim, err := h.svc.Simulate(trials, runs, seed)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.NewSimulationView(sim))
}

func (h *handler) writeErr(w http.ResponseWriter, err error) {
	if service.IsBadRequest(err) {
		writeJSON(w, http.StatusBadRequest, errResp{Err: err.Error()})
		return
	}
	h.log.Error("request failed", "err", err)
	writeJSON(w, http.StatusInternalServerError, errResp{Err: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
