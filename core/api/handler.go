package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"gridscope/core/pipeline"
	"gridscope/pkg/errs"
	"gridscope/pkg/timeseries"
)

type handler struct {
	pipeline *pipeline.Pipeline
}

func (h *handler) router() *mux.Router {
	r := mux.NewRouter()
	routes := map[string]struct {
		method string
		fn     func(http.ResponseWriter, *http.Request)
	}{
		"/api/cluster":  {http.MethodPost, h.cluster},
		"/api/outliers": {http.MethodPost, h.outliers},
		"/api/run":      {http.MethodPost, h.run},
		"/api/health":   {http.MethodGet, h.health},
	}
	for path, route := range routes {
		r.HandleFunc(path, route.fn).Methods(route.method)
		log.Printf("route '%v' is up.", path)
	}
	return r
}

// tryUnpackRequestOptions will try to unmarshal the request body into
// <targetOpt>. If the task fails, then an automatic bad request response is
// sent to the requester and false is returned. Else, nothing is written to
// the requester and the return is true.
func (h *handler) tryUnpackRequestOptions(
	w http.ResponseWriter, r *http.Request, targetOpt interface{}) bool {
	body, _ := io.ReadAll(r.Body)
	if err := json.Unmarshal(body, targetOpt); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return false
	}
	return true
}

func (h *handler) reply(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("reply encode failed: %v", err)
	}
}

// replyErr maps the error taxonomy to http status codes: bad configuration
// is the caller's fault, degenerate data and join mismatches are
// unprocessable input, anything else is on us.
func (h *handler) replyErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.KindConfig:
		status = http.StatusBadRequest
	case errs.KindDegenerateData, errs.KindJoinMismatch:
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// Pass request to pipeline.Cluster (+ the metadata join when metadata is
// attached).
func (h *handler) cluster(w http.ResponseWriter, r *http.Request) {
	opts := struct {
		Kind  string    `json:"kind"`
		Input WireInput `json:"input"`
	}{}
	if !h.tryUnpackRequestOptions(w, r, &opts) {
		return
	}

	kind, err := timeseries.ParseKind(opts.Kind)
	if err != nil {
		h.replyErr(w, errs.New(errs.KindConfig, "%v", err))
		return
	}
	in, err := opts.Input.toInput()
	if err != nil {
		h.replyErr(w, errs.New(errs.KindConfig, "%v", err))
		return
	}

	res, err := h.pipeline.Cluster(in.Matrix, kind)
	if err != nil {
		h.replyErr(w, err)
		return
	}

	reply := struct {
		Kind     timeseries.Kind         `json:"kind"`
		Clusters interface{}             `json:"clusters"`
		Meta     []pipeline.AnnotatedRow `json:"meta,omitempty"`
	}{Kind: kind, Clusters: res}

	if in.Meta != nil {
		rows, err := pipeline.Annotate(in.Meta, res)
		if err != nil {
			h.replyErr(w, err)
			return
		}
		reply.Meta = rows
	}

	h.reply(w, reply)
}

// Pass request to pipeline.Outliers.
func (h *handler) outliers(w http.ResponseWriter, r *http.Request) {
	opts := struct {
		Kind   string     `json:"kind"`
		Matrix WireMatrix `json:"matrix"`
	}{}
	if !h.tryUnpackRequestOptions(w, r, &opts) {
		return
	}

	kind, err := timeseries.ParseKind(opts.Kind)
	if err != nil {
		h.replyErr(w, errs.New(errs.KindConfig, "%v", err))
		return
	}
	m, err := opts.Matrix.toMatrix()
	if err != nil {
		h.replyErr(w, errs.New(errs.KindConfig, "%v", err))
		return
	}

	rep, set, err := h.pipeline.Outliers(m, kind)
	if err != nil {
		h.replyErr(w, err)
		return
	}

	h.reply(w, struct {
		Kind        timeseries.Kind `json:"kind"`
		Derivatives interface{}     `json:"derivatives"`
		Outliers    interface{}     `json:"outliers"`
	}{kind, rep, set})
}

// Pass request to pipeline.ProcessAll: all provided kinds, concurrently,
// with per-kind error isolation.
func (h *handler) run(w http.ResponseWriter, r *http.Request) {
	opts := struct {
		Inputs map[string]WireInput `json:"inputs"`
	}{}
	if !h.tryUnpackRequestOptions(w, r, &opts) {
		return
	}

	inputs := make(map[timeseries.Kind]pipeline.Input, len(opts.Inputs))
	for rawKind, wi := range opts.Inputs {
		kind, err := timeseries.ParseKind(rawKind)
		if err != nil {
			h.replyErr(w, errs.New(errs.KindConfig, "%v", err))
			return
		}
		in, err := wi.toInput()
		if err != nil {
			h.replyErr(w, errs.New(errs.KindConfig, "%s: %v", rawKind, err))
			return
		}
		inputs[kind] = in
	}

	outcomes := h.pipeline.ProcessAll(inputs)

	type wireOutcome struct {
		Run   *pipeline.Run `json:"run,omitempty"`
		Error string        `json:"error,omitempty"`
	}
	reply := make(map[timeseries.Kind]wireOutcome, len(outcomes))
	for kind, o := range outcomes {
		wo := wireOutcome{Run: o.Run}
		if o.Err != nil {
			wo.Error = o.Err.Error()
		}
		reply[kind] = wo
	}

	h.reply(w, reply)
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	h.reply(w, map[string]string{"status": "ok"})
}
