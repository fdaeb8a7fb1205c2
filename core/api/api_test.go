package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gridscope/cfg"
	"gridscope/core/pipeline"
	"gridscope/pkg/timeseries"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	p, err := pipeline.New(cfg.Default())
	if err != nil {
		t.Fatal(err)
	}
	h := handler{pipeline: p}
	srv := httptest.NewServer(h.router())
	t.Cleanup(srv.Close)
	return srv
}

// denseWire is the wire form of 10 identical channels plus a far outlier,
// with a small jitter channel so the outlier path has two non-empty bins.
func denseWire() WireMatrix {
	const samples = 20
	wm := WireMatrix{
		Times:    make([]float64, samples),
		Channels: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
		Values:   make([][]float64, samples),
	}
	for i := 0; i < samples; i++ {
		wm.Times[i] = float64(i) / 30
		row := make([]float64, len(wm.Channels))
		for j := range row {
			row[j] = 60.0
		}
		// Channel 10 jitters a little, channel 11 jumps far away.
		row[9] = 60.0 + 0.001*float64(i%2)
		row[10] = 70.0
		if i >= 15 {
			row[10] = 75.0
		}
		wm.Values[i] = row
	}
	return wm
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestClusterRoute(t *testing.T) {
	srv := testServer(t)

	req := map[string]interface{}{
		"kind": "freq",
		"input": map[string]interface{}{
			"matrix": denseWire(),
			"meta": timeseries.MetaTable{Rows: []timeseries.MetaRow{
				{ID: "1", Name: "Alpha"},
				{ID: "11.0", Name: "Far"},
			}},
		},
	}
	resp := postJSON(t, srv.URL+"/api/cluster", req)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatal("unexpected status:", resp.Status)
	}

	var reply struct {
		Clusters struct {
			K          int            `json:"k"`
			Assignment map[string]int `json:"assignment"`
		} `json:"clusters"`
		Meta []pipeline.AnnotatedRow `json:"meta"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatal(err)
	}
	if reply.Clusters.K != 2 {
		t.Fatal("expected 2 groups over the wire, got", reply.Clusters.K)
	}
	if len(reply.Meta) != 2 {
		t.Fatal("expected both metadata rows merged, got", len(reply.Meta))
	}
}

func TestClusterRouteBadKind(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/api/cluster", map[string]interface{}{
		"kind":  "current",
		"input": map[string]interface{}{"matrix": denseWire()},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatal("unknown kind should be a bad request, got", resp.Status)
	}
}

func TestClusterRouteDegenerate(t *testing.T) {
	srv := testServer(t)

	single := WireMatrix{
		Times:    []float64{0, 1},
		Channels: []int{1},
		Values:   [][]float64{{60}, {60}},
	}
	resp := postJSON(t, srv.URL+"/api/cluster", map[string]interface{}{
		"kind":  "freq",
		"input": map[string]interface{}{"matrix": single},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatal("degenerate matrix should be unprocessable, got", resp.Status)
	}
}

func TestOutliersRoute(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/api/outliers", map[string]interface{}{
		"kind":   "freq",
		"matrix": denseWire(),
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatal("unexpected status:", resp.Status)
	}

	var reply struct {
		Outliers struct {
			Outliers []struct {
				Channel int     `json:"channel"`
				MaxDiff float64 `json:"max_diff"`
			} `json:"outliers"`
		} `json:"outliers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatal(err)
	}
	if len(reply.Outliers.Outliers) != 1 || reply.Outliers.Outliers[0].Channel != 11 {
		t.Fatal("expected exactly the jumping channel, got", reply.Outliers.Outliers)
	}
}

func TestRunRoute(t *testing.T) {
	srv := testServer(t)

	// One healthy kind, one degenerate; outcomes must be isolated.
	single := WireMatrix{
		Times:    []float64{0, 1},
		Channels: []int{1},
		Values:   [][]float64{{1}, {1}},
	}
	resp := postJSON(t, srv.URL+"/api/run", map[string]interface{}{
		"inputs": map[string]interface{}{
			"freq": map[string]interface{}{"matrix": denseWire()},
			"vang": map[string]interface{}{"matrix": single},
		},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatal("unexpected status:", resp.Status)
	}

	var reply map[string]struct {
		Run   *pipeline.Run `json:"run"`
		Error string        `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatal(err)
	}
	if reply["freq"].Error != "" || reply["freq"].Run == nil {
		t.Fatal("healthy kind failed over the wire:", reply["freq"].Error)
	}
	if reply["vang"].Error == "" {
		t.Fatal("degenerate kind should surface its error")
	}
}

func TestHealthRoute(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatal("unexpected status:", resp.Status)
	}
}
