package timeseries

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MetaRow is one sensor's static description, supplied by the external
// import collaborator. Bus ids arrive in whatever representation the source
// file used (ints, numeric strings, sometimes "1234.0"), so the id is kept
// raw here and normalized with ChannelID when joining.
type MetaRow struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	NomKV float64 `json:"nom_kv" yaml:"nom_kv"`
	Lat   float64 `json:"lat" yaml:"lat"`
	Long  float64 `json:"long" yaml:"long"`
}

// MetaTable is the sensor metadata, one row per bus.
type MetaTable struct {
	Rows []MetaRow `json:"rows" yaml:"rows"`
}

// ChannelID normalizes a raw bus id to the integer channel id used by
// measurement matrices. Accepts plain integers and integral floats.
func ChannelID(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bus id %q is not numeric", raw)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("bus id %q is not an integer", raw)
	}
	return int(f), nil
}
