package pipeline

import (
	"gridscope/pkg/cluster"
	"gridscope/pkg/errs"
	"gridscope/pkg/timeseries"
)

// AnnotatedRow is one metadata row with its winning group id merged in.
type AnnotatedRow struct {
	Channel int     `json:"channel"`
	Name    string  `json:"name"`
	NomKV   float64 `json:"nom_kv"`
	Lat     float64 `json:"lat"`
	Long    float64 `json:"long"`
	Group   int     `json:"group"`
}

// Annotate joins the group assignment onto the metadata table by channel
// id. Bus ids are normalized to integers first, so numeric strings and
// integral floats on either side still match. Rows without an assignment
// (sensors with no recorded data) are dropped; zero overlap is surfaced as
// a join mismatch rather than an empty result.
func Annotate(meta *timeseries.MetaTable, res *cluster.Result) ([]AnnotatedRow, error) {
	rows := make([]AnnotatedRow, 0, len(meta.Rows))
	for _, r := range meta.Rows {
		id, err := timeseries.ChannelID(r.ID)
		if err != nil {
			// A non-numeric bus id can never match a channel.
			continue
		}
		group, ok := res.Assignment[id]
		if !ok {
			continue
		}
		rows = append(rows, AnnotatedRow{
			Channel: id,
			Name:    r.Name,
			NomKV:   r.NomKV,
			Lat:     r.Lat,
			Long:    r.Long,
			Group:   group,
		})
	}
	if len(meta.Rows) > 0 && len(rows) == 0 {
		return nil, errs.New(errs.KindJoinMismatch,
			"no metadata row matched any of the %d assigned channels", len(res.Assignment))
	}
	return rows, nil
}
