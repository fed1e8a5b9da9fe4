package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/chfrealty/horsefarm/internal/model"
	"github.com/chfrealty/horsefarm/internal/scorer"
)

// Output formats for list commands.
const (
	formatJSON  = "json"
	formatCSV   = "csv"
	formatTable = "table"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode json")
	}
	return nil
}

// listingRow is the flat export shape of a listing.
type listingRow struct {
	ID      string  `csv:"id"`
	MLS     string  `csv:"mls_number"`
	Title   string  `csv:"title"`
	City    string  `csv:"city"`
	Price   int64   `csv:"price"`
	Acreage float64 `csv:"acreage"`
	Stalls  int     `csv:"stalls"`
	Indoor  bool    `csv:"indoor_arena"`
	Status  string  `csv:"status"`
	Type    string  `csv:"property_type"`
	Score   int     `csv:"score"`
}

func listingRows(props []model.Property, sc *scorer.Scorer) []listingRow {
	rows := make([]listingRow, len(props))
	for i, p := range props {
		rows[i] = listingRow{
			ID:      p.ID,
			MLS:     p.MLSNumber,
			Title:   p.Title,
			City:    p.City,
			Price:   p.Price,
			Acreage: p.Acreage,
			Stalls:  p.EquestrianAmenities.Stalls,
			Indoor:  p.EquestrianAmenities.HasIndoorArena,
			Status:  string(p.Status),
			Type:    string(p.PropertyType),
			Score:   sc.Score(p),
		}
	}
	return rows
}

// printListings writes props in the requested format.
func printListings(w io.Writer, format string, props []model.Property, sc *scorer.Scorer) error {
	switch format {
	case formatJSON, "":
		return printJSON(w, props)
	case formatCSV:
		rows := listingRows(props, sc)
		if len(rows) == 0 {
			return nil
		}
		b, err := csvutil.Marshal(rows)
		if err != nil {
			return eris.Wrap(err, "encode csv")
		}
		_, err = w.Write(b)
		return err
	case formatTable:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCITY\tPRICE\tACRES\tSTALLS\tSCORE\tTITLE")
		for _, r := range listingRows(props, sc) {
			fmt.Fprintf(tw, "%s\t%s\t$%s\t%s\t%d\t%d\t%s\n",
				r.ID, r.City, humanize.Comma(r.Price), humanize.Ftoa(r.Acreage), r.Stalls, r.Score, r.Title)
		}
		return tw.Flush()
	default:
		return eris.Errorf("unknown format %q (want json, csv or table)", format)
	}
}
