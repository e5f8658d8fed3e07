package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mhuot/go-opennms/pkg/client"
	"github.com/mhuot/go-opennms/pkg/filter"
)

const (
	clock24Layout = "2006-01-02 15:04:05 MST"
	clock12Layout = "2006-01-02 03:04:05 PM MST"
)

// describeFilter prints the filter in readable form, rendering dates in UTC on the
// clock the filter asks for.
func describeFilter(w io.Writer, f *filter.Filter) {
	layout := clock24Layout
	if f.ClockFace {
		layout = clock12Layout
	}
	var dates []string
	_ = filter.Walk(f.Clauses, func(r filter.Restriction, _ int) error {
		if t, ok := r.Value.(filter.Time); ok {
			dates = append(dates, fmt.Sprintf("%s = %s", r.Property, time.Time(t).UTC().Format(layout)))
		}
		return nil
	})

	fmt.Fprintf(w, "filter: %s\n", f)
	for _, d := range dates {
		fmt.Fprintf(w, "  %s\n", d)
	}
}

func printParameters(w io.Writer, version filter.APIVersion, params url.Values, compileErr error, asJSON bool) error {
	if compileErr != nil {
		_, err := fmt.Fprintf(w, "%s: error: %v\n", version, compileErr)
		return err
	}
	if asJSON {
		// json.Marshal sorts map keys, so the output is stable.
		doc := make(map[string]any, len(params))
		for k, v := range params {
			if len(v) == 1 {
				doc[k] = v[0]
			} else {
				doc[k] = v
			}
		}
		data, err := json.Marshal(map[string]any{version.String(): doc})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", version, params.Encode())
	return err
}

func printResponse(w io.Writer, resp *client.Response, pretty bool) error {
	if resp.Empty() {
		_, err := fmt.Fprintln(w, "no results")
		return err
	}
	body := resp.Body
	if pretty && strings.Contains(resp.ContentType, "json") {
		var buf bytes.Buffer
		if err := json.Indent(&buf, resp.Body, "", "  "); err == nil {
			body = buf.Bytes()
		}
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	if !bytes.HasSuffix(body, []byte("\n")) {
		_, err := fmt.Fprintln(w)
		return err
	}
	return nil
}

func printProperties(w io.Writer, props []filter.SearchProperty) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tORDER BY")
	for _, p := range props {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", p.ID, p.DisplayName(), p.TypeDescription(), p.OrderBy)
	}
	return tw.Flush()
}
