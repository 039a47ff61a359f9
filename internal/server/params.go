package server

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/pipeline"
)

// maxStreamDelay bounds delay_ms on the websocket stream.
const maxStreamDelay = 5 * time.Second

// options builds pipeline options from the query string on top of the
// server defaults.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := s.defaults
	opts.Formats = nil

	ints := []struct {
		key string
		dst *int
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"min", &opts.MinBlock},
		{"max", &opts.MaxBlock},
		{"steps", &opts.MaxSteps},
		{"cell", &opts.CellSize},
		{"stride", &opts.FrameStride},
		{"frames", &opts.MaxFrames},
	}
	for _, p := range ints {
		if err := queryInt(q, p.key, p.dst); err != nil {
			return opts, err
		}
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "seed: %q is not an integer", v)
		}
		opts.Seed = seed
	}
	if v := q.Get("strategy"); v != "" {
		opts.Strategy = v
	}
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	opts.GridDots = queryBool(q, "dots")
	opts.Refresh = queryBool(q, "refresh")

	opts.SetGenerateDefaults()
	if s.maxCells > 0 && errors.ExceedsCells(opts.Width, opts.Height, s.maxCells) {
		return opts, errors.New(errors.ErrCodeInvalidInput,
			"grid %dx%d exceeds %d cells", opts.Width, opts.Height, s.maxCells)
	}
	return opts, nil
}

func queryInt(q url.Values, key string, dst *int) error {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "%s: %q is not an integer", key, v)
	}
	*dst = n
	return nil
}

func queryBool(q url.Values, key string) bool {
	b, _ := strconv.ParseBool(q.Get(key))
	return b
}

// streamDelay reads delay_ms, clamped to [0, maxStreamDelay].
func streamDelay(q url.Values) (time.Duration, error) {
	var ms int
	if err := queryInt(q, "delay_ms", &ms); err != nil {
		return 0, err
	}
	d := time.Duration(ms) * time.Millisecond
	return min(max(d, 0), maxStreamDelay), nil
}

func contentType(format string) string {
	if ct, ok := pipeline.ContentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}
