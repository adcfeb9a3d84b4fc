package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/ecopoint/internal/points"
	"github.com/JaimeStill/ecopoint/internal/selector"
	"github.com/JaimeStill/ecopoint/pkg/pagination"
	"github.com/docker/go-units"
)

var errAborted = errors.New("input closed")

// finder drives a Selector from line-oriented input and lists the points
// of the confirmed region and locality.
type finder struct {
	sel    *selector.Selector
	apiURL string
	http   *http.Client
	in     *bufio.Scanner
	out    io.Writer
}

func newFinder(sel *selector.Selector, apiURL string, httpClient *http.Client, in io.Reader, out io.Writer) *finder {
	return &finder{
		sel:    sel,
		apiURL: strings.TrimRight(apiURL, "/"),
		http:   httpClient,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// run selects a region and locality, prompting for any that are empty.
func (f *finder) run(ctx context.Context, uf, city string) error {
	if err := f.sel.Init(ctx); err != nil {
		return fmt.Errorf("load regions: %w", err)
	}

	if uf == "" {
		choice, err := f.choose("Region", f.sel.State().Regions)
		if err != nil {
			return err
		}
		uf = choice
	}

	if err := f.selectRegion(ctx, strings.ToUpper(uf)); err != nil {
		return err
	}

	if city == "" && f.sel.State().Region != selector.Unselected {
		choice, err := f.choose("Locality", f.sel.State().Localities)
		if err != nil {
			return err
		}
		city = choice
	}
	if city != "" {
		f.sel.SelectLocality(city)
	}

	return f.listPoints(ctx, f.sel.Confirm())
}

func (f *finder) selectRegion(ctx context.Context, uf string) error {
	f.sel.SelectRegion(ctx, uf)
	want := f.sel.State().Generation

	if uf == selector.Unselected {
		return nil
	}

	fmt.Fprintf(f.out, "loading localities for %s...\n", uf)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case st := <-f.sel.Updates():
			if st.Generation != want || st.Loading {
				continue
			}
			if st.LocalitiesErr != nil {
				return fmt.Errorf("load localities: %w", st.LocalitiesErr)
			}
			return nil
		}
	}
}

// choose prints options numbered from 1 and reads a number, a literal
// option, or an empty line for Unselected.
func (f *finder) choose(label string, options []string) (string, error) {
	fmt.Fprintf(f.out, "%s:\n", label)
	fmt.Fprintf(f.out, "  %3d) %s\n", 0, "(any)")
	for i, opt := range options {
		fmt.Fprintf(f.out, "  %3d) %s\n", i+1, opt)
	}

	for {
		fmt.Fprintf(f.out, "%s> ", label)
		if !f.in.Scan() {
			if err := f.in.Err(); err != nil {
				return "", err
			}
			return "", errAborted
		}

		line := strings.TrimSpace(f.in.Text())
		if line == "" || line == selector.Unselected {
			return selector.Unselected, nil
		}

		if n, err := strconv.Atoi(line); err == nil {
			if n >= 1 && n <= len(options) {
				return options[n-1], nil
			}
		} else {
			for _, opt := range options {
				if strings.EqualFold(opt, line) {
					return opt, nil
				}
			}
		}

		fmt.Fprintf(f.out, "unknown %s %q\n", strings.ToLower(label), line)
	}
}

// listPoints requests the points of sel. Unselected values are left out of
// the query so they do not filter.
func (f *finder) listPoints(ctx context.Context, sel selector.Selection) error {
	q := url.Values{}
	if sel.UF != selector.Unselected {
		q.Set("uf", sel.UF)
	}
	if sel.City != selector.Unselected {
		q.Set("city", sel.City)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.apiURL+"/points?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return fmt.Errorf("list points: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read points: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("list points: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var page pagination.PageResult[points.Point]
	if err := json.Unmarshal(body, &page); err != nil {
		return fmt.Errorf("decode points: %w", err)
	}

	fmt.Fprintf(f.out, "\n%d point(s) in %s / %s (%s)\n", page.Total, sel.UF, sel.City, units.HumanSize(float64(len(body))))
	for _, p := range page.Data {
		fmt.Fprintf(f.out, "- %s, %s/%s, whatsapp %s, %s\n", p.Name, p.City, p.UF, p.Whatsapp, p.Email)
	}
	return nil
}
