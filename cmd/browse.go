package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"botdash/internal/client"
	"botdash/internal/filterstate"
	"botdash/internal/listquery"
	"botdash/internal/navigation"
	"botdash/pkg/models"
	"github.com/spf13/cobra"
)

const browseHelp = `Commands:
  n              next page
  p              previous page
  /text          search, applied after a short pause
  f key=v1,v2    set a filter; an empty value clears it
  r              clear all filters
  q              quit`

// syncWriter serializes writes from the prompt and the render goroutines.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func newBrowseCmd[F any, T models.Keyed](r resource[F, T]) *cobra.Command {
	var (
		rawQuery string
		limit    int
		parentID string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through " + r.name + " interactively",
		Long:  browseHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, log, _, err := remote()
			if err != nil {
				return err
			}
			path := r.path(parentID)
			out := &syncWriter{w: cmd.OutOrStdout()}

			fetch := func(ctx context.Context, q navigation.Query) (filterstate.View, error) {
				lq, err := r.schema.ParseValues(q.Values())
				if err != nil {
					return filterstate.View{}, err
				}
				params, err := lq.Params()
				if err != nil {
					return filterstate.View{}, err
				}
				page, err := client.List[T](ctx, api, path, params)
				if err != nil {
					return filterstate.View{}, err
				}
				return filterstate.View{
					Links: navigation.Compute(q, navigation.CursorsOf(page)),
					Rows:  page.Data,
				}, nil
			}
			render := func(v filterstate.View) {
				rows, _ := v.Rows.([]T)
				renderView(out, v, func(w io.Writer) { writeTable(w, r, rows) })
			}

			s := filterstate.NewSession(buildQuery(path, rawQuery, nil, "", limit), fetch, render, log.WithField("resource", r.name))
			defer s.Close()

			fmt.Fprintln(out, browseHelp)
			s.Load()
			return browseLoop(cmd.InOrStdin(), out, s, r.search, r.schema.Fields())
		},
	}

	cmd.Flags().StringVar(&rawQuery, "query", "", "Raw query string to start from")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size")
	if r.parent != "" {
		cmd.Flags().StringVar(&parentID, r.parent, "", "ID of the parent "+r.parent)
		_ = cmd.MarkFlagRequired(r.parent)
	}
	return cmd
}

func renderView(out io.Writer, v filterstate.View, table func(io.Writer)) {
	if v.Err != nil {
		fmt.Fprintf(out, "error: %v\n", v.Err)
		if errors.Is(v.Err, listquery.ErrInvalidQuery) {
			fmt.Fprintln(out, "press r to clear the filters")
		}
		return
	}
	table(out)

	var nav []string
	if v.Links.HasPrev() {
		nav = append(nav, "p: prev")
	}
	if v.Links.HasNext() {
		nav = append(nav, "n: next")
	}
	fmt.Fprintf(out, "[%s] %s  %s\n", navigation.StateOf(v.Query), v.Query.Href(), strings.Join(nav, "  "))
}

// browseLoop reads commands until "q" or end of input.
func browseLoop(in io.Reader, out io.Writer, s *filterstate.Session, search string, fields []listquery.FieldInfo) error {
	byKey := make(map[string]listquery.FieldInfo, len(fields))
	for _, fi := range fields {
		byKey[fi.Key] = fi
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
		case line == "q":
			return nil
		case line == "n":
			if !s.Next() {
				fmt.Fprintln(out, "no next page")
			}
		case line == "p":
			if !s.Prev() {
				fmt.Fprintln(out, "no previous page")
			}
		case line == "r":
			s.Reset()
		case strings.HasPrefix(line, "/"):
			if search == "" {
				fmt.Fprintln(out, "search is not available here")
				continue
			}
			s.Search(search, strings.TrimPrefix(line, "/"))
		case strings.HasPrefix(line, "f "):
			key, value, _ := strings.Cut(strings.TrimSpace(line[2:]), "=")
			fi, ok := byKey[strings.TrimSpace(key)]
			if !ok {
				fmt.Fprintf(out, "unknown filter %s; filters: %s\n", strconv.Quote(key), filterNames(fields))
				continue
			}
			m, err := mutationFor(fi, value)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			s.Filter(m)
		default:
			fmt.Fprintf(out, "unknown command %s\n%s\n", strconv.Quote(line), browseHelp)
		}
	}
	return sc.Err()
}

func filterNames(fields []listquery.FieldInfo) string {
	names := make([]string, 0, len(fields))
	for _, fi := range fields {
		names = append(names, fi.Key)
	}
	return strings.Join(names, ", ")
}
