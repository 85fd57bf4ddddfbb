package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"botdash/internal/client"
	"botdash/internal/cursor"
	"botdash/internal/filterstate"
	"botdash/internal/listquery"
	"botdash/internal/navigation"
	"botdash/pkg/models"
	"github.com/spf13/cobra"
)

// filterFlags holds one flag per filter key of a schema.
type filterFlags struct {
	fields []listquery.FieldInfo
	lists  map[string]*[]string
	texts  map[string]*string
}

func bindFilterFlags(cmd *cobra.Command, fields []listquery.FieldInfo) *filterFlags {
	f := &filterFlags{
		fields: fields,
		lists:  make(map[string]*[]string),
		texts:  make(map[string]*string),
	}
	for _, fi := range fields {
		switch fi.Type {
		case "list":
			f.lists[fi.Key] = cmd.Flags().StringSlice(fi.Key, nil, "One or more of: "+strings.Join(fi.Enum, ", "))
		case "timestamp":
			f.texts[fi.Key] = cmd.Flags().String(fi.Key, "", "RFC 3339 timestamp")
		case "integer":
			f.texts[fi.Key] = cmd.Flags().String(fi.Key, "", "Integer")
		default:
			f.texts[fi.Key] = cmd.Flags().String(fi.Key, "", "Text")
		}
	}
	return f
}

// mutations turns the flags the user set into filter edits.
func (f *filterFlags) mutations(cmd *cobra.Command) ([]filterstate.Mutation, error) {
	var ms []filterstate.Mutation
	for _, fi := range f.fields {
		if !cmd.Flags().Changed(fi.Key) {
			continue
		}
		var raw string
		if l, ok := f.lists[fi.Key]; ok {
			raw = strings.Join(*l, ",")
		} else {
			raw = *f.texts[fi.Key]
		}
		m, err := mutationFor(fi, raw)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, nil
}

// mutationFor maps one "key=value" edit onto the filter edit for the key's
// type. An empty value clears the filter.
func mutationFor(fi listquery.FieldInfo, raw string) (filterstate.Mutation, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return filterstate.Clear(fi.Key), nil
	}
	switch fi.Type {
	case "list":
		return filterstate.SetValues(fi.Key, strings.Split(raw, ",")...), nil
	case "timestamp":
		t, err := cursor.ParseTime(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an RFC 3339 timestamp", fi.Key, raw)
		}
		return filterstate.SetTime(fi.Key, t), nil
	default:
		return filterstate.SetText(fi.Key, raw), nil
	}
}

// buildQuery starts from a raw query string, applies the filter edits and
// then pins the cursor and limit, if given.
func buildQuery(path, rawQuery string, ms []filterstate.Mutation, token string, limit int) navigation.Query {
	q := navigation.NewQuery(path, rawQuery)
	if len(ms) > 0 {
		q = filterstate.Apply(q, ms...)
	}
	if token != "" {
		q = q.With(listquery.CursorKey, token)
	}
	if limit > 0 {
		q = q.With(listquery.LimitKey, strconv.Itoa(limit))
	}
	return q
}

type pageOutput[T any] struct {
	Data []T    `json:"data"`
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
}

func newListCmd[F any, T models.Keyed](r resource[F, T]) *cobra.Command {
	var (
		rawQuery string
		token    string
		limit    int
		all      bool
		parentID string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + r.name,
		Example: fmt.Sprintf(`  botdash %[1]s list --limit 20
  botdash %[1]s list --query "status=completed" --cursor <next cursor>`, r.name),
	}
	flags := bindFilterFlags(cmd, r.schema.Fields())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ms, err := flags.mutations(cmd)
		if err != nil {
			return err
		}
		path := r.path(parentID)
		q := buildQuery(path, rawQuery, ms, token, limit)

		lq, err := r.schema.ParseValues(q.Values())
		if err != nil {
			return err
		}
		params, err := lq.Params()
		if err != nil {
			return err
		}

		api, _, _, err := remote()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if all {
			rows, err := client.FetchAll[T](cmd.Context(), api, path, params)
			if err != nil {
				return fmt.Errorf("error fetching %s: %w", r.name, err)
			}
			return printPage(out, r, pageOutput[T]{Data: rows})
		}

		page, err := client.List[T](cmd.Context(), api, path, params)
		if err != nil {
			return fmt.Errorf("error fetching %s: %w", r.name, err)
		}
		links := navigation.Compute(q, navigation.CursorsOf(page))
		return printPage(out, r, pageOutput[T]{
			Data: page.Data,
			Next: cursorOf(links.Next),
			Prev: cursorOf(links.Prev),
		})
	}

	cmd.Flags().StringVar(&rawQuery, "query", "", "Raw query string, e.g. \"status=completed&limit=10\"")
	cmd.Flags().StringVar(&token, "cursor", "", "Cursor printed by a previous page")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size")
	cmd.Flags().BoolVar(&all, "all", false, "Follow cursors from the first page and print every page")
	cmd.MarkFlagsMutuallyExclusive("all", "cursor")
	if r.parent != "" {
		cmd.Flags().StringVar(&parentID, r.parent, "", "ID of the parent "+r.parent)
		_ = cmd.MarkFlagRequired(r.parent)
	}
	return cmd
}

func cursorOf(href string) string {
	if href == "" {
		return ""
	}
	return navigation.ParseHref(href).Get(listquery.CursorKey)
}

func printPage[F any, T models.Keyed](out io.Writer, r resource[F, T], page pageOutput[T]) error {
	if page.Data == nil {
		page.Data = []T{}
	}

	// --- JSON OUTPUT ---
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	writeTable(out, r, page.Data)
	if page.Prev != "" || page.Next != "" {
		fmt.Fprintln(out)
	}
	if page.Prev != "" {
		fmt.Fprintf(out, "prev: --cursor %s\n", page.Prev)
	}
	if page.Next != "" {
		fmt.Fprintf(out, "next: --cursor %s\n", page.Next)
	}
	return nil
}

func writeTable[F any, T models.Keyed](out io.Writer, r resource[F, T], rows []T) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, strings.Join(r.header, "\t"))
	dashes := make([]string, len(r.header))
	for i, h := range r.header {
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(w, strings.Join(dashes, "\t"))

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(r.row(row), "\t"))
	}
	w.Flush()
}
