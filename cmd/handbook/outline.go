package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/alnah/go-handbook/internal/outline"
)

// routeInfo is one row of the routes command.
type routeInfo struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
	Section bool   `json:"section,omitempty"`
	Depth   int    `json:"depth"`
}

// runRoutes prints the path every outline entry resolves to.
func runRoutes(f *outlineFlags, env *Environment) error {
	nodes, err := outlineNodes(f, env)
	if err != nil {
		return err
	}

	var rows []routeInfo
	err = outline.Walk(nodes, func(s outline.Step) error {
		rows = append(rows, routeInfo{
			Path:    s.Path,
			Title:   s.Node.Title(),
			Content: string(s.Node.Ref()),
			Section: s.Node.IsSection(),
			Depth:   s.Depth,
		})
		return nil
	})
	if err != nil {
		return err
	}

	if f.json {
		return writeJSON(env.Stdout, rows)
	}
	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tTITLE\tCONTENT")
	for _, r := range rows {
		content := r.Content
		if r.Section {
			content = "-"
		}
		fmt.Fprintf(tw, "%s%s\t%s\t%s\n", strings.Repeat("  ", r.Depth), r.Path, r.Title, content)
	}
	return tw.Flush()
}

// navInfo is one row of the nav command.
type navInfo struct {
	Header bool   `json:"header,omitempty"`
	Title  string `json:"title"`
	Index  int    `json:"index,omitempty"`
	URL    string `json:"url,omitempty"`
	Depth  int    `json:"depth"`
}

// runNav prints the navigation sidebar shared by every page.
func runNav(f *outlineFlags, env *Environment) error {
	nodes, err := outlineNodes(f, env)
	if err != nil {
		return err
	}
	entries, err := outline.BuildNav(nodes)
	if err != nil {
		return err
	}

	rows := make([]navInfo, len(entries))
	for i, e := range entries {
		rows[i] = navInfo{
			Header: e.Kind == outline.NavHeader,
			Title:  e.Title,
			Index:  e.Index,
			URL:    e.URL,
			Depth:  e.Depth,
		}
	}

	if f.json {
		return writeJSON(env.Stdout, rows)
	}
	for _, r := range rows {
		indent := strings.Repeat("  ", r.Depth)
		if r.Header {
			fmt.Fprintf(env.Stdout, "%s%s\n", indent, r.Title)
			continue
		}
		fmt.Fprintf(env.Stdout, "%s%d. %s (%s)\n", indent, r.Index, r.Title, r.URL)
	}
	return nil
}

func outlineNodes(f *outlineFlags, env *Environment) ([]outline.Node, error) {
	p, err := openProject(siteFlags{common: f.common}, env)
	if err != nil {
		return nil, err
	}
	return p.cfg.Nodes()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
