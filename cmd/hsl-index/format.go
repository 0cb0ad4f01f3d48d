package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	hslindex "github.com/housing-studio/hsl-index"
)

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func outputHover(h *hslindex.HoverResult) error {
	if flagFormat == "json" {
		return outputJSON(h)
	}
	if h == nil {
		fmt.Println("no result")
		return nil
	}
	if h.Documentation != "" {
		fmt.Println(h.Documentation)
		fmt.Println()
	}
	if h.Signature != "" {
		fmt.Printf("```hsl\n%s\n```\n", h.Signature)
	}
	return nil
}

func outputLocation(loc *hslindex.Location) error {
	if flagFormat == "json" {
		return outputJSON(loc)
	}
	if loc == nil {
		fmt.Println("no result")
		return nil
	}
	fmt.Printf("%s:%d:%d\n", loc.File, loc.Line, loc.Column)
	return nil
}

func outputCompletions(items []hslindex.CompletionItem) error {
	if flagFormat == "json" {
		return outputJSON(items)
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tKIND\tDETAIL")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", item.Label, item.Kind, item.Detail)
	}
	return tw.Flush()
}

func outputHints(hints []hslindex.InlayHint) error {
	if flagFormat == "json" {
		return outputJSON(hints)
	}
	for _, h := range hints {
		fmt.Printf("%d:%d %s\n", h.Line, h.Column, h.Label)
	}
	return nil
}

// summaryEntry is the per-file section of the index summary output.
type summaryEntry struct {
	File    string   `json:"file"`
	Symbols []string `json:"symbols"`
}

func outputSummary(files, symbols int, byFile map[string][]*hslindex.Declaration) error {
	paths := make([]string, 0, len(byFile))
	for p := range byFile {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	if flagFormat == "json" {
		entries := make([]summaryEntry, 0, len(paths))
		for _, p := range paths {
			entry := summaryEntry{File: p}
			for _, d := range byFile[p] {
				entry.Symbols = append(entry.Symbols, fmt.Sprintf("%s (%s)", d.Name, d.Kind))
			}
			entries = append(entries, entry)
		}
		return outputJSON(map[string]any{
			"files":   files,
			"symbols": symbols,
			"details": entries,
		})
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tFILE\tLINE")
	for _, p := range paths {
		for _, d := range byFile[p] {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", d.Name, d.Kind, d.File, d.Line)
		}
	}
	return tw.Flush()
}
