// Command bguiparse dumps the decoded structure of a .bgui file: its
// header facts, flat container list, register, and reconstructed logical
// tree, along with any recoverable anomalies encountered while parsing.
//
// Usage: bguiparse [flags] <file.bgui>
//
// Exit code is 0 on success (warnings are permitted), 2 on a fatal parse
// error.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/madnessengine/bgui"
	"github.com/madnessengine/bgui/internal/cliconfig"
)

const exitParseFailure = 2

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	format := flag.String("format", "", "output format override: text or json")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: bguiparse [flags] <file.bgui>")
		flag.PrintDefaults()
		return
	}

	cfg := cliconfig.Default()
	if *configPath != "" {
		loaded, err := cliconfig.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}
	if *format != "" {
		cfg.OutputFormat = cliconfig.OutputFormat(*format)
		if err := cfg.Validate(); err != nil {
			log.Fatalf("invalid -format: %v", err)
		}
	}

	path := args[0]
	parsed, warnings, err := bgui.ParseFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bguiparse: %v\n", err)
		os.Exit(exitParseFailure)
	}

	switch cfg.OutputFormat {
	case cliconfig.FormatJSON:
		printJSON(parsed, warnings)
	default:
		printText(path, parsed, warnings, cfg)
	}
}

func printText(path string, pf *bgui.ParsedFile, warnings []bgui.Warning, cfg cliconfig.Config) {
	fmt.Printf("%s: magic=%s sprite=%q containers=%d register-entries=%d roots=%d\n",
		path, pf.Header.Variant, pf.Header.SpritePath, len(pf.Containers), len(pf.Register), len(pf.Roots))

	for _, c := range pf.Containers {
		label := c.Name
		if c.IsManifest {
			label = fmt.Sprintf("<manifest: %d strings>", len(c.ManifestStrings))
		}
		fmt.Printf("  container id=%d kind=%s name=%q [0x%x,0x%x)\n",
			c.ID, c.Kind, label, c.MarkerOffset, c.BlockEnd)
	}

	if root := pf.Root(); root != nil {
		fmt.Println("tree:")
		printTree(root, 1)
	}

	for _, w := range filterWarnings(warnings, cfg.MinWarningLevel) {
		log.Printf("warning: %s", w)
	}
}

func printTree(n *bgui.TreeNode, depth int) {
	marker := "ok"
	if n.Dangling {
		marker = "dangling"
	}
	fmt.Printf("%sid=%d children=%d (%s)\n", strings.Repeat("  ", depth), n.ID, len(n.Children), marker)
	for _, c := range n.Children {
		printTree(c, depth+1)
	}
}

func filterWarnings(warnings []bgui.Warning, allow []string) []bgui.Warning {
	if len(allow) == 0 {
		return warnings
	}
	allowed := make(map[string]bool, len(allow))
	for _, k := range allow {
		allowed[k] = true
	}
	var out []bgui.Warning
	for _, w := range warnings {
		if allowed[w.Kind.String()] {
			out = append(out, w)
		}
	}
	return out
}

// printJSON renders a minimal, dependency-free JSON-like dump of the
// parsed model. A hand-rolled renderer keeps the CLI free of a
// JSON-tag-laden duplicate of the core data model.
func printJSON(pf *bgui.ParsedFile, warnings []bgui.Warning) {
	ids := make([]int, 0, len(pf.Containers))
	byID := make(map[int]bgui.Container, len(pf.Containers))
	for _, c := range pf.Containers {
		ids = append(ids, int(c.ID))
		byID[int(c.ID)] = c
	}
	sort.Ints(ids)

	fmt.Println("{")
	fmt.Printf("  \"magic_variant\": %q,\n", pf.Header.Variant)
	fmt.Printf("  \"sprite_path\": %q,\n", pf.Header.SpritePath)
	fmt.Printf("  \"containers\": [\n")
	for i, id := range ids {
		c := byID[id]
		comma := ","
		if i == len(ids)-1 {
			comma = ""
		}
		fmt.Printf("    {\"id\": %d, \"name\": %q, \"marker_offset\": %d, \"block_end\": %d}%s\n",
			c.ID, c.Name, c.MarkerOffset, c.BlockEnd, comma)
	}
	fmt.Printf("  ],\n")
	fmt.Printf("  \"warnings\": %d\n", len(warnings))
	fmt.Println("}")
}
