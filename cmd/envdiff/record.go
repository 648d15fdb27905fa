package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"envdiff/internal/snapshot"
	"envdiff/internal/version"
)

var recordCmd = &cobra.Command{
	Use:   "record [flags] <description.json> <out.envsnap>",
	Short: "Build a snapshot container from a JSON description",
	Long:  `Build an .envsnap container from a JSON symbol-database description. Intended for fixtures and pipelines whose exporters speak JSON; type and value expressions are digested, not stored.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runRecord,
}

// declDescription mirrors one declaration in the JSON input. Type and
// Value hold arbitrary printed expressions; only their digests survive.
type declDescription struct {
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	Type   string  `json:"type"`
	Value  *string `json:"value,omitempty"`
	Module string  `json:"module"`
}

type moduleDescription struct {
	Name    string   `json:"name"`
	Imports []string `json:"imports,omitempty"`
}

type snapshotDescription struct {
	Decls      []declDescription            `json:"decls"`
	Modules    []moduleDescription          `json:"modules"`
	Extensions map[string]map[string]string `json:"extensions,omitempty"`
}

func runRecord(cmd *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]

	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	var desc snapshotDescription
	if err := json.Unmarshal(data, &desc); err != nil {
		return fmt.Errorf("%s: failed to parse JSON: %w", inPath, err)
	}

	snap := &snapshot.Snapshot{
		Decls:      make(map[string]snapshot.Declaration, len(desc.Decls)),
		Imports:    make(map[string][]string, len(desc.Modules)),
		Extensions: make(map[string]snapshot.ExtensionState, len(desc.Extensions)),
	}
	for _, d := range desc.Decls {
		kind, err := snapshot.ParseKind(d.Kind)
		if err != nil {
			return fmt.Errorf("%s: declaration %q: %w", inPath, d.Name, err)
		}
		decl := snapshot.Declaration{
			Name:   d.Name,
			Kind:   kind,
			Type:   snapshot.DigestOf([]byte(d.Type)),
			Module: d.Module,
		}
		if d.Value != nil {
			decl.Value = snapshot.DigestOf([]byte(*d.Value))
			decl.HasValue = true
		}
		if _, dup := snap.Decls[decl.Name]; dup {
			return fmt.Errorf("%s: duplicate declaration %q", inPath, decl.Name)
		}
		snap.Decls[decl.Name] = decl
	}
	for _, m := range desc.Modules {
		snap.Modules = append(snap.Modules, m.Name)
		snap.Imports[m.Name] = m.Imports
	}
	for key, state := range desc.Extensions {
		snap.Extensions[key] = state
	}

	if err := snapshot.Save(outPath, snap, "envdiff "+version.Version); err != nil {
		return err
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "recorded %d declarations, %d modules to %s\n",
			len(snap.Decls), len(snap.Modules), outPath)
	}
	return nil
}
