//
// Copyright 2026 The Flowlang Authors.
//
// Licensed under the Apache License, Version 2.0.
//

// Command flowc compiles a graph JSON document into a standalone Go
// program. Usage:
//
//	flowc compile <graph.json> [--target framework|zeroframework] [--out <dir>] [--print] [--strict]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flowlang-dev/flowlang/compiler"
	"github.com/flowlang-dev/flowlang/compiler/emit"
	"github.com/flowlang-dev/flowlang/graph/dsl"
	"github.com/flowlang-dev/flowlang/internal/telemetry"
	_ "github.com/flowlang-dev/flowlang/noderegistry/builtin"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "flowc:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 || args[0] != "compile" {
		return errors.New("usage: flowc compile <graph.json> [--target framework|zeroframework] [--out <dir>] [--print] [--strict]")
	}

	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	target := fs.String("target", "framework", "emit profile: framework or zeroframework")
	out := fs.String("out", "", "output directory for the generated program (defaults to the input file's directory)")
	print := fs.Bool("print", false, "print the generated program to stdout instead of writing it")
	strict := fs.Bool("strict", false, "reject unknown node types instead of falling back to stubs")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	// flag stops at the first non-flag argument; parsing resumes after each
	// positional so flags may also follow the graph path.
	var positional []string
	for fs.NArg() > 0 {
		positional = append(positional, fs.Arg(0))
		if err := fs.Parse(fs.Args()[1:]); err != nil {
			return err
		}
	}
	if len(positional) != 1 {
		return errors.New("compile requires exactly one graph.json path")
	}
	graphPath := positional[0]

	shutdown := telemetry.Install()
	defer func() { _ = shutdown() }()
	_, span := telemetry.Tracer.Start(context.Background(), "flowc_compile")
	defer span.End()

	profile, err := parseProfile(*target)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(graphPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", graphPath, err)
	}

	doc, err := dsl.Parse(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", graphPath, err)
	}

	built, err := dsl.Build(doc, *strict)
	if err != nil {
		return fmt.Errorf("build graph %s: %w", graphPath, err)
	}
	for _, w := range built.Warnings {
		fmt.Fprintln(os.Stderr, "flowc: warning:", w)
	}

	sched, err := compiler.Analyze(built.Network)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", graphPath, err)
	}

	moduleName := doc.GraphName
	if moduleName == "" {
		moduleName = filepath.Base(graphPath)
	}
	src, err := emit.Emit(sched, profile, moduleName)
	if err != nil {
		return fmt.Errorf("emit %s: %w", graphPath, err)
	}

	if *print {
		fmt.Print(src)
		return nil
	}

	outDir := *out
	if outDir == "" {
		outDir = filepath.Dir(graphPath)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", outDir, err)
	}
	outPath := filepath.Join(outDir, safeStem(moduleName)+".go")
	if err := os.WriteFile(outPath, []byte(src), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Println(outPath)
	return nil
}

func parseProfile(s string) (emit.Profile, error) {
	switch s {
	case "framework":
		return emit.Framework, nil
	case "zeroframework":
		return emit.ZeroFramework, nil
	default:
		return "", fmt.Errorf("unknown --target %q (want framework or zeroframework)", s)
	}
}

func safeStem(name string) string {
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)]
}
