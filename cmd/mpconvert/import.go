//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpkit/transform/codec"
	"github.com/mpkit/transform/model"
	"github.com/mpkit/transform/parser"

	// Register the input dialects.
	_ "github.com/mpkit/transform/parser/jats"
	_ "github.com/mpkit/transform/parser/tei"
)

func importCmd() *cobra.Command {
	var (
		format  string
		inPath  string
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Parse an external document into a model bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = cfg.Format
			}
			p := parser.Create(parser.Format(format), &parser.Options{Logger: &log})
			if p == nil {
				return fmt.Errorf("unknown input format %q, have %v", format, parser.GetFormats())
			}
			f, err := os.Open(inPath)
			if err != nil {
				return err
			}
			defer f.Close()
			result, err := p.Parse(f)
			if err != nil {
				return fmt.Errorf("parse %s: %w", inPath, err)
			}
			// Re-encode the tree so the bundle holds the full model set,
			// section and element models included.
			m, err := codec.Encode(result.Root, &codec.Options{Logger: &log})
			if err != nil {
				return err
			}
			for _, mod := range result.Models {
				m.Put(mod)
			}
			data, err := model.WriteBundle(m)
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return err
			}
			log.Info().Str("in", inPath).Str("out", outPath).
				Int("models", len(m)).Msg("imported")
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "input format: jats or tei")
	cmd.Flags().StringVar(&inPath, "in", "", "input document file")
	cmd.Flags().StringVar(&outPath, "out", "", "output bundle file (default stdout)")
	cobra.CheckErr(cmd.MarkFlagRequired("in"))
	return cmd
}
