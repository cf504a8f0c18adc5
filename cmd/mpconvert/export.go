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
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/mpkit/transform/codec"
	"github.com/mpkit/transform/encoder"
	"github.com/mpkit/transform/model"

	// Register the output dialects.
	_ "github.com/mpkit/transform/encoder/htmlenc"
	_ "github.com/mpkit/transform/encoder/jatsenc"
	_ "github.com/mpkit/transform/encoder/stsenc"
)

func exportCmd() *cobra.Command {
	var (
		format          string
		inPath          string
		outPath         string
		version         string
		doi             string
		pubID           string
		mediaPrefix     string
		frontMatterOnly bool
		links           bool
		watch           bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a model bundle as an external document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = cfg.Format
			}
			if version == "" {
				version = cfg.Version
			}
			if doi == "" {
				doi = cfg.DOI
			}
			if pubID == "" {
				pubID = cfg.ID
			}
			if mediaPrefix == "" {
				mediaPrefix = cfg.MediaPrefix
			}
			opts := &encoder.Options{
				Version:         version,
				DOI:             doi,
				ID:              pubID,
				FrontMatterOnly: frontMatterOnly,
				Links:           links,
				MediaPrefix:     mediaPrefix,
				Logger:          &log,
			}
			run := func() error {
				return exportOnce(encoder.Format(format), opts, inPath, outPath)
			}
			if err := run(); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchFile(inPath, run)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format: jats, sts or html")
	cmd.Flags().StringVar(&inPath, "in", "", "input bundle file (JSON array of models)")
	cmd.Flags().StringVar(&outPath, "out", "", "output document file (default stdout)")
	cmd.Flags().StringVar(&version, "version", "", "JATS DTD version (default 1.2)")
	cmd.Flags().StringVar(&doi, "doi", "", "override the manuscript DOI")
	cmd.Flags().StringVar(&pubID, "id", "", "publisher article identifier")
	cmd.Flags().StringVar(&mediaPrefix, "media-prefix", "", "media URL prefix for HTML output")
	cmd.Flags().BoolVar(&frontMatterOnly, "front-matter-only", false, "emit front matter only")
	cmd.Flags().BoolVar(&links, "links", false, "keep external links")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-export whenever the input changes")
	cobra.CheckErr(cmd.MarkFlagRequired("in"))
	return cmd
}

func exportOnce(format encoder.Format, opts *encoder.Options, inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	m, err := model.ReadBundle(data)
	if err != nil {
		return fmt.Errorf("read bundle %s: %w", inPath, err)
	}
	root, err := codec.Decode(m, &codec.Options{Logger: &log})
	if err != nil {
		return fmt.Errorf("decode bundle %s: %w", inPath, err)
	}
	enc := encoder.Create(format, opts)
	if enc == nil {
		return fmt.Errorf("unknown output format %q, have %v", format, encoder.GetFormats())
	}
	var buf bytes.Buffer
	if err := enc.WriteDocument(&buf, root, m); err != nil {
		return err
	}
	if outPath == "" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return err
	}
	log.Info().Str("in", inPath).Str("out", outPath).Msg("exported")
	return nil
}

// watchFile re-runs the export on every write to the input file. Editors
// replace files instead of updating them, so the watch is on the directory
// and filtered by name.
func watchFile(path string, run func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	name := filepath.Base(path)
	log.Info().Str("file", path).Msg("watching for changes")
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := run(); err != nil {
				log.Error().Err(err).Msg("export failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watch error")
		}
	}
}
