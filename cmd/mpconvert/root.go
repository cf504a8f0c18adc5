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
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// config holds the file-based defaults. Command line flags win over the
// config file.
type config struct {
	Format      string `yaml:"format"`
	Version     string `yaml:"version"`
	DOI         string `yaml:"doi"`
	ID          string `yaml:"id"`
	MediaPrefix string `yaml:"mediaPrefix"`
	Verbose     bool   `yaml:"verbose"`
}

var (
	cfg     config
	cfgFile string
	verbose bool
	log     zerolog.Logger
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mpconvert",
		Short:         "Convert manuscript bundles to and from external document formats",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(); err != nil {
				return err
			}
			level := zerolog.InfoLevel
			if verbose || cfg.Verbose {
				level = zerolog.DebugLevel
			}
			log = zerolog.New(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: time.RFC3339,
			}).Level(level).With().Timestamp().Logger()
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .mpconvert.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.AddCommand(exportCmd())
	cmd.AddCommand(importCmd())
	return cmd
}

func loadConfig() error {
	path := cfgFile
	if path == "" {
		path = ".mpconvert.yaml"
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, &cfg)
}
