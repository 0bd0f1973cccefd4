package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/segmentio/encoding/json"
	"github.com/urfave/cli"

	"github.com/mitlibraries/marcidx"
	"github.com/mitlibraries/marcidx/config"
	"github.com/mitlibraries/marcidx/driver"
	"github.com/mitlibraries/marcidx/store"
)

var (
	cfg    = config.Default()
	logger = slog.Default()
)

func main() {
	app := cli.NewApp()
	app.Name = "marcidx"
	app.Usage = "The marcidx command provides a set of utilities for converting and indexing MARC 21 records"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "path to a YAML configuration file",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "override the configured log level (debug, info, warn, error)",
		},
	}
	app.Before = func(c *cli.Context) error {
		if path := c.GlobalString("config"); path != "" {
			loaded, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if lvl := c.GlobalString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		level, err := cfg.Logging.SlogLevel()
		if err != nil {
			return err
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:      "pick",
			Usage:     "Pull a single MARC record from the data by control number",
			ArgsUsage: "[controlnum] [file]",
			Action: func(c *cli.Context) error {
				id := c.Args().Get(0)
				file, err := openInput(c.Args().Get(1))
				if err != nil {
					return err
				}
				defer file.Close()
				m := marcidx.NewMarcIterator(file, marcidx.WithLogger(logger))
				for m.Next() {
					record, err := m.Value()
					if err != nil {
						logger.Warn("skipping record", "error", err)
						continue
					}
					if record.ControlNum() == id {
						_, err := os.Stdout.Write(m.Bytes())
						return err
					}
				}
				return m.Err()
			},
		},
		{
			Name:      "convert",
			Usage:     "Convert records to ISO2709, MARCXML or storage JSON",
			ArgsUsage: "[file]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "to",
					Value: "json",
					Usage: "output format: iso2709, marcxml or json",
				},
			},
			Action: func(c *cli.Context) error {
				return convert(c.Args().Get(0), c.String("to"))
			},
		},
		{
			Name:      "index",
			Usage:     "Derive index documents as JSON lines",
			ArgsUsage: "[file]",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of records processed concurrently (default from config)",
				},
				cli.StringFlag{
					Name:  "metrics-file",
					Usage: "write conversion metrics in the Prometheus text format to this file",
				},
			},
			Action: func(c *cli.Context) error {
				workers := cfg.Workers
				if n := c.Int("workers"); n > 0 {
					workers = n
				}
				return index(c.Args().Get(0), workers, c.String("metrics-file"))
			},
		},
		{
			Name:      "dedup",
			Usage:     "Print deduplication keys and work identification data as JSON lines",
			ArgsUsage: "[file]",
			Action: func(c *cli.Context) error {
				return dedup(c.Args().Get(0))
			},
		},
		{
			Name:      "filter",
			Usage:     "Print selected field values, for example 245ac or 650|*0|x",
			ArgsUsage: "[file] [query...]",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					return cli.NewExitError("filter needs a file and at least one query", 1)
				}
				return filter(c.Args().Get(0), c.Args()[1:])
			},
		},
		{
			Name:  "store",
			Usage: "Keep records in a local store",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "path",
					Usage: "store directory (default from config)",
				},
			},
			Subcommands: []cli.Command{
				{
					Name:      "put",
					Usage:     "Store every record of a file",
					ArgsUsage: "[file]",
					Action: func(c *cli.Context) error {
						return withStore(c, func(s *store.Store) error {
							return eachRecord(c.Args().Get(0), func(data []byte) error {
								rec, err := marcidx.Parse(data, marcidx.WithLogger(logger))
								if err != nil {
									logger.Warn("skipping record", "error", err)
									return nil
								}
								id, err := s.Put(rec)
								if err != nil {
									return err
								}
								fmt.Println(id)
								return nil
							})
						})
					},
				},
				{
					Name:      "get",
					Usage:     "Print a stored record",
					ArgsUsage: "[id]",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "to",
							Value: "json",
							Usage: "output format: iso2709, marcxml or json",
						},
					},
					Action: func(c *cli.Context) error {
						return withStore(c, func(s *store.Store) error {
							rec, err := s.Get(c.Args().Get(0))
							if err != nil {
								return err
							}
							out, err := encode(rec, c.String("to"))
							if err != nil {
								return err
							}
							_, err = os.Stdout.Write(append(out, '\n'))
							return err
						})
					},
				},
			},
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func withStore(c *cli.Context, fn func(*store.Store) error) error {
	path := cfg.Store.Path
	if p := c.Parent().String("path"); p != "" {
		path = p
	}
	s, err := store.Open(path, store.WithRecordOptions(marcidx.WithLogger(logger)))
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func encode(rec *marcidx.Record, to string) ([]byte, error) {
	switch strings.ToLower(to) {
	case "iso2709", "marc":
		return rec.EncodeISO2709()
	case "marcxml", "xml":
		return rec.EncodeMARCXML()
	case "json":
		return rec.EncodeStorage()
	}
	return nil, fmt.Errorf("unknown output format %q", to)
}

func convert(path, to string) error {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	return eachRecord(path, func(data []byte) error {
		rec, err := marcidx.Parse(data, marcidx.WithLogger(logger))
		if err != nil {
			logger.Warn("skipping record", "error", err)
			return nil
		}
		out, err := encode(rec, to)
		if err != nil {
			return err
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
		if strings.ToLower(to) != "iso2709" && strings.ToLower(to) != "marc" {
			return w.WriteByte('\n')
		}
		return nil
	})
}

type dedupLine struct {
	ID    string             `json:"id"`
	Keys  driver.DedupKeys   `json:"keys"`
	Works []driver.WorkIDSet `json:"works,omitempty"`
}

func dedup(path string) error {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	return eachRecord(path, func(data []byte) error {
		m, err := driver.Parse(data, driver.WithSettings(cfg.Driver), driver.WithLogger(logger))
		if err != nil {
			logger.Warn("skipping record", "error", err)
			return nil
		}
		out, err := json.Marshal(dedupLine{ID: m.ID(), Keys: m.DedupKeys(), Works: m.WorkIdentificationData()})
		if err != nil {
			return err
		}
		_, err = w.Write(append(out, '\n'))
		return err
	})
}

func filter(path string, queries []string) error {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	return eachRecord(path, func(data []byte) error {
		rec, err := marcidx.Parse(data, marcidx.WithLogger(logger))
		if err != nil {
			logger.Warn("skipping record", "error", err)
			return nil
		}
		for _, values := range rec.Filter(queries...) {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", rec.ControlNum(), strings.Join(values, " ")); err != nil {
				return err
			}
		}
		return nil
	})
}
