package main

import (
	"bufio"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/encoding/json"

	"github.com/mitlibraries/marcidx"
	"github.com/mitlibraries/marcidx/driver"
	"github.com/mitlibraries/marcidx/registry"
	"github.com/mitlibraries/marcidx/stats"
)

// index fans records out to workers, each decoding and deriving its own
// record, and writes the documents as JSON lines from a single writer.
// Output order follows completion, not input.
func index(path string, workers int, metricsFile string) error {
	reg := prometheus.NewRegistry()
	collector := stats.NewPrometheus(reg)
	formats := registry.Default(
		driver.WithSettings(cfg.Driver),
		driver.WithStats(collector),
		driver.WithLogger(logger),
	)

	if workers < 1 {
		workers = 1
	}
	batch := make(chan []byte, workers*2)
	docs := make(chan []byte, workers*2)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for data := range batch {
				if doc, ok := indexRecord(formats, collector, data); ok {
					docs <- doc
				}
			}
		}()
	}

	done := make(chan error, 1)
	go func() {
		w := bufio.NewWriter(os.Stdout)
		var werr error
		for doc := range docs {
			if werr == nil {
				_, werr = w.Write(append(doc, '\n'))
			}
		}
		if err := w.Flush(); werr == nil {
			werr = err
		}
		done <- werr
	}()

	err := eachRecord(path, func(data []byte) error {
		batch <- data
		return nil
	})
	close(batch)
	wg.Wait()
	close(docs)
	if werr := <-done; err == nil {
		err = werr
	}

	if metricsFile != "" {
		if merr := prometheus.WriteToTextfile(metricsFile, reg); err == nil {
			err = merr
		}
	}
	return err
}

func indexRecord(formats *registry.Registry, collector stats.Collector, data []byte) ([]byte, bool) {
	rec, err := formats.Create(driver.RecordFormat, data)
	if err != nil {
		logger.Warn("skipping record", "reason", "decode", "error", err)
		collector.RecordFailed("decode")
		return nil, false
	}
	doc, err := rec.IndexFields()
	if err != nil {
		logger.Warn("skipping record", "id", rec.ID(), "reason", "index", "error", err)
		collector.RecordFailed("index")
		return nil, false
	}
	out, err := json.Marshal(doc)
	if err != nil {
		logger.Warn("skipping record", "id", rec.ID(), "reason", "encode", "error", err)
		collector.RecordFailed("encode")
		return nil, false
	}
	if w := rec.Warnings(); len(w) > 0 {
		logger.Debug("record warnings", "id", rec.ID(), "warnings", w)
		collector.Warnings(len(w))
	}
	collector.RecordProcessed(marcidx.DetectFormat(data).String())
	return out, true
}
